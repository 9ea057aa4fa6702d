// Package merge combines independently-colored subgraph solutions into a
// coloring of the parent graph. It builds the border and merger graphs for
// a partition, computes flip penalties, decides which subgraphs to flip,
// and applies the decision.
package merge

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
	"github.com/dd0wney/cluso-maxcut/pkg/partition"
)

// Border returns the border graph: exactly those edges of g whose
// endpoints lie in different subgraphs of the partition. An endpoint that
// no subgraph owns breaks the partition invariant and is a fatal error.
func Border[V constraints.Ordered](g *graph.Graph[V], p *partition.Partition[V]) (*graph.Graph[V], error) {
	border := graph.New[V]()
	for _, e := range g.Edges() {
		ku, ok := p.KeyOf(e.U)
		if !ok {
			return nil, &MergeError{Op: "Border", Key: fmt.Sprintf("%v", e.U), Cause: ErrVertexUnassigned}
		}
		kv, ok := p.KeyOf(e.V)
		if !ok {
			return nil, &MergeError{Op: "Border", Key: fmt.Sprintf("%v", e.V), Cause: ErrVertexUnassigned}
		}
		if ku != kv {
			if err := border.AddEdge(e.U, e.V, e.Weight); err != nil {
				return nil, err
			}
		}
	}
	return border, nil
}

// MergerGraph contracts each subgraph of the partition to a single vertex
// named by its key. Every partition key becomes a vertex, including keys
// whose subgraphs touch no border edge, so a flip decision exists for all
// of them. Two keys are joined by one edge when any border edge connects
// their subgraphs; penalty weights are filled in by Penalties.
func MergerGraph[V constraints.Ordered](border *graph.Graph[V], p *partition.Partition[V]) (*graph.Graph[string], error) {
	m := graph.New[string]()
	for _, key := range p.Keys() {
		m.AddVertex(key)
	}
	for _, e := range border.Edges() {
		ku, ok := p.KeyOf(e.U)
		if !ok {
			return nil, &MergeError{Op: "MergerGraph", Key: fmt.Sprintf("%v", e.U), Cause: ErrVertexUnassigned}
		}
		kv, ok := p.KeyOf(e.V)
		if !ok {
			return nil, &MergeError{Op: "MergerGraph", Key: fmt.Sprintf("%v", e.V), Cause: ErrVertexUnassigned}
		}
		if ku == kv {
			continue
		}
		if !m.HasEdge(ku, kv) {
			if err := m.AddEdge(ku, kv, 0); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Penalties computes, for every merger edge (ki, kj), the signed cut-value
// change of flipping subgraph ki's colors relative to kj's, summed over
// all border edges between the two subgraphs: a border edge whose
// endpoints currently agree contributes +w (flipping one side would cut
// it), one whose endpoints differ contributes -w. The penalty is stored as
// the merger edge's weight. All contributing edges are aggregated
// explicitly; parallel contacts never overwrite each other.
func Penalties[V constraints.Ordered](m *graph.Graph[string], p *partition.Partition[V], g *graph.Graph[V]) error {
	totals := make(map[[2]string]float64)
	for _, e := range g.Edges() {
		ku, ok := p.KeyOf(e.U)
		if !ok {
			return &MergeError{Op: "Penalties", Key: fmt.Sprintf("%v", e.U), Cause: ErrVertexUnassigned}
		}
		kv, ok := p.KeyOf(e.V)
		if !ok {
			return &MergeError{Op: "Penalties", Key: fmt.Sprintf("%v", e.V), Cause: ErrVertexUnassigned}
		}
		if ku == kv {
			continue
		}
		cu, ok := g.Color(e.U)
		if !ok {
			return &MergeError{Op: "Penalties", Key: fmt.Sprintf("%v", e.U), Cause: graph.ErrUncoloredVertex}
		}
		cv, ok := g.Color(e.V)
		if !ok {
			return &MergeError{Op: "Penalties", Key: fmt.Sprintf("%v", e.V), Cause: graph.ErrUncoloredVertex}
		}
		pair := [2]string{ku, kv}
		if kv < ku {
			pair = [2]string{kv, ku}
		}
		if cu == cv {
			totals[pair] += e.Weight
		} else {
			totals[pair] -= e.Weight
		}
	}
	for pair, penalty := range totals {
		if err := m.SetWeight(pair[0], pair[1], penalty); err != nil {
			return &MergeError{Op: "Penalties", Key: pair[0] + "-" + pair[1], Cause: err}
		}
	}
	return nil
}
