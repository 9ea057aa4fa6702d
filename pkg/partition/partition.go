// Package partition turns a graph into an ordered mapping of named,
// vertex-disjoint, edge-induced subgraphs using community detection, and
// answers which subgraph owns a given vertex.
package partition

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
)

// Partition is an ordered mapping from a hierarchical key (for example
// "Global:2:1") to a vertex-induced subgraph of the parent graph. Keys
// encode the recursive decomposition path and are unique within a run.
type Partition[V constraints.Ordered] struct {
	keys      []string
	subgraphs map[string]*graph.Graph[V]
	owner     map[V]string
}

// Keys returns the subgraph keys in detection order.
// The returned slice must not be modified.
func (p *Partition[V]) Keys() []string {
	return p.keys
}

// Subgraph returns the subgraph stored under key.
func (p *Partition[V]) Subgraph(key string) (*graph.Graph[V], bool) {
	g, ok := p.subgraphs[key]
	return g, ok
}

// KeyOf returns the key of the subgraph owning vertex v. The lookup map
// is precomputed when the partition is built, so this is O(1) rather than
// a scan over the subgraphs.
func (p *Partition[V]) KeyOf(v V) (string, bool) {
	key, ok := p.owner[v]
	return key, ok
}

// Len returns the number of subgraphs.
func (p *Partition[V]) Len() int {
	return len(p.keys)
}

// Partitioner wraps a community detector and produces named partitions.
type Partitioner[V constraints.Ordered] struct {
	detector Detector[V]
}

// NewPartitioner creates a partitioner. A nil detector selects greedy
// modularity detection with the default resolution.
func NewPartitioner[V constraints.Ordered](d Detector[V]) *Partitioner[V] {
	if d == nil {
		d = NewGreedyModularity[V]()
	}
	return &Partitioner[V]{detector: d}
}

// Partition subdivides g into at most maxParts named subgraphs. Keys are
// prefix:i in detection order. Every vertex of g lands in exactly one
// subgraph; every part is strictly smaller than g, guarding the recursive
// decomposition against non-termination.
//
// Callers must not invoke Partition on a graph with fewer than 2 vertices
// or without edges; that is the leaf case.
func (p *Partitioner[V]) Partition(g *graph.Graph[V], maxParts int, prefix string) (*Partition[V], error) {
	if maxParts < 1 {
		return nil, ErrInvalidMaxParts
	}
	if g.NumVertices() < 2 || g.NumEdges() < 1 {
		return nil, fmt.Errorf("%w: %d vertices, %d edges", ErrDegenerate, g.NumVertices(), g.NumEdges())
	}

	communities, err := p.detector.Communities(g, maxParts)
	if err != nil {
		return nil, err
	}
	if len(communities) == 0 {
		return nil, fmt.Errorf("%w: detector returned no communities", ErrDegenerate)
	}

	// A single community covering the whole graph would recurse forever.
	// Fall back to a deterministic bisection of the sorted vertex list.
	if len(communities) == 1 && len(communities[0]) == g.NumVertices() {
		vertices := g.Vertices()
		half := len(vertices) / 2
		communities = [][]V{vertices[:half], vertices[half:]}
	}

	part := &Partition[V]{
		keys:      make([]string, 0, len(communities)),
		subgraphs: make(map[string]*graph.Graph[V], len(communities)),
		owner:     make(map[V]string, g.NumVertices()),
	}
	for i, members := range communities {
		key := fmt.Sprintf("%s:%d", prefix, i)
		sub, err := g.Induced(members)
		if err != nil {
			return nil, fmt.Errorf("subgraph %s: %w", key, err)
		}
		if sub.NumVertices() >= g.NumVertices() {
			return nil, fmt.Errorf("%w: %s has %d of %d vertices",
				ErrNonDecreasing, key, sub.NumVertices(), g.NumVertices())
		}
		for _, v := range members {
			if owner, dup := part.owner[v]; dup {
				return nil, fmt.Errorf("%w: vertex %v in %s and %s",
					ErrInvariantViolated, v, owner, key)
			}
			part.owner[v] = key
		}
		part.keys = append(part.keys, key)
		part.subgraphs[key] = sub
	}
	if len(part.owner) != g.NumVertices() {
		return nil, fmt.Errorf("%w: %d of %d vertices covered",
			ErrInvariantViolated, len(part.owner), g.NumVertices())
	}
	return part, nil
}
