package merge

import (
	"context"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
	"github.com/dd0wney/cluso-maxcut/pkg/partition"
	"github.com/dd0wney/cluso-maxcut/pkg/solver"
)

// Decision is the typed outcome of the merge step. A fallback is an
// expected, recoverable event (the optimizer did not converge); callers
// log and count it, then proceed with the no-flip default. Genuine
// internal-consistency bugs surface as errors instead, so the two are
// never conflated.
type Decision struct {
	// Flips maps each partition key to whether its subgraph's colors
	// should be inverted.
	Flips map[string]bool

	// Bits is the flip decision in canonical form, one bit per merger
	// vertex in sorted key order.
	Bits string

	// Trivial is set when every penalty was zero and the optimizer was
	// not invoked.
	Trivial bool

	// Fallback is set when the optimizer failed and the no-flip default
	// was substituted. Reason carries the failure.
	Fallback bool
	Reason   error
}

// FlipCount returns the number of subgraphs the decision flips.
func (d *Decision) FlipCount() int {
	n := 0
	for _, flip := range d.Flips {
		if flip {
			n++
		}
	}
	return n
}

func noFlips(keys []string) (map[string]bool, string) {
	flips := make(map[string]bool, len(keys))
	for _, key := range keys {
		flips[key] = false
	}
	return flips, strings.Repeat("0", len(keys))
}

// Decide computes penalties on the merger graph and chooses which
// subgraphs to flip. When every penalty is zero, flipping cannot improve
// the cut: the all-zero decision is returned without invoking the
// optimizer. Otherwise the optimizer runs on the penalty-weighted merger
// graph; maximizing the penalty-weighted cut over the flip variables is
// exactly the merger Hamiltonian objective. Optimizer failure degrades to
// the no-flip decision with Fallback set.
func Decide[V constraints.Ordered](
	ctx context.Context,
	g *graph.Graph[V],
	p *partition.Partition[V],
	m *graph.Graph[string],
	opt solver.Optimizer[string],
	seed int64,
	shots int,
) (*Decision, error) {
	if err := Penalties(m, p, g); err != nil {
		return nil, err
	}

	mergerKeys := m.Vertices()
	nontrivial := false
	for _, e := range m.Edges() {
		if e.Weight != 0 {
			nontrivial = true
			break
		}
	}
	if !nontrivial {
		flips, bits := noFlips(mergerKeys)
		return &Decision{Flips: flips, Bits: bits, Trivial: true}, nil
	}

	bits, err := opt.Solve(ctx, m, seed, shots)
	if err != nil {
		flips, zeros := noFlips(mergerKeys)
		return &Decision{Flips: flips, Bits: zeros, Fallback: true, Reason: err}, nil
	}
	if len(bits) != len(mergerKeys) {
		flips, zeros := noFlips(mergerKeys)
		return &Decision{Flips: flips, Bits: zeros, Fallback: true,
			Reason: &MergeError{Op: "Decide", Cause: ErrFlipBitsLength}}, nil
	}

	flips := make(map[string]bool, len(mergerKeys))
	for i, key := range mergerKeys {
		flips[key] = bits[i] == '1'
	}
	return &Decision{Flips: flips, Bits: bits}, nil
}

// ApplyFlips inverts the color of every vertex in each subgraph the
// decision flips, recording the change on g, and returns the revised
// coloring snapshot with its canonical bit string over g's sorted
// vertices. Applying the same decision twice restores the original
// coloring.
func ApplyFlips[V constraints.Ordered](
	g *graph.Graph[V],
	p *partition.Partition[V],
	d *Decision,
) (graph.Coloring[V], string, error) {
	for _, key := range p.Keys() {
		if !d.Flips[key] {
			continue
		}
		sub, ok := p.Subgraph(key)
		if !ok {
			return nil, "", &MergeError{Op: "ApplyFlips", Key: key, Cause: ErrMissingResult}
		}
		for _, v := range sub.Vertices() {
			c, ok := g.Color(v)
			if !ok {
				return nil, "", &MergeError{Op: "ApplyFlips", Key: key, Cause: graph.ErrUncoloredVertex}
			}
			if err := g.SetColor(v, c.Flip()); err != nil {
				return nil, "", err
			}
		}
	}
	coloring, err := g.Snapshot()
	if err != nil {
		return nil, "", err
	}
	bits, err := coloring.BitString(g.Vertices())
	if err != nil {
		return nil, "", err
	}
	return coloring, bits, nil
}

// WriteColors records per-subgraph coloring bit strings onto the parent
// graph, leaving the subgraph solutions unaltered. Each bit string is
// positional over its subgraph's sorted vertices.
func WriteColors[V constraints.Ordered](
	g *graph.Graph[V],
	p *partition.Partition[V],
	results map[string]string,
) error {
	for _, key := range p.Keys() {
		bits, ok := results[key]
		if !ok {
			return &MergeError{Op: "WriteColors", Key: key, Cause: ErrMissingResult}
		}
		sub, ok := p.Subgraph(key)
		if !ok {
			return &MergeError{Op: "WriteColors", Key: key, Cause: ErrMissingResult}
		}
		coloring, err := graph.ParseColoring(sub.Vertices(), bits)
		if err != nil {
			return &MergeError{Op: "WriteColors", Key: key, Cause: err}
		}
		if err := g.ApplyColoring(coloring); err != nil {
			return &MergeError{Op: "WriteColors", Key: key, Cause: err}
		}
	}
	return nil
}
