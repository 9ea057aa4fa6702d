package solver

import (
	"context"
	"math/rand"

	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
)

// Default knobs for the annealing optimizer.
const (
	DefaultLayers    = 1
	DefaultMaxSweeps = 200
	// restartDivisor converts a shot budget into restart attempts.
	restartDivisor = 2000
)

// Anneal is a seeded multi-restart local-search optimizer. Each restart
// starts from a random assignment and greedily flips vertices while a flip
// improves the cut; the best restart wins. Layers plays the role of the
// circuit-depth knob of a variational optimizer: deeper runs get more
// sweeps per restart.
type Anneal[V constraints.Ordered] struct {
	Layers    int
	MaxSweeps int
}

// NewAnneal creates an optimizer with default knobs.
func NewAnneal[V constraints.Ordered]() *Anneal[V] {
	return &Anneal[V]{Layers: DefaultLayers, MaxSweeps: DefaultMaxSweeps}
}

// Solve implements Optimizer. The same seed always yields the same bit
// string.
func (a *Anneal[V]) Solve(ctx context.Context, g *graph.Graph[V], seed int64, shots int) (string, error) {
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return "", ErrEmptyGraph
	}

	layers := a.Layers
	if layers < 1 {
		layers = DefaultLayers
	}
	maxSweeps := a.MaxSweeps
	if maxSweeps < 1 {
		maxSweeps = DefaultMaxSweeps
	}
	restarts := shots/restartDivisor + 1

	rng := rand.New(rand.NewSource(seed))
	var best graph.Coloring[V]
	bestCut := 0.0
	for r := 0; r < restarts; r++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		c := randomColoring(vertices, rng)
		improve(g, vertices, c, layers*maxSweeps)
		cut, err := graph.CutOf(g, c)
		if err != nil {
			return "", err
		}
		if best == nil || cut > bestCut {
			best = c
			bestCut = cut
		}
	}
	return best.BitString(vertices)
}

func randomColoring[V constraints.Ordered](vertices []V, rng *rand.Rand) graph.Coloring[V] {
	c := make(graph.Coloring[V], len(vertices))
	for _, v := range vertices {
		if rng.Intn(2) == 1 {
			c[v] = graph.ColorOne
		} else {
			c[v] = graph.ColorZero
		}
	}
	return c
}

// improve runs greedy single-vertex flips until a local optimum or the
// sweep budget is reached. Visiting vertices in sorted order keeps the
// walk deterministic.
func improve[V constraints.Ordered](g *graph.Graph[V], vertices []V, c graph.Coloring[V], maxSweeps int) {
	for sweep := 0; sweep < maxSweeps; sweep++ {
		changed := false
		for _, v := range vertices {
			if flipGain(g, c, v) > 0 {
				c[v] = c[v].Flip()
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// flipGain is the cut-value change of flipping v: uncut incident edges
// become cut (+w) and cut ones become uncut (-w).
func flipGain[V constraints.Ordered](g *graph.Graph[V], c graph.Coloring[V], v V) float64 {
	gain := 0.0
	for _, u := range g.Neighbors(v) {
		w, _ := g.Weight(v, u)
		if c[u] == c[v] {
			gain += w
		} else {
			gain -= w
		}
	}
	return gain
}
