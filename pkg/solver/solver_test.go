package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
)

func TestAnneal_SingleEdge(t *testing.T) {
	g := graph.New[uint64]()
	require.NoError(t, g.AddUnitEdge(0, 1))

	bits, err := NewAnneal[uint64]().Solve(context.Background(), g, 13, 1000)
	require.NoError(t, err)
	require.Len(t, bits, 2)
	assert.NotEqual(t, bits[0], bits[1], "a single edge is always cut by an optimal coloring")
}

func TestAnneal_Reproducible(t *testing.T) {
	g, err := graph.RandomRegular(4, 24, 99)
	require.NoError(t, err)

	opt := NewAnneal[uint64]()
	a, err := opt.Solve(context.Background(), g, 13, 10000)
	require.NoError(t, err)
	b, err := opt.Solve(context.Background(), g, 13, 10000)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed must give the same bit string")
}

func TestAnneal_BipartiteIsFullyCut(t *testing.T) {
	// Complete bipartite K3,3: max cut equals total weight.
	g := graph.New[uint64]()
	for u := uint64(0); u < 3; u++ {
		for v := uint64(3); v < 6; v++ {
			require.NoError(t, g.AddUnitEdge(u, v))
		}
	}

	bits, err := NewAnneal[uint64]().Solve(context.Background(), g, 7, 10000)
	require.NoError(t, err)

	c, err := graph.ParseColoring(g.Vertices(), bits)
	require.NoError(t, err)
	cut, err := graph.CutOf(g, c)
	require.NoError(t, err)
	assert.Equal(t, 9.0, cut)
}

func TestAnneal_EmptyGraph(t *testing.T) {
	_, err := NewAnneal[uint64]().Solve(context.Background(), graph.New[uint64](), 1, 100)
	require.ErrorIs(t, err, ErrEmptyGraph)
}

func TestAnneal_ContextCancelled(t *testing.T) {
	g, err := graph.RandomRegular(4, 24, 5)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewAnneal[uint64]().Solve(ctx, g, 1, 100)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnneal_MergerGraphWeights(t *testing.T) {
	// String-keyed graph with a negative penalty edge: the optimizer must
	// prefer leaving the negative edge uncut.
	m := graph.New[string]()
	require.NoError(t, m.AddEdge("Global:0", "Global:1", 4))
	require.NoError(t, m.AddEdge("Global:1", "Global:2", -2))

	bits, err := NewAnneal[string]().Solve(context.Background(), m, 12345, 20000)
	require.NoError(t, err)

	c, err := graph.ParseColoring(m.Vertices(), bits)
	require.NoError(t, err)
	cut, err := graph.CutOf(m, c)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cut)
}

func TestOneExchange_Bounds(t *testing.T) {
	g, err := graph.GNM(20, 40, 3)
	require.NoError(t, err)

	cut, c, err := OneExchange(g, 17)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cut, 0.0)
	assert.LessOrEqual(t, cut, g.TotalWeight())
	assert.Len(t, c, 20)
}

func TestBaseline(t *testing.T) {
	g, err := graph.RandomRegular(4, 20, 11)
	require.NoError(t, err)

	stats, err := Baseline(g, 10, 42)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Runs)
	assert.LessOrEqual(t, stats.Min, stats.Mean)
	assert.LessOrEqual(t, stats.Mean, stats.Max)

	_, err = Baseline(g, 0, 42)
	require.ErrorIs(t, err, ErrInvalidRuns)
}
