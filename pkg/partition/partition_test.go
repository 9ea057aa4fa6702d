package partition

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
)

// twoCliques builds two 4-cliques joined by a single bridge edge.
func twoCliques(t *testing.T) *graph.Graph[uint64] {
	t.Helper()

	g := graph.New[uint64]()
	for _, base := range []uint64{0, 4} {
		for i := base; i < base+4; i++ {
			for j := i + 1; j < base+4; j++ {
				require.NoError(t, g.AddUnitEdge(i, j))
			}
		}
	}
	require.NoError(t, g.AddUnitEdge(3, 4))
	return g
}

func TestPartition_TwoCliques(t *testing.T) {
	g := twoCliques(t)
	p := NewPartitioner[uint64](nil)

	part, err := p.Partition(g, 4, "Global")
	require.NoError(t, err)

	require.Equal(t, 2, part.Len(), "cliques should be detected as communities")
	assert.Equal(t, []string{"Global:0", "Global:1"}, part.Keys())

	// Each clique stays together.
	key0, ok := part.KeyOf(0)
	require.True(t, ok)
	for v := uint64(1); v < 4; v++ {
		key, ok := part.KeyOf(v)
		require.True(t, ok)
		assert.Equal(t, key0, key)
	}
	key4, ok := part.KeyOf(4)
	require.True(t, ok)
	assert.NotEqual(t, key0, key4)

	// Subgraphs are edge-induced: clique edges survive, the bridge does not.
	sub, ok := part.Subgraph(key0)
	require.True(t, ok)
	assert.Equal(t, 6, sub.NumEdges())
	assert.False(t, sub.HasEdge(3, 4))
}

func TestPartition_KeysAreHierarchical(t *testing.T) {
	g := twoCliques(t)
	p := NewPartitioner[uint64](nil)

	part, err := p.Partition(g, 4, "Global:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Global:1:0", "Global:1:1"}, part.Keys())
}

func TestPartition_DegenerateGraphRejected(t *testing.T) {
	p := NewPartitioner[uint64](nil)

	single := graph.New[uint64]()
	single.AddVertex(1)
	_, err := p.Partition(single, 2, "Global")
	require.ErrorIs(t, err, ErrDegenerate)

	edgeless := graph.New[uint64]()
	edgeless.AddVertex(1)
	edgeless.AddVertex(2)
	_, err = p.Partition(edgeless, 2, "Global")
	require.ErrorIs(t, err, ErrDegenerate)
}

func TestPartition_InvalidMaxParts(t *testing.T) {
	p := NewPartitioner[uint64](nil)
	_, err := p.Partition(twoCliques(t), 0, "Global")
	require.ErrorIs(t, err, ErrInvalidMaxParts)
}

// wholeGraphDetector returns the entire vertex set as one community,
// simulating a detector that fails to subdivide.
type wholeGraphDetector struct{}

func (wholeGraphDetector) Communities(g *graph.Graph[uint64], maxParts int) ([][]uint64, error) {
	return [][]uint64{g.Vertices()}, nil
}

func TestPartition_SingleCommunityBisected(t *testing.T) {
	g := twoCliques(t)
	p := NewPartitioner[uint64](wholeGraphDetector{})

	part, err := p.Partition(g, 4, "Global")
	require.NoError(t, err)

	require.Equal(t, 2, part.Len())
	for _, key := range part.Keys() {
		sub, _ := part.Subgraph(key)
		assert.Less(t, sub.NumVertices(), g.NumVertices(),
			"every part must be strictly smaller than the parent")
	}
}

// overlappingDetector produces sets that share a vertex.
type overlappingDetector struct{}

func (overlappingDetector) Communities(g *graph.Graph[uint64], maxParts int) ([][]uint64, error) {
	vs := g.Vertices()
	return [][]uint64{vs[:2], vs[1:]}, nil
}

func TestPartition_OverlapDetected(t *testing.T) {
	p := NewPartitioner[uint64](overlappingDetector{})
	_, err := p.Partition(twoCliques(t), 4, "Global")
	require.ErrorIs(t, err, ErrInvariantViolated)
}

func TestGreedyModularity_RespectsMaxParts(t *testing.T) {
	// Ring of 30 vertices: no strong community structure, the part bound
	// still has to hold.
	g := graph.New[uint64]()
	for i := uint64(0); i < 30; i++ {
		require.NoError(t, g.AddUnitEdge(i, (i+1)%30))
	}

	det := NewGreedyModularity[uint64]()
	comms, err := det.Communities(g, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(comms), 5)
}

// TestPartition_CoversAndDisjoint is the core partition property: for any
// graph and part bound, the parts are pairwise disjoint and cover V(G).
func TestPartition_CoversAndDisjoint(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40

	properties := gopter.NewProperties(parameters)

	properties.Property("partition covers all vertices exactly once", prop.ForAll(
		func(seed int64, n, extra, maxParts int) bool {
			// Connected-ish random graph: spanning chain plus extras.
			g, err := graph.GNM(n, min(extra, n*(n-1)/2), seed)
			if err != nil {
				return false
			}
			for i := uint64(0); i+1 < uint64(n); i++ {
				_ = g.AddUnitEdge(i, i+1)
			}

			part, err := NewPartitioner[uint64](nil).Partition(g, maxParts, "Global")
			if err != nil {
				return false
			}

			seen := make(map[uint64]string)
			for _, key := range part.Keys() {
				sub, ok := part.Subgraph(key)
				if !ok {
					return false
				}
				for _, v := range sub.Vertices() {
					if _, dup := seen[v]; dup {
						return false
					}
					seen[v] = key
					if owner, ok := part.KeyOf(v); !ok || owner != key {
						return false
					}
				}
				if sub.NumVertices() >= g.NumVertices() {
					return false
				}
			}
			return len(seen) == g.NumVertices()
		},
		gen.Int64(),
		gen.IntRange(4, 40),
		gen.IntRange(0, 60),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}

func TestChunkVertices(t *testing.T) {
	for _, tc := range []struct {
		n, parts int
		want     []int
	}{
		{10, 3, []int{4, 3, 3}},
		{4, 8, []int{1, 1, 1, 1}},
		{6, 2, []int{3, 3}},
	} {
		t.Run(fmt.Sprintf("%d_into_%d", tc.n, tc.parts), func(t *testing.T) {
			vs := make([]uint64, tc.n)
			for i := range vs {
				vs[i] = uint64(i)
			}
			chunks := chunkVertices(vs, tc.parts)
			require.Len(t, chunks, len(tc.want))
			for i, c := range chunks {
				assert.Len(t, c, tc.want[i])
			}
		})
	}
}
