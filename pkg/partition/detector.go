package partition

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
)

// Detector finds at most maxParts communities in a graph: an ordered list
// of pairwise-disjoint vertex sets that jointly cover the vertex set.
// Detection order is significant; subgraph keys are assigned from it.
type Detector[V constraints.Ordered] interface {
	Communities(g *graph.Graph[V], maxParts int) ([][]V, error)
}

// DefaultResolution matches the resolution used for the decomposition's
// modularity objective.
const DefaultResolution = 1.1

// GreedyModularity is an agglomerative modularity-maximizing detector.
// Every vertex starts in its own community; the pair of communities whose
// merge yields the largest modularity gain is merged repeatedly, first
// until the community count is within maxParts, then for as long as a
// merge still improves modularity.
type GreedyModularity[V constraints.Ordered] struct {
	// Resolution scales the null-model term of the modularity gain.
	// Values above 1 favour more, smaller communities.
	Resolution float64
}

// NewGreedyModularity creates a detector with DefaultResolution.
func NewGreedyModularity[V constraints.Ordered]() *GreedyModularity[V] {
	return &GreedyModularity[V]{Resolution: DefaultResolution}
}

// Communities implements Detector.
func (d *GreedyModularity[V]) Communities(g *graph.Graph[V], maxParts int) ([][]V, error) {
	if maxParts < 1 {
		return nil, ErrInvalidMaxParts
	}
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return nil, ErrDegenerate
	}

	totalWeight := g.TotalWeight()
	if totalWeight == 0 {
		// No edges to guide the merge. Chunk the sorted vertex list.
		return chunkVertices(vertices, maxParts), nil
	}

	resolution := d.Resolution
	if resolution == 0 {
		resolution = DefaultResolution
	}

	s := newMergeState(g, vertices)
	for len(s.ids) > 1 {
		if len(s.ids) <= maxParts {
			i, j, gain, ok := s.bestPair(resolution, totalWeight, true)
			if !ok || gain <= 0 {
				break
			}
			s.merge(i, j)
			continue
		}
		// Over the part budget: merge the least damaging pair even when
		// no merge improves modularity.
		i, j, _, ok := s.bestPair(resolution, totalWeight, false)
		if !ok {
			break
		}
		s.merge(i, j)
	}

	return s.communities(), nil
}

// mergeState tracks agglomerated communities. Communities are identified
// by the dense index of their smallest original vertex, which keeps every
// step deterministic.
type mergeState[V constraints.Ordered] struct {
	ids     []int           // active community ids, sorted
	members map[int][]V     // community id -> member vertices
	degree  map[int]float64 // community id -> summed weighted degree
	between map[int]map[int]float64
}

func newMergeState[V constraints.Ordered](g *graph.Graph[V], vertices []V) *mergeState[V] {
	s := &mergeState[V]{
		ids:     make([]int, len(vertices)),
		members: make(map[int][]V, len(vertices)),
		degree:  make(map[int]float64, len(vertices)),
		between: make(map[int]map[int]float64, len(vertices)),
	}
	ix := g.Index()
	for i, v := range vertices {
		s.ids[i] = i
		s.members[i] = []V{v}
		s.degree[i] = g.WeightedDegree(v)
		s.between[i] = make(map[int]float64)
	}
	for _, e := range g.Edges() {
		iu, _ := ix.Of(e.U)
		iv, _ := ix.Of(e.V)
		s.between[iu][iv] += e.Weight
		s.between[iv][iu] += e.Weight
	}
	return s
}

// bestPair returns the pair of communities with the largest modularity
// gain. With connectedOnly set, only pairs joined by at least one edge are
// considered. Ties break on the smaller id pair.
func (s *mergeState[V]) bestPair(resolution, totalWeight float64, connectedOnly bool) (int, int, float64, bool) {
	bestI, bestJ := -1, -1
	bestGain := 0.0
	found := false
	twoM2 := 2 * totalWeight * totalWeight

	for a := 0; a < len(s.ids); a++ {
		i := s.ids[a]
		for b := a + 1; b < len(s.ids); b++ {
			j := s.ids[b]
			eBetween, connected := s.between[i][j]
			if connectedOnly && !connected {
				continue
			}
			gain := eBetween/totalWeight - resolution*s.degree[i]*s.degree[j]/twoM2
			if !found || gain > bestGain {
				found = true
				bestGain = gain
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ, bestGain, found
}

// merge folds community j into community i.
func (s *mergeState[V]) merge(i, j int) {
	s.members[i] = append(s.members[i], s.members[j]...)
	s.degree[i] += s.degree[j]

	for k, w := range s.between[j] {
		if k == i {
			continue
		}
		s.between[i][k] += w
		s.between[k][i] += w
		delete(s.between[k], j)
	}
	delete(s.between[i], j)
	delete(s.between, j)
	delete(s.members, j)
	delete(s.degree, j)

	pos, _ := slices.BinarySearch(s.ids, j)
	s.ids = slices.Delete(s.ids, pos, pos+1)
}

// communities returns the final communities, largest first, members
// sorted, with ties broken by smallest member.
func (s *mergeState[V]) communities() [][]V {
	out := make([][]V, 0, len(s.ids))
	for _, id := range s.ids {
		members := slices.Clone(s.members[id])
		slices.Sort(members)
		out = append(out, members)
	}
	slices.SortStableFunc(out, func(a, b []V) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		switch {
		case a[0] < b[0]:
			return -1
		case a[0] > b[0]:
			return 1
		}
		return 0
	})
	return out
}

// chunkVertices splits a sorted vertex list into at most maxParts
// contiguous runs of near-equal size.
func chunkVertices[V constraints.Ordered](vertices []V, maxParts int) [][]V {
	parts := maxParts
	if parts > len(vertices) {
		parts = len(vertices)
	}
	out := make([][]V, 0, parts)
	base := len(vertices) / parts
	extra := len(vertices) % parts
	start := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < extra {
			size++
		}
		out = append(out, slices.Clone(vertices[start:start+size]))
		start += size
	}
	return out
}
