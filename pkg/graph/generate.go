package graph

import (
	"fmt"
	"math/rand"
)

// RandomRegular generates a random d-regular graph on n vertices (labelled
// 0..n-1) with unit edge weights, using the pairing model. n*d must be
// even and d < n. The same seed always yields the same graph.
func RandomRegular(d, n int, seed int64) (*Graph[uint64], error) {
	if d < 1 || n < 2 || d >= n || (n*d)%2 != 0 {
		return nil, opError("RandomRegular", fmt.Sprintf("d=%d n=%d", d, n), ErrInvalidGenerator)
	}
	rng := rand.New(rand.NewSource(seed))

	// Pairing model: each vertex owns d stubs; a uniform matching of the
	// stubs that avoids self loops and parallel edges is a d-regular
	// graph. Retry the whole matching when it gets stuck.
	for attempt := 0; attempt < 200; attempt++ {
		stubs := make([]uint64, 0, n*d)
		for v := 0; v < n; v++ {
			for k := 0; k < d; k++ {
				stubs = append(stubs, uint64(v))
			}
		}
		rng.Shuffle(len(stubs), func(i, j int) {
			stubs[i], stubs[j] = stubs[j], stubs[i]
		})

		g := New[uint64]()
		for v := 0; v < n; v++ {
			g.AddVertex(uint64(v))
		}
		ok := true
		for i := 0; i < len(stubs); i += 2 {
			u, v := stubs[i], stubs[i+1]
			if u == v || g.HasEdge(u, v) {
				ok = false
				break
			}
			if err := g.AddUnitEdge(u, v); err != nil {
				return nil, err
			}
		}
		if ok {
			return g, nil
		}
	}
	return nil, opError("RandomRegular", "pairing did not converge", ErrInvalidGenerator)
}

// GNM generates a uniform random graph with n vertices (labelled 0..n-1)
// and m distinct unit-weight edges. The same seed always yields the same
// graph.
func GNM(n, m int, seed int64) (*Graph[uint64], error) {
	maxEdges := n * (n - 1) / 2
	if n < 1 || m < 0 || m > maxEdges {
		return nil, opError("GNM", fmt.Sprintf("n=%d m=%d", n, m), ErrInvalidGenerator)
	}
	rng := rand.New(rand.NewSource(seed))

	g := New[uint64]()
	for v := 0; v < n; v++ {
		g.AddVertex(uint64(v))
	}
	for g.NumEdges() < m {
		u := uint64(rng.Intn(n))
		v := uint64(rng.Intn(n))
		if u == v || g.HasEdge(u, v) {
			continue
		}
		if err := g.AddUnitEdge(u, v); err != nil {
			return nil, err
		}
	}
	return g, nil
}
