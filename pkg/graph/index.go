package graph

import "golang.org/x/exp/constraints"

// Index is a precomputed bidirectional mapping between vertices and dense
// positions in sorted identifier order. Position i of a coloring bit string
// always refers to vertex At(i).
type Index[V constraints.Ordered] struct {
	byVertex map[V]int
	byPos    []V
}

func newIndex[V constraints.Ordered](sorted []V) *Index[V] {
	ix := &Index[V]{
		byVertex: make(map[V]int, len(sorted)),
		byPos:    sorted,
	}
	for i, v := range sorted {
		ix.byVertex[v] = i
	}
	return ix
}

// Of returns the dense position of v.
func (ix *Index[V]) Of(v V) (int, bool) {
	i, ok := ix.byVertex[v]
	return i, ok
}

// At returns the vertex at position i.
func (ix *Index[V]) At(i int) V {
	return ix.byPos[i]
}

// Len returns the number of indexed vertices.
func (ix *Index[V]) Len() int {
	return len(ix.byPos)
}
