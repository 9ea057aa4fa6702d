package graph

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Coloring is an immutable-by-convention snapshot of vertex colors.
// Recursive solver calls return colorings for their subtree instead of
// relying on shared graph mutation; callers merge child snapshots into
// their own result.
type Coloring[V constraints.Ordered] map[V]Color

// Clone returns a copy of the coloring.
func (c Coloring[V]) Clone() Coloring[V] {
	out := make(Coloring[V], len(c))
	for v, col := range c {
		out[v] = col
	}
	return out
}

// Merge copies all entries of other into c and returns c.
func (c Coloring[V]) Merge(other Coloring[V]) Coloring[V] {
	for v, col := range other {
		c[v] = col
	}
	return c
}

// BitString renders the coloring canonically: one bit per vertex, in the
// given sorted vertex order. Every vertex must be colored.
func (c Coloring[V]) BitString(vertices []V) (string, error) {
	var b strings.Builder
	b.Grow(len(vertices))
	for _, v := range vertices {
		col, ok := c[v]
		if !ok {
			return "", opError("BitString", fmt.Sprintf("%v", v), ErrUncoloredVertex)
		}
		if col == ColorZero {
			b.WriteByte('0')
		} else {
			b.WriteByte('1')
		}
	}
	return b.String(), nil
}

// ParseColoring decodes a canonical bit string over the given sorted
// vertex order.
func ParseColoring[V constraints.Ordered](vertices []V, bits string) (Coloring[V], error) {
	if len(bits) != len(vertices) {
		return nil, opError("ParseColoring",
			fmt.Sprintf("%d bits for %d vertices", len(bits), len(vertices)), ErrBitStringLength)
	}
	c := make(Coloring[V], len(vertices))
	for i, v := range vertices {
		switch bits[i] {
		case '0':
			c[v] = ColorZero
		case '1':
			c[v] = ColorOne
		default:
			return nil, opError("ParseColoring", fmt.Sprintf("position %d", i), ErrInvalidBit)
		}
	}
	return c, nil
}

// ApplyColoring records every entry of the coloring on the graph.
func (g *Graph[V]) ApplyColoring(c Coloring[V]) error {
	for v, col := range c {
		if err := g.SetColor(v, col); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns the colors currently recorded on the graph. Every
// vertex must be colored.
func (g *Graph[V]) Snapshot() (Coloring[V], error) {
	c := make(Coloring[V], g.NumVertices())
	for _, v := range g.Vertices() {
		col, ok := g.Color(v)
		if !ok {
			return nil, opError("Snapshot", fmt.Sprintf("%v", v), ErrUncoloredVertex)
		}
		c[v] = col
	}
	return c, nil
}
