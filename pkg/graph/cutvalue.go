package graph

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// CutValue returns the weighted cut value of the graph under its recorded
// colors: the sum of weights of edges whose endpoints carry different
// colors. Every vertex must be colored.
func (g *Graph[V]) CutValue() (float64, error) {
	for _, v := range g.Vertices() {
		if _, ok := g.Color(v); !ok {
			return 0, opError("CutValue", fmt.Sprintf("%v", v), ErrUncoloredVertex)
		}
	}
	cut := 0.0
	for _, e := range g.Edges() {
		cu, _ := g.Color(e.U)
		cv, _ := g.Color(e.V)
		if cu != cv {
			cut += e.Weight
		}
	}
	return cut, nil
}

// CutOf evaluates the cut value of g under an explicit coloring snapshot
// without touching the colors recorded on the graph.
func CutOf[V constraints.Ordered](g *Graph[V], c Coloring[V]) (float64, error) {
	for _, v := range g.Vertices() {
		if _, ok := c[v]; !ok {
			return 0, opError("CutOf", fmt.Sprintf("%v", v), ErrUncoloredVertex)
		}
	}
	cut := 0.0
	for _, e := range g.Edges() {
		if c[e.U] != c[e.V] {
			cut += e.Weight
		}
	}
	return cut, nil
}
