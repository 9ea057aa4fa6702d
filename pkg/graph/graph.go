// Package graph implements the weighted undirected graph model used by the
// divide-and-conquer max-cut engine: vertices with an optional binary color,
// weighted edges, vertex-induced subgraph views, and a dense vertex index in
// sorted identifier order.
package graph

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Color is a binary vertex color used to encode a cut.
type Color uint8

const (
	// ColorZero places a vertex on the first side of the cut.
	ColorZero Color = 0
	// ColorOne places a vertex on the second side of the cut.
	ColorOne Color = 1
)

// Flip returns the opposite color.
func (c Color) Flip() Color {
	return 1 - c
}

// Edge is an undirected weighted edge. U is always the smaller endpoint.
type Edge[V constraints.Ordered] struct {
	U, V   V
	Weight float64
}

// DefaultWeight is used when an edge is added without an explicit weight.
const DefaultWeight = 1.0

// Graph is a weighted undirected graph over totally-ordered vertex
// identifiers. Problem graphs use uint64 vertices; merger graphs use the
// string keys of a subgraph partition.
//
// A graph is structurally mutable only while it is being built. Derived
// views (induced subgraphs, border graphs, merger graphs) are new objects.
// Vertex colors may be written at any time.
type Graph[V constraints.Ordered] struct {
	adj    map[V]map[V]float64
	colors map[V]Color

	numEdges int

	// Sorted vertex list and dense index, rebuilt lazily after
	// structural changes.
	sorted []V
	index  *Index[V]
	dirty  bool
}

// New creates an empty graph.
func New[V constraints.Ordered]() *Graph[V] {
	return &Graph[V]{
		adj:    make(map[V]map[V]float64),
		colors: make(map[V]Color),
	}
}

// AddVertex adds an isolated vertex. Adding an existing vertex is a no-op.
func (g *Graph[V]) AddVertex(v V) {
	if _, ok := g.adj[v]; ok {
		return
	}
	g.adj[v] = make(map[V]float64)
	g.dirty = true
}

// AddEdge adds an undirected edge with the given weight, creating missing
// endpoints. Re-adding an existing edge overwrites its weight.
func (g *Graph[V]) AddEdge(u, v V, weight float64) error {
	if u == v {
		return opError("AddEdge", fmt.Sprintf("%v", u), ErrSelfLoop)
	}
	g.AddVertex(u)
	g.AddVertex(v)
	if _, ok := g.adj[u][v]; !ok {
		g.numEdges++
	}
	g.adj[u][v] = weight
	g.adj[v][u] = weight
	g.dirty = true
	return nil
}

// AddUnitEdge adds an edge with DefaultWeight.
func (g *Graph[V]) AddUnitEdge(u, v V) error {
	return g.AddEdge(u, v, DefaultWeight)
}

// SetWeight overwrites the weight of an existing edge. Used when a derived
// merger graph receives its penalty weights.
func (g *Graph[V]) SetWeight(u, v V, weight float64) error {
	if _, ok := g.adj[u][v]; !ok {
		return opError("SetWeight", fmt.Sprintf("%v-%v", u, v), ErrEdgeNotFound)
	}
	g.adj[u][v] = weight
	g.adj[v][u] = weight
	return nil
}

// HasVertex reports whether v is a vertex of the graph.
func (g *Graph[V]) HasVertex(v V) bool {
	_, ok := g.adj[v]
	return ok
}

// HasEdge reports whether the edge (u,v) exists.
func (g *Graph[V]) HasEdge(u, v V) bool {
	_, ok := g.adj[u][v]
	return ok
}

// Weight returns the weight of edge (u,v).
func (g *Graph[V]) Weight(u, v V) (float64, bool) {
	w, ok := g.adj[u][v]
	return w, ok
}

// NumVertices returns the vertex count.
func (g *Graph[V]) NumVertices() int {
	return len(g.adj)
}

// NumEdges returns the edge count.
func (g *Graph[V]) NumEdges() int {
	return g.numEdges
}

func (g *Graph[V]) rebuild() {
	if !g.dirty && g.sorted != nil {
		return
	}
	g.sorted = make([]V, 0, len(g.adj))
	for v := range g.adj {
		g.sorted = append(g.sorted, v)
	}
	slices.Sort(g.sorted)
	g.index = newIndex(g.sorted)
	g.dirty = false
}

// Vertices returns the vertices in sorted identifier order.
// The returned slice must not be modified.
func (g *Graph[V]) Vertices() []V {
	g.rebuild()
	return g.sorted
}

// Index returns the dense bidirectional vertex index for the current
// vertex set, built once per view in sorted identifier order.
func (g *Graph[V]) Index() *Index[V] {
	g.rebuild()
	return g.index
}

// Edges returns all edges in deterministic order: each edge once with
// U < V, sorted by (U, V).
func (g *Graph[V]) Edges() []Edge[V] {
	edges := make([]Edge[V], 0, g.numEdges)
	for _, u := range g.Vertices() {
		nbrs := make([]V, 0, len(g.adj[u]))
		for v := range g.adj[u] {
			if u < v {
				nbrs = append(nbrs, v)
			}
		}
		slices.Sort(nbrs)
		for _, v := range nbrs {
			edges = append(edges, Edge[V]{U: u, V: v, Weight: g.adj[u][v]})
		}
	}
	return edges
}

// Neighbors returns the neighbors of v in sorted order.
func (g *Graph[V]) Neighbors(v V) []V {
	nbrs := make([]V, 0, len(g.adj[v]))
	for u := range g.adj[v] {
		nbrs = append(nbrs, u)
	}
	slices.Sort(nbrs)
	return nbrs
}

// Degree returns the number of neighbors of v.
func (g *Graph[V]) Degree(v V) int {
	return len(g.adj[v])
}

// WeightedDegree returns the sum of weights of edges incident to v.
func (g *Graph[V]) WeightedDegree(v V) float64 {
	total := 0.0
	for _, w := range g.adj[v] {
		total += w
	}
	return total
}

// TotalWeight returns the sum of all edge weights.
func (g *Graph[V]) TotalWeight() float64 {
	total := 0.0
	for _, e := range g.Edges() {
		total += e.Weight
	}
	return total
}

// SetColor records the color of an existing vertex.
func (g *Graph[V]) SetColor(v V, c Color) error {
	if !g.HasVertex(v) {
		return opError("SetColor", fmt.Sprintf("%v", v), ErrVertexNotFound)
	}
	g.colors[v] = c
	return nil
}

// Color returns the color of v, if one has been recorded.
func (g *Graph[V]) Color(v V) (Color, bool) {
	c, ok := g.colors[v]
	return c, ok
}

// ClearColors removes all recorded colors.
func (g *Graph[V]) ClearColors() {
	g.colors = make(map[V]Color)
}

// Induced returns the vertex-induced subgraph on the given vertices: the
// new graph contains every listed vertex and every edge of g whose both
// endpoints are listed. Colors are not carried over.
func (g *Graph[V]) Induced(vertices []V) (*Graph[V], error) {
	sub := New[V]()
	for _, v := range vertices {
		if !g.HasVertex(v) {
			return nil, opError("Induced", fmt.Sprintf("%v", v), ErrVertexNotFound)
		}
		sub.AddVertex(v)
	}
	for _, v := range vertices {
		for u, w := range g.adj[v] {
			if v < u && sub.HasVertex(u) {
				if err := sub.AddEdge(v, u, w); err != nil {
					return nil, err
				}
			}
		}
	}
	return sub, nil
}

// Clone returns a deep copy of the graph, colors included.
func (g *Graph[V]) Clone() *Graph[V] {
	c := New[V]()
	for v, nbrs := range g.adj {
		c.AddVertex(v)
		for u, w := range nbrs {
			if v < u {
				_ = c.AddEdge(v, u, w)
			}
		}
	}
	for v, col := range g.colors {
		c.colors[v] = col
	}
	return c
}
