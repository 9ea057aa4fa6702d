package dispatch

import (
	"github.com/dd0wney/cluso-maxcut/pkg/graph"
)

// WireEdge is one weighted edge on the wire.
type WireEdge struct {
	U      uint64  `json:"u"`
	V      uint64  `json:"v"`
	Weight float64 `json:"w"`
}

// WireGraph is the transferable form of a problem subgraph. Vertices are
// listed explicitly so isolated vertices survive the round trip.
type WireGraph struct {
	Vertices []uint64   `json:"vertices"`
	Edges    []WireEdge `json:"edges"`
}

// FromGraph converts a graph into its wire form.
func FromGraph(g *graph.Graph[uint64]) WireGraph {
	edges := g.Edges()
	w := WireGraph{
		Vertices: g.Vertices(),
		Edges:    make([]WireEdge, 0, len(edges)),
	}
	for _, e := range edges {
		w.Edges = append(w.Edges, WireEdge{U: e.U, V: e.V, Weight: e.Weight})
	}
	return w
}

// ToGraph rebuilds a graph from its wire form.
func (w WireGraph) ToGraph() (*graph.Graph[uint64], error) {
	g := graph.New[uint64]()
	for _, v := range w.Vertices {
		g.AddVertex(v)
	}
	for _, e := range w.Edges {
		if err := g.AddEdge(e.U, e.V, e.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Assignment is one subgraph handed to a worker.
type Assignment struct {
	Key   string    `json:"key"`
	Graph WireGraph `json:"graph"`
}

// AssignmentBatch carries a worker's full share of one run.
type AssignmentBatch struct {
	Assignments []Assignment `json:"assignments"`
}

// ResultBatch carries a worker's keyed solutions back to the coordinator.
// Keys identify subgraphs, so arrival order does not matter.
type ResultBatch struct {
	WorkerID int               `json:"worker_id"`
	Bits     map[string]string `json:"bits"`
}

// HelloMessage announces a worker to the coordinator.
type HelloMessage struct {
	WorkerID int    `json:"worker_id"`
	Version  string `json:"version"`
}

// ErrorMessage reports a worker-side failure.
type ErrorMessage struct {
	WorkerID int    `json:"worker_id"`
	Message  string `json:"message"`
	Fatal    bool   `json:"fatal"`
}
