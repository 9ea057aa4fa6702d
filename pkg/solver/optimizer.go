// Package solver holds the black-box cut optimizers the decomposition
// engine delegates to: the Optimizer contract, a seeded local-search
// implementation, and the classical one-exchange baseline used for
// comparison runs.
package solver

import (
	"context"
	"errors"

	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
)

// Common sentinel errors
var (
	ErrEmptyGraph  = errors.New("optimizer requires a non-empty graph")
	ErrInvalidRuns = errors.New("baseline requires at least one run")
)

// Optimizer chooses a 2-coloring of a weighted graph, maximizing the cut
// value on a best-effort basis. Edge weights may be negative, as they are
// when a merger graph carries flip penalties.
//
// The result is one bit per vertex in sorted vertex order. Implementations
// must be reproducible: the same graph, seed and shot count always yield
// the same bit string. The engine's retry and fallback logic relies on
// that contract.
type Optimizer[V constraints.Ordered] interface {
	Solve(ctx context.Context, g *graph.Graph[V], seed int64, shots int) (string, error)
}
