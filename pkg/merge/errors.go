package merge

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrVertexUnassigned indicates a vertex that no subgraph of the
	// partition owns. This is a broken partition invariant and is always
	// fatal, never silently ignored.
	ErrVertexUnassigned = errors.New("vertex not owned by any subgraph")

	// ErrMissingResult indicates a subgraph key with no coloring result.
	ErrMissingResult = errors.New("no coloring result for subgraph")

	// ErrFlipBitsLength indicates a flip-decision bit string whose length
	// does not match the merger graph's vertex count.
	ErrFlipBitsLength = errors.New("flip bit string length mismatch")
)

// MergeError provides structured error information for merge operations.
type MergeError struct {
	Op    string // Operation that failed (e.g., "Border", "Penalties")
	Key   string // Subgraph key or vertex description
	Cause error
}

// Error implements the error interface.
func (e *MergeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *MergeError) Unwrap() error {
	return e.Cause
}
