package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrSelfLoop         = errors.New("self loop not allowed")
	ErrVertexNotFound   = errors.New("vertex not found")
	ErrEdgeNotFound     = errors.New("edge not found")
	ErrUncoloredVertex  = errors.New("vertex has no color")
	ErrBitStringLength  = errors.New("bit string length mismatch")
	ErrInvalidBit       = errors.New("bit string contains a character other than 0 or 1")
	ErrEmptyGraph       = errors.New("graph has no vertices")
	ErrInvalidGenerator = errors.New("invalid generator parameters")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g., "AddEdge", "CutValue")
	Detail string // Additional context
	Cause  error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

func opError(op, detail string, cause error) error {
	return &GraphError{Op: op, Detail: detail, Cause: cause}
}
