package partition

import "errors"

// Common sentinel errors
var (
	// ErrDegenerate is returned when partitioning is requested for a graph
	// that is too small to subdivide. Callers guard against this with the
	// leaf-case check, so surfacing it indicates a caller bug.
	ErrDegenerate = errors.New("graph too small to partition")

	// ErrInvariantViolated is returned when a detector produces vertex sets
	// that are not disjoint or do not cover the graph.
	ErrInvariantViolated = errors.New("partition invariant violated")

	// ErrNonDecreasing is returned when a partition part is not strictly
	// smaller than the graph being partitioned, which would make the
	// recursive decomposition loop forever.
	ErrNonDecreasing = errors.New("partition part not smaller than parent")

	// ErrInvalidMaxParts is returned for a non-positive part bound.
	ErrInvalidMaxParts = errors.New("max parts must be at least 1")
)
