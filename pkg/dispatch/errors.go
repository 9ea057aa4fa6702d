package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport indicates a transport-level failure. Transport errors
	// abort the run; there is no retry.
	ErrTransport = errors.New("transport failure")

	// ErrRunMismatch indicates a message stamped with a different run ID.
	ErrRunMismatch = errors.New("message belongs to a different run")

	// ErrNoWorkers indicates a distributed run configured without workers.
	ErrNoWorkers = errors.New("no workers configured")

	// ErrClosed indicates use of a closed transport.
	ErrClosed = errors.New("transport closed")

	// ErrBadMessage indicates a payload that could not be decoded.
	ErrBadMessage = errors.New("malformed message")
)

// DispatchError carries the failing operation and peer.
type DispatchError struct {
	Op    string
	Peer  int
	Cause error
}

func (e *DispatchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("dispatch: %s (peer %d)", e.Op, e.Peer)
	}
	return fmt.Sprintf("dispatch: %s (peer %d): %v", e.Op, e.Peer, e.Cause)
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}

func opError(op string, peer int, cause error) *DispatchError {
	return &DispatchError{Op: op, Peer: peer, Cause: cause}
}
