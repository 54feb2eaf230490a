package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput is returned by [Build] when the vertex count is not
	// positive or when no edge survives validation. Nothing can be searched.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrInvalidEdge is the sentinel wrapped by every [InvalidEdge].
	ErrInvalidEdge = errors.New("invalid edge")

	// ErrUnknownBackend is returned by [ParseBackend] for unrecognized names.
	ErrUnknownBackend = errors.New("unknown neighbor-set backend")
)

// Reasons attached to an [InvalidEdge].
const (
	ReasonOutOfRange = "endpoint out of range"
	ReasonSelfLoop   = "self-loop"
)

// InvalidEdge describes an edge that [Build] skipped. It is a diagnostic, not
// a failure: the graph is still built from the remaining edges.
type InvalidEdge struct {
	Edge        Edge   // The offending edge as given
	Index       int    // Position in the input edge list
	Reason      string // ReasonOutOfRange or ReasonSelfLoop
	VertexCount int    // Declared vertex count at build time
}

// Error implements the error interface.
func (e InvalidEdge) Error() string {
	if e.Reason == ReasonOutOfRange {
		return fmt.Sprintf("invalid edge (%d, %d) for a graph with %d vertices: %s",
			e.Edge.U, e.Edge.V, e.VertexCount, e.Reason)
	}
	return fmt.Sprintf("invalid edge (%d, %d): %s", e.Edge.U, e.Edge.V, e.Reason)
}

// Unwrap returns ErrInvalidEdge so callers can match with errors.Is.
func (e InvalidEdge) Unwrap() error { return ErrInvalidEdge }
