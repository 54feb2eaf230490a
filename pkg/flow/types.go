package flow

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when the source vertex is out of range.
	ErrSourceNotFound = errors.New("flow: source vertex not found")
	// ErrSinkNotFound is returned when the sink vertex is out of range.
	ErrSinkNotFound = errors.New("flow: sink vertex not found")
	// ErrVertexNotFound is returned by AddEdge for an out-of-range endpoint.
	ErrVertexNotFound = errors.New("flow: vertex not found")
)

// EdgeError is returned when an arc has a negative capacity.
type EdgeError struct {
	From, To int
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on arc %d→%d: %g", e.From, e.To, e.Cap)
}

// DefaultEpsilon is the capacity threshold used when Options.Epsilon is zero.
const DefaultEpsilon = 1e-9

// Options configures a Network.
type Options struct {
	// Epsilon treats residual capacities at or below it as zero.
	Epsilon float64
}

func (o *Options) normalize() {
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
}
