package clique

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/cliquer/pkg/degeneracy"
	"github.com/matzehuels/cliquer/pkg/graph"
)

// CheckInterval is the default number of expansion steps between context checks.
const CheckInterval = 1024

// ErrUnknownSeeding is returned by [ParseSeeding] for unrecognized names.
var ErrUnknownSeeding = errors.New("unknown seeding")

// Seeding selects how the outer loop starts searches.
type Seeding int

const (
	// SeedDegeneracy starts one search per vertex in degeneracy order.
	SeedDegeneracy Seeding = iota
	// SeedNone starts a single search over all vertices.
	SeedNone
)

func (s Seeding) String() string {
	switch s {
	case SeedDegeneracy:
		return "degeneracy"
	case SeedNone:
		return "none"
	}
	return fmt.Sprintf("Seeding(%d)", int(s))
}

// SeedingNames lists the names accepted by ParseSeeding.
var SeedingNames = []string{"degeneracy", "none"}

// ParseSeeding maps a name to its Seeding. Matching ignores case.
func ParseSeeding(name string) (Seeding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "degeneracy", "":
		return SeedDegeneracy, nil
	case "none":
		return SeedNone, nil
	}
	return SeedDegeneracy, fmt.Errorf("%w: %q", ErrUnknownSeeding, name)
}

// Options configures Enumerate. The zero value uses MaxIntersection pivots
// and degeneracy seeding.
type Options struct {
	Pivot   Pivot
	Seeding Seeding

	// Ordering is reused for SeedDegeneracy when set; it must have been
	// computed from the same graph. Otherwise Enumerate computes one.
	Ordering *degeneracy.Ordering

	// Visit, if set, receives every maximal clique as it is found. The slice
	// is a copy and may be retained.
	Visit func(clique []int)

	// CheckInterval is the number of expansion steps between context
	// checks. Zero means CheckInterval.
	CheckInterval int
}

// Enumerate counts every maximal clique of g.
//
// If ctx ends before the search completes, Enumerate returns ctx.Err() and no
// histogram; partial counts are never returned.
func Enumerate(ctx context.Context, g *graph.Graph, opts Options) (*Histogram, error) {
	if opts.Pivot == nil {
		opts.Pivot = MaxIntersection{}
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = CheckInterval
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hist := &Histogram{}
	s := &searcher{
		ctx:      ctx,
		g:        g,
		pivot:    opts.Pivot,
		hist:     hist,
		visit:    opts.Visit,
		interval: opts.CheckInterval,
	}

	switch opts.Seeding {
	case SeedDegeneracy:
		o := opts.Ordering
		if o == nil {
			o = degeneracy.Compute(g)
		}
		for _, v := range o.Order {
			later, earlier := o.Split(g, v)
			if err := s.search([]int{v}, later, earlier); err != nil {
				return nil, err
			}
		}
	case SeedNone:
		p := make([]int, g.Order())
		for v := range p {
			p[v] = v
		}
		if err := s.search(nil, p, nil); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownSeeding, opts.Seeding)
	}
	return hist, nil
}
