package clique

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/cliquer/pkg/graph"
)

// ErrUnknownPivot is returned by [ParsePivot] for unrecognized names.
var ErrUnknownPivot = errors.New("unknown pivot strategy")

// Pivot chooses the pivot vertex for a search state.
//
// Select is only called with a nonempty p and must return a member of p or x.
type Pivot interface {
	Select(g *graph.Graph, p, x []int) int
}

// MaxIntersection picks the vertex of P ∪ X with the most neighbors in P.
// Ties go to the first such vertex, scanning P before X.
type MaxIntersection struct{}

func (MaxIntersection) Select(g *graph.Graph, p, x []int) int {
	best, bestCount := p[0], -1
	scan := func(cands []int) bool {
		for _, u := range cands {
			nu := g.Neighbors(u)
			count := 0
			for _, w := range p {
				if nu.Has(w) {
					count++
				}
			}
			if count > bestCount {
				best, bestCount = u, count
				// Nothing covers more than all of P.
				if count == len(p) {
					return false
				}
			}
		}
		return true
	}
	if scan(p) {
		scan(x)
	}
	return best
}

func (MaxIntersection) String() string { return "max-intersection" }

// FirstCandidate picks the first vertex of P.
type FirstCandidate struct{}

func (FirstCandidate) Select(_ *graph.Graph, p, _ []int) int { return p[0] }

func (FirstCandidate) String() string { return "first" }

// MaxDegree picks the vertex of P ∪ X with the largest degree in the whole
// graph. It skips the intersection count of MaxIntersection.
type MaxDegree struct{}

func (MaxDegree) Select(g *graph.Graph, p, x []int) int {
	best, bestDeg := p[0], -1
	for _, set := range [][]int{p, x} {
		for _, u := range set {
			if d := g.Degree(u); d > bestDeg {
				best, bestDeg = u, d
			}
		}
	}
	return best
}

func (MaxDegree) String() string { return "max-degree" }

// PivotNames lists the names accepted by ParsePivot.
var PivotNames = []string{"max-intersection", "first", "max-degree"}

// ParsePivot maps a strategy name to its Pivot. Matching ignores case.
func ParsePivot(name string) (Pivot, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "max-intersection", "tomita", "":
		return MaxIntersection{}, nil
	case "first", "any":
		return FirstCandidate{}, nil
	case "max-degree", "degree":
		return MaxDegree{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPivot, name)
}

// PivotName returns the display name of p.
func PivotName(p Pivot) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", p)
}
