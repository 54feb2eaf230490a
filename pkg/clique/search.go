package clique

import (
	"context"
	"slices"

	"github.com/matzehuels/cliquer/pkg/graph"
)

// frame is one search state on the explicit stack. Each frame owns its p and
// x slices; children receive fresh copies.
type frame struct {
	p, x  []int
	cands []int // P \ N(pivot), fixed when the frame is pushed
	next  int   // index of the next candidate to branch on
	depth int   // len(R) for this frame
}

// searcher runs the expansion for one seed at a time. R is shared by all
// frames and truncated to a frame's depth before each branch.
type searcher struct {
	ctx      context.Context
	g        *graph.Graph
	pivot    Pivot
	hist     *Histogram
	visit    func([]int)
	interval int

	r     []int
	stack []frame
	steps int
}

// search enumerates every maximal clique containing r, drawn from r ∪ p and
// not extendable by any vertex of x. It returns the context error if the
// context ends first.
func (s *searcher) search(r, p, x []int) error {
	if err := s.tick(); err != nil {
		return err
	}
	s.r = append(s.r[:0], r...)
	s.push(p, x)
	for len(s.stack) > 0 {
		if err := s.tick(); err != nil {
			s.stack = s.stack[:0]
			return err
		}

		top := len(s.stack) - 1
		f := &s.stack[top]
		if f.next == len(f.cands) {
			s.stack = s.stack[:top]
			continue
		}

		v := f.cands[f.next]
		f.next++
		nv := s.g.Neighbors(v)
		childP := intersect(f.p, nv)
		childX := intersect(f.x, nv)

		// Move v from P to X now; the child already holds its own copies.
		if i := slices.Index(f.p, v); i >= 0 {
			f.p = slices.Delete(f.p, i, i+1)
		}
		f.x = append(f.x, v)

		s.r = append(s.r[:f.depth], v)
		s.push(childP, childX)
	}
	return nil
}

// push reports R if it is maximal, or stacks a frame if there is anything
// left to branch on. R with P empty and X nonempty is a dead end.
func (s *searcher) push(p, x []int) {
	if len(p) == 0 {
		if len(x) == 0 {
			s.report()
		}
		return
	}
	u := s.pivot.Select(s.g, p, x)
	nu := s.g.Neighbors(u)
	cands := make([]int, 0, len(p))
	for _, v := range p {
		if !nu.Has(v) {
			cands = append(cands, v)
		}
	}
	s.stack = append(s.stack, frame{p: p, x: x, cands: cands, depth: len(s.r)})
}

func (s *searcher) report() {
	s.hist.Record(len(s.r))
	if s.visit != nil {
		s.visit(slices.Clone(s.r))
	}
}

// tick counts one expansion step and polls the context every interval steps.
func (s *searcher) tick() error {
	s.steps++
	if s.steps%s.interval == 0 {
		return s.ctx.Err()
	}
	return nil
}

// intersect returns the members of set that are also in ns, in set order.
func intersect(set []int, ns graph.NeighborSet) []int {
	out := make([]int, 0, min(len(set), ns.Len()))
	for _, v := range set {
		if ns.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
