// Package densest finds the subgraph with the highest edge density
// |E(S)| / |S|.
//
// [Exact] uses Goldberg's reduction to a sequence of minimum cuts: for a guess
// α, a cut in the network
//
//	source → v   capacity deg(v)
//	v → sink     capacity 2α
//	u ↔ v        capacity 1 per edge
//
// has a nonempty vertex side exactly when some subgraph is denser than α.
// A binary search on α then converges to the optimum. [Peel] is the greedy
// 2-approximation that repeatedly removes a minimum-degree vertex.
package densest

import (
	"context"
	"slices"

	"github.com/matzehuels/cliquer/pkg/degeneracy"
	"github.com/matzehuels/cliquer/pkg/flow"
	"github.com/matzehuels/cliquer/pkg/graph"
)

// Result is a vertex subset and its density.
//
// Density is |E(S)|/|S|. AverageDegree is 2|E(S)|/|S|, the figure that
// degree-based tools usually print for the same subgraph.
type Result struct {
	Vertices      []int   `json:"vertices"`
	Edges         int     `json:"edges"`
	Density       float64 `json:"density"`
	AverageDegree float64 `json:"average_degree"`
	Iterations    int     `json:"iterations"`
}

func (r *Result) setDensity(d float64) {
	r.Density = d
	r.AverageDegree = 2 * d
}

// Options configures Exact.
type Options struct {
	// Ordering, if set, is reused for the initial Peel bound.
	Ordering *degeneracy.Ordering
	Flow     flow.Options

	// OnIteration, if set, is called after each cut with the tested α and
	// whether a denser subgraph was found.
	OnIteration func(alpha float64, found bool)
}

// Exact returns a subgraph of maximum density.
//
// The search starts from the Peel result as a lower bound and stops once the
// bracket is narrower than 1/(n(n-1)), the smallest possible gap between two
// distinct densities.
func Exact(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	o := opts.Ordering
	if o == nil {
		o = degeneracy.Compute(g)
	}
	best := peel(g, o)
	n := g.Order()
	if n < 2 || g.Size() == 0 {
		return best, nil
	}

	lo, hi := best.Density, float64(g.MaxDegree())/2
	tol := 1 / (float64(n) * float64(n-1))
	edges := g.Edges()
	for hi-lo >= tol {
		alpha := (lo + hi) / 2
		side, err := cut(ctx, g, edges, alpha, opts.Flow)
		if err != nil {
			return nil, err
		}
		best.Iterations++
		found := len(side) > 0
		if found {
			lo = alpha
			e := g.InducedEdges(side)
			best.Vertices, best.Edges = side, e
			best.setDensity(float64(e) / float64(len(side)))
		} else {
			hi = alpha
		}
		if opts.OnIteration != nil {
			opts.OnIteration(alpha, found)
		}
	}
	return best, nil
}

// cut solves the min cut for α and returns the vertex side, ascending.
func cut(ctx context.Context, g *graph.Graph, edges []graph.Edge, alpha float64, opts flow.Options) ([]int, error) {
	n := g.Order()
	s, t := n, n+1
	nw := flow.NewNetwork(n+2, opts)
	for v := range n {
		if err := nw.AddEdge(s, v, float64(g.Degree(v))); err != nil {
			return nil, err
		}
		if err := nw.AddEdge(v, t, 2*alpha); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		if err := nw.AddEdge(e.U, e.V, 1); err != nil {
			return nil, err
		}
		if err := nw.AddEdge(e.V, e.U, 1); err != nil {
			return nil, err
		}
	}
	if _, err := nw.MaxFlow(ctx, s, t); err != nil {
		return nil, err
	}

	var side []int
	for v, in := range nw.MinCut(s)[:n] {
		if in {
			side = append(side, v)
		}
	}
	return side, nil
}

// Peel removes minimum-degree vertices one at a time and returns the densest
// intermediate subgraph. Its density is at least half the optimum.
func Peel(g *graph.Graph) *Result {
	return peel(g, degeneracy.Compute(g))
}

func peel(g *graph.Graph, o *degeneracy.Ordering) *Result {
	n := g.Order()
	edges := g.Size()
	bestAt, bestEdges := 0, edges
	bestDensity := float64(edges) / float64(n)
	for i, v := range o.Order[:n-1] {
		edges -= o.RemovalDegree(v)
		if d := float64(edges) / float64(n-i-1); d > bestDensity {
			bestAt, bestEdges, bestDensity = i+1, edges, d
		}
	}
	vertices := slices.Clone(o.Order[bestAt:])
	slices.Sort(vertices)
	r := &Result{Vertices: vertices, Edges: bestEdges}
	r.setDensity(bestDensity)
	return r
}
