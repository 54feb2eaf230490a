package graph

import (
	"fmt"
	"slices"
)

// Edge is an undirected edge between vertices U and V.
type Edge struct {
	U, V int
}

// Graph is an immutable undirected simple graph over vertices [0, n).
//
// The zero value is not usable - use Build to create a Graph.
type Graph struct {
	n          int
	m          int
	adj        []neighborSet
	backend    Backend
	maxDegree  int
	duplicates int
	rejected   []InvalidEdge
}

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	backend       Backend
	allowEdgeless bool
	reporter      func(InvalidEdge)
}

// WithBackend selects the neighbor-set representation. The default is BackendAuto.
func WithBackend(b Backend) Option {
	return func(c *buildConfig) { c.backend = b }
}

// WithAllowEdgeless lets Build return a graph with no edges instead of
// failing with ErrDegenerateInput. Every vertex is then isolated.
func WithAllowEdgeless() Option {
	return func(c *buildConfig) { c.allowEdgeless = true }
}

// WithReporter registers fn to be called for every skipped edge, in input
// order, as Build encounters it.
func WithReporter(fn func(InvalidEdge)) Option {
	return func(c *buildConfig) { c.reporter = fn }
}

// Build constructs a Graph with vertexCount vertices from edges.
//
// Edges with an endpoint outside [0, vertexCount) and self-loops are skipped
// and reported (see InvalidEdge); duplicate edges in either orientation are
// ignored. Build returns ErrDegenerateInput if vertexCount <= 0 or if no edge
// was accepted, unless WithAllowEdgeless is given.
func Build(vertexCount int, edges []Edge, opts ...Option) (*Graph, error) {
	cfg := buildConfig{backend: BackendAuto}
	for _, opt := range opts {
		opt(&cfg)
	}
	if vertexCount <= 0 {
		return nil, fmt.Errorf("%w: vertex count %d must be positive", ErrDegenerateInput, vertexCount)
	}

	backend := cfg.backend.resolve(vertexCount)
	g := &Graph{
		n:       vertexCount,
		adj:     make([]neighborSet, vertexCount),
		backend: backend,
	}
	for v := range g.adj {
		g.adj[v] = newNeighborSet(backend, vertexCount)
	}

	reject := func(i int, e Edge, reason string) {
		ie := InvalidEdge{Edge: e, Index: i, Reason: reason, VertexCount: vertexCount}
		g.rejected = append(g.rejected, ie)
		if cfg.reporter != nil {
			cfg.reporter(ie)
		}
	}

	for i, e := range edges {
		switch {
		case e.U < 0 || e.U >= vertexCount || e.V < 0 || e.V >= vertexCount:
			reject(i, e, ReasonOutOfRange)
			continue
		case e.U == e.V:
			reject(i, e, ReasonSelfLoop)
			continue
		}
		if !g.adj[e.U].add(e.V) {
			g.duplicates++
			continue
		}
		g.adj[e.V].add(e.U)
		g.m++
	}

	if g.m == 0 && !cfg.allowEdgeless {
		return nil, fmt.Errorf("%w: no valid edges among %d given", ErrDegenerateInput, len(edges))
	}

	for _, s := range g.adj {
		g.maxDegree = max(g.maxDegree, s.Len())
	}
	return g, nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// Size returns the number of distinct edges.
func (g *Graph) Size() int { return g.m }

// Backend returns the concrete neighbor-set backend in use (never BackendAuto).
func (g *Graph) Backend() Backend { return g.backend }

// Neighbors returns the neighbor set of v. It panics if v is out of range.
func (g *Graph) Neighbors(v int) NeighborSet { return g.adj[v] }

// Degree returns the number of neighbors of v. It panics if v is out of range.
func (g *Graph) Degree(v int) int { return g.adj[v].Len() }

// MaxDegree returns the largest vertex degree.
func (g *Graph) MaxDegree() int { return g.maxDegree }

// Adjacent reports whether u and v share an edge. Out-of-range ids are never adjacent.
func (g *Graph) Adjacent(u, v int) bool {
	if u < 0 || u >= g.n {
		return false
	}
	return g.adj[u].Has(v)
}

// Rejected returns the edges Build skipped, in input order.
// The returned slice should not be modified.
func (g *Graph) Rejected() []InvalidEdge { return g.rejected }

// Edges returns every edge once with U < V, ordered by U then V.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.m)
	for u := range g.n {
		for _, v := range g.sortedNeighbors(u) {
			if u < v {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	return edges
}

// sortedNeighbors returns the neighbors of v in ascending order.
func (g *Graph) sortedNeighbors(v int) []int {
	out := make([]int, 0, g.adj[v].Len())
	g.adj[v].Each(func(u int) bool {
		out = append(out, u)
		return true
	})
	if g.backend == BackendHash {
		slices.Sort(out)
	}
	return out
}
