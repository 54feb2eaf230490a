package flow

import (
	"context"
	"fmt"
	"math"
)

// Network is a flow network with residual arcs. It is not safe for
// concurrent use.
type Network struct {
	n    int
	eps  float64
	adj  [][]int // arc ids leaving each vertex
	to   []int
	cap  []float64 // residual capacity; arc i^1 is the reverse of arc i
	base []float64 // capacity at AddEdge time, for Reset

	level []int
	iter  []int
}

// NewNetwork returns an empty network with n vertices.
func NewNetwork(n int, opts Options) *Network {
	opts.normalize()
	return &Network{
		n:     n,
		eps:   opts.Epsilon,
		adj:   make([][]int, n),
		level: make([]int, n),
		iter:  make([]int, n),
	}
}

// Order returns the number of vertices.
func (nw *Network) Order() int { return nw.n }

// AddEdge adds an arc from→to with the given capacity.
func (nw *Network) AddEdge(from, to int, capacity float64) error {
	if from < 0 || from >= nw.n || to < 0 || to >= nw.n {
		return fmt.Errorf("%w: arc %d→%d in network of %d", ErrVertexNotFound, from, to, nw.n)
	}
	if capacity < 0 {
		return EdgeError{From: from, To: to, Cap: capacity}
	}
	id := len(nw.to)
	nw.to = append(nw.to, to, from)
	nw.cap = append(nw.cap, capacity, 0)
	nw.base = append(nw.base, capacity, 0)
	nw.adj[from] = append(nw.adj[from], id)
	nw.adj[to] = append(nw.adj[to], id+1)
	return nil
}

// Reset restores every arc to its original capacity, discarding any flow.
func (nw *Network) Reset() { copy(nw.cap, nw.base) }

// MaxFlow pushes as much flow as possible from s to t and returns its value.
// The residual network is kept for MinCut. Calling MaxFlow again continues
// from the current residual; use Reset to start over.
func (nw *Network) MaxFlow(ctx context.Context, s, t int) (float64, error) {
	if s < 0 || s >= nw.n {
		return 0, ErrSourceNotFound
	}
	if t < 0 || t >= nw.n {
		return 0, ErrSinkNotFound
	}
	if s == t {
		return 0, nil
	}

	total := 0.0
	for nw.bfs(s, t) {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		clear(nw.iter)
		for {
			pushed := nw.dfs(s, t, math.Inf(1))
			if pushed <= nw.eps {
				break
			}
			total += pushed
		}
	}
	return total, nil
}

// bfs builds the level graph and reports whether t is reachable from s.
func (nw *Network) bfs(s, t int) bool {
	for i := range nw.level {
		nw.level[i] = -1
	}
	nw.level[s] = 0
	queue := []int{s}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, id := range nw.adj[u] {
			v := nw.to[id]
			if nw.cap[id] > nw.eps && nw.level[v] < 0 {
				nw.level[v] = nw.level[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return nw.level[t] >= 0
}

// dfs sends up to available units along the level graph from u to t. iter
// skips arcs already found useless in this phase.
func (nw *Network) dfs(u, t int, available float64) float64 {
	if u == t {
		return available
	}
	for ; nw.iter[u] < len(nw.adj[u]); nw.iter[u]++ {
		id := nw.adj[u][nw.iter[u]]
		v := nw.to[id]
		if nw.cap[id] <= nw.eps || nw.level[v] != nw.level[u]+1 {
			continue
		}
		pushed := nw.dfs(v, t, min(available, nw.cap[id]))
		if pushed > nw.eps {
			nw.cap[id] -= pushed
			nw.cap[id^1] += pushed
			return pushed
		}
	}
	return 0
}

// MinCut returns the source side of a minimum cut after MaxFlow: the
// vertices reachable from s in the residual network.
func (nw *Network) MinCut(s int) []bool {
	side := make([]bool, nw.n)
	if s < 0 || s >= nw.n {
		return side
	}
	side[s] = true
	stack := []int{s}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, id := range nw.adj[u] {
			if v := nw.to[id]; nw.cap[id] > nw.eps && !side[v] {
				side[v] = true
				stack = append(stack, v)
			}
		}
	}
	return side
}

// Flow returns the flow currently on the arcs from→to added with AddEdge,
// summed over parallel arcs.
func (nw *Network) Flow(from, to int) float64 {
	if from < 0 || from >= nw.n {
		return 0
	}
	f := 0.0
	for _, id := range nw.adj[from] {
		if id%2 == 0 && nw.to[id] == to {
			f += nw.base[id] - nw.cap[id]
		}
	}
	return f
}
