// Package degeneracy computes the minimum-degree peeling order of a graph.
//
// Repeatedly removing a vertex of minimum remaining degree yields an ordering
// in which every vertex has at most d neighbors that come after it, where d is
// the degeneracy of the graph. The same pass produces each vertex's core
// number (the largest k such that the vertex belongs to the k-core).
//
// [Compute] runs in O(n + m) using a bucket array indexed by degree with lazy
// deletion: a decremented vertex is filed again in its new bucket and the old
// entry is recognized as stale when popped.
package degeneracy

import "github.com/matzehuels/cliquer/pkg/graph"

// Ordering is the result of a peeling pass. It is read-only after [Compute].
type Ordering struct {
	// Order lists every vertex in removal order.
	Order []int

	position      []int
	core          []int
	removalDegree []int
	degeneracy    int
}

// Compute peels g one minimum-degree vertex at a time.
//
// Ties between vertices of equal degree are broken by bucket order (last
// filed, first removed).
func Compute(g *graph.Graph) *Ordering {
	n := g.Order()
	o := &Ordering{
		Order:         make([]int, 0, n),
		position:      make([]int, n),
		core:          make([]int, n),
		removalDegree: make([]int, n),
	}

	deg := make([]int, n)
	buckets := make([][]int, g.MaxDegree()+1)
	for v := range n {
		deg[v] = g.Degree(v)
		buckets[deg[v]] = append(buckets[deg[v]], v)
	}

	removed := make([]bool, n)
	level := 0
	for d := 0; len(o.Order) < n; {
		for len(buckets[d]) == 0 {
			d++
		}
		b := buckets[d]
		v := b[len(b)-1]
		buckets[d] = b[:len(b)-1]
		if removed[v] || deg[v] != d {
			continue
		}

		removed[v] = true
		level = max(level, d)
		o.position[v] = len(o.Order)
		o.Order = append(o.Order, v)
		o.core[v] = level
		o.removalDegree[v] = d

		g.Neighbors(v).Each(func(u int) bool {
			if !removed[u] {
				deg[u]--
				buckets[deg[u]] = append(buckets[deg[u]], u)
			}
			return true
		})
		// A removal lowers any neighbor's degree by at most one.
		if d > 0 {
			d--
		}
	}
	o.degeneracy = level
	return o
}

// Position returns the index of v in Order.
func (o *Ordering) Position(v int) int { return o.position[v] }

// Later reports whether u comes after v in the ordering.
func (o *Ordering) Later(v, u int) bool { return o.position[u] > o.position[v] }

// Core returns the core number of v.
func (o *Ordering) Core(v int) int { return o.core[v] }

// Degeneracy returns the largest core number in the graph.
func (o *Ordering) Degeneracy() int { return o.degeneracy }

// RemovalDegree returns the number of neighbors v still had when it was removed.
// This equals the number of neighbors that come after v.
func (o *Ordering) RemovalDegree(v int) int { return o.removalDegree[v] }

// Split partitions the neighbors of v into those after it (later) and those
// before it (earlier). Both slices are ascending when the backend iterates in
// order.
func (o *Ordering) Split(g *graph.Graph, v int) (later, earlier []int) {
	later = make([]int, 0, o.removalDegree[v])
	earlier = make([]int, 0, g.Degree(v)-o.removalDegree[v])
	g.Neighbors(v).Each(func(u int) bool {
		if o.Later(v, u) {
			later = append(later, u)
		} else {
			earlier = append(earlier, u)
		}
		return true
	})
	return later, earlier
}

// Shells groups vertices by core number: Shells()[k] holds the vertices whose
// core number is exactly k, in removal order.
func (o *Ordering) Shells() [][]int {
	shells := make([][]int, o.degeneracy+1)
	for _, v := range o.Order {
		shells[o.core[v]] = append(shells[o.core[v]], v)
	}
	return shells
}
