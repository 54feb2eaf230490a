// Package graph provides the immutable undirected simple graph that the
// clique engine and the densest-subgraph solver search over.
//
// # Overview
//
// Vertices are dense integers in [0, n). A [Graph] is built once from an edge
// list with [Build] and never changes afterwards. The edge relation is
// symmetric, self-loops are rejected, and inserting an edge twice (in either
// orientation) is a no-op:
//
//	g, err := graph.Build(4, []graph.Edge{{0, 1}, {1, 2}, {2, 3}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g.Adjacent(1, 2) // true
//	g.Degree(1)      // 2
//
// # Neighbor-Set Backends
//
// Each vertex owns a [NeighborSet]. Three interchangeable backends answer the
// same queries with identical semantics; the choice only changes memory use
// and speed:
//
//   - [BackendBitset]: a bit vector sized to n per vertex (github.com/soniakeys/bits).
//     O(1) adjacency, n²/8 bytes in total. Best for small or dense graphs.
//   - [BackendHash]: a Go map per vertex. O(1) expected adjacency, memory
//     proportional to the edge count. Best for large sparse graphs.
//   - [BackendOrdered]: a B-tree per vertex (github.com/google/btree).
//     O(log d) adjacency with ascending iteration.
//
// [BackendAuto] picks the bit vector while its total footprint stays under
// [AutoBitsetLimit] bytes and the hash set otherwise.
//
// # Input Validation
//
// [Build] never aborts on a single bad edge. Endpoints outside [0, n) and
// self-loops are reported as [InvalidEdge] values, both through the optional
// [WithReporter] callback and through [Graph.Rejected], and construction
// continues with the remaining edges. A non-positive vertex count, or an edge
// list that leaves no accepted edge, is fatal and returns [ErrDegenerateInput]
// (the latter can be relaxed with [WithAllowEdgeless]).
//
// # Concurrency
//
// A built Graph is read-only and safe for concurrent readers.
package graph
