// Package flow computes maximum flows and minimum cuts with Dinic's algorithm.
//
// Vertices are dense ints in [0, n). A [Network] stores each arc together
// with its reverse residual arc, so parallel arcs and antiparallel pairs are
// both allowed. Capacities are float64; anything at or below
// [Options.Epsilon] is treated as zero.
//
// Complexity is O(V²E) in general and O(E√V) on unit-capacity networks.
package flow
