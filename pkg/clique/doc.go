// Package clique enumerates the maximal cliques of a graph.
//
// # Algorithm
//
// [Enumerate] runs Bron–Kerbosch with pivoting. Each search state is a triple
// (R, P, X): R is the clique built so far, P the candidates that extend it and
// X the vertices that would extend it but whose cliques were already reported.
// A state with P and X both empty has found a maximal clique. Choosing a pivot
// u and branching only on P \ N(u) bounds the total work by O(3^(n/3)).
//
// With [SeedDegeneracy] (the default) the outer loop walks the vertices in
// degeneracy order and starts one search per vertex v with R = {v}, P = the
// neighbors after v and X = the neighbors before v. Every P is then bounded by
// the graph's degeneracy, which is what makes sparse real-world graphs fast.
// [SeedNone] runs a single search from R = {}, P = V.
//
// # Pivots
//
// [MaxIntersection] picks the u in P ∪ X covering the most of P, the classic
// choice. [FirstCandidate] and [MaxDegree] are cheaper heuristics. The set of
// reported cliques never depends on the pivot, only the amount of work does.
//
// # Results
//
// Cliques are counted by size into a [Histogram]; the cliques themselves are
// not stored unless [Options.Visit] is set.
//
// Enumerate does not use recursion: search states live on an explicit stack,
// so deep searches cannot overflow the goroutine stack. A single enumeration
// is single-threaded; independent enumerations may run concurrently on the
// same [graph.Graph].
package clique
