// Package edgelist reads and writes graphs as plain-text edge lists.
//
// # Formats
//
// [FormatPairs] is one edge per line, two integer vertex ids separated by
// whitespace. The vertex count is one more than the largest id seen:
//
//	# comment
//	0 1
//	1 2
//
// [FormatHeader] starts with a line holding the vertex count n and the edge
// count m, followed by the edges:
//
//	3 2
//	0 1
//	1 2
//
// In both formats blank lines and lines starting with '#' or '%' are ignored,
// and any fields after the second on an edge line (weights, timestamps) are
// ignored. With [Options.OneIndexed] every id is shifted down by one.
//
// # Diagnostics
//
// A line that does not hold two integers is skipped and recorded as a
// [Diagnostic]; reading continues. Range checks against the vertex count are
// left to [graph.Build]. Only I/O failures and a malformed header are fatal.
package edgelist
