// Package pkg provides the libraries behind cliquer, a maximal-clique
// enumerator for large sparse graphs.
//
// # Overview
//
// The pkg directory is organized by stage:
//
//  1. [edgelist] - Parsing whitespace-separated edge lists
//  2. [graph] - Undirected simple graphs with pluggable neighbor sets
//  3. [degeneracy] - Core ordering and shells
//  4. [clique] - Bron–Kerbosch enumeration and size histograms
//  5. [flow] and [densest] - Max-flow and densest-subgraph search
//  6. [render] - Graphviz drawings with a highlighted vertex set
//  7. [pipeline] - Orchestration (load → order → search) with caching
//
// Supporting packages: [cache] stores results on disk or in Redis,
// [httputil] fetches remote inputs, [config] reads the TOML config file,
// [observability] exports Prometheus metrics, [errors] carries error codes
// and [buildinfo] reports the binary version.
//
// # Data Flow
//
//	edge list (file, URL, stdin)
//	         ↓
//	edgelist.Parse → graph.Build
//	         ↓
//	degeneracy.Compute
//	         ↓
//	clique.Enumerate → Histogram
//
// The CLI in internal/cli and the HTTP server both drive this flow through
// [pipeline.Runner].
package pkg
