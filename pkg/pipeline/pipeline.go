// Package pipeline ties loading, enumeration and caching together for the
// CLI and the HTTP server.
//
// # Architecture
//
// A run has three stages:
//
//  1. Load: parse an edge list and build the graph
//  2. Order: compute the degeneracy ordering
//  3. Search: enumerate maximal cliques into a histogram
//
// A finished report is cached under the edge-list hash and the options that
// change the result, so repeating a request returns immediately.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Backend: "bitset", Pivot: "max-intersection"}
//	in, err := runner.LoadFile(ctx, "graph.txt", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Count(ctx, in, opts)
//	fmt.Println(result.Report.Total)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cliquer/pkg/cache"
	"github.com/matzehuels/cliquer/pkg/clique"
	"github.com/matzehuels/cliquer/pkg/densest"
	"github.com/matzehuels/cliquer/pkg/edgelist"
	"github.com/matzehuels/cliquer/pkg/errors"
	"github.com/matzehuels/cliquer/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	DefaultBackend = "auto"
	DefaultPivot   = "max-intersection"
	DefaultSeeding = "degeneracy"
	DefaultFormat  = "pairs"
	DefaultMethod  = "exact"
)

// DefaultMaxVertices bounds the vertex count a load may allocate for.
const DefaultMaxVertices = 1 << 24

// Densest-subgraph methods.
const (
	MethodExact = "exact"
	MethodPeel  = "peel"
)

// MethodNames lists the accepted densest-subgraph methods.
var MethodNames = []string{MethodExact, MethodPeel}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a run. Fields are strings so they can come straight
// from flags, config files or query parameters.
type Options struct {
	Backend    string `json:"backend,omitempty"`
	Pivot      string `json:"pivot,omitempty"`
	Seeding    string `json:"seeding,omitempty"`
	Format     string `json:"format,omitempty"`
	OneIndexed bool   `json:"one_indexed,omitempty"`
	Method     string `json:"method,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// MaxVertices rejects graphs whose vertex count exceeds it. Zero means
	// DefaultMaxVertices.
	MaxVertices int `json:"max_vertices,omitempty"`

	// Timeout bounds the search stage. Zero means no limit.
	Timeout time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`

	backend   graph.Backend
	pivot     clique.Pivot
	seeding   clique.Seeding
	format    edgelist.Format
	validated bool
}

// ValidateAndSetDefaults fills empty fields with defaults and parses every
// name. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	if o.Pivot == "" {
		o.Pivot = DefaultPivot
	}
	if o.Seeding == "" {
		o.Seeding = DefaultSeeding
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Method == "" {
		o.Method = DefaultMethod
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.MaxVertices == 0 {
		o.MaxVertices = DefaultMaxVertices
	}
	if o.MaxVertices < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max vertices must be positive, got %d", o.MaxVertices)
	}

	var err error
	if o.backend, err = graph.ParseBackend(o.Backend); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidBackend, err, "backend must be one of %v", graph.BackendNames)
	}
	if o.pivot, err = clique.ParsePivot(o.Pivot); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPivot, err, "pivot must be one of %v", clique.PivotNames)
	}
	if o.seeding, err = clique.ParseSeeding(o.Seeding); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "seeding must be one of %v", clique.SeedingNames)
	}
	if o.format, err = edgelist.ParseFormat(o.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "format must be one of %v", edgelist.FormatNames)
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidInput, "method", o.Method, MethodNames); err != nil {
		return err
	}
	o.Method = strings.ToLower(strings.TrimSpace(o.Method))
	o.validated = true
	return nil
}

// ReportKeyOpts returns the cache key options for a clique report.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Pivot:   clique.PivotName(o.pivot),
		Seeding: o.seeding.String(),
	}
}

// DensestKeyOpts returns the cache key options for a densest-subgraph result.
func (o *Options) DensestKeyOpts() cache.DensestKeyOpts {
	return cache.DensestKeyOpts{Method: o.Method}
}

// =============================================================================
// Results
// =============================================================================

// Input is a loaded edge list and the graph built from it.
type Input struct {
	List     *edgelist.List
	Graph    *graph.Graph
	Hash     string
	LoadTime time.Duration
}

// Result is a finished clique report.
type Result struct {
	RunID     string          `json:"run_id"`
	GraphHash string          `json:"graph_hash"`
	Report    clique.Snapshot `json:"report"`
	Stats     Stats           `json:"stats"`
	CacheHit  bool            `json:"cache_hit"`
}

// DensestResult is a finished densest-subgraph computation.
type DensestResult struct {
	RunID     string         `json:"run_id"`
	GraphHash string         `json:"graph_hash"`
	Method    string         `json:"method"`
	Subgraph  densest.Result `json:"subgraph"`
	Elapsed   time.Duration  `json:"elapsed_ns"`
	CacheHit  bool           `json:"cache_hit"`
}

// Stats describes the input and where the time went.
type Stats struct {
	Vertices   int `json:"vertices"`
	Edges      int `json:"edges"`
	MaxDegree  int `json:"max_degree"`
	Degeneracy int `json:"degeneracy"`
	Skipped    int `json:"skipped_lines"`
	Rejected   int `json:"rejected_edges"`
	Duplicates int `json:"duplicate_edges"`

	Backend string `json:"backend"`
	Pivot   string `json:"pivot"`
	Seeding string `json:"seeding"`

	LoadTime   time.Duration `json:"load_ns"`
	OrderTime  time.Duration `json:"order_ns"`
	SearchTime time.Duration `json:"search_ns"`
}

// Elapsed returns the total wall-clock time of the run.
func (s Stats) Elapsed() time.Duration {
	return s.LoadTime + s.OrderTime + s.SearchTime
}
