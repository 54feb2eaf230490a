package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cliquer/pkg/cache"
	"github.com/matzehuels/cliquer/pkg/clique"
	"github.com/matzehuels/cliquer/pkg/degeneracy"
	"github.com/matzehuels/cliquer/pkg/densest"
	"github.com/matzehuels/cliquer/pkg/edgelist"
	"github.com/matzehuels/cliquer/pkg/errors"
	"github.com/matzehuels/cliquer/pkg/graph"
	"github.com/matzehuels/cliquer/pkg/httputil"
	"github.com/matzehuels/cliquer/pkg/observability"
)

// Runner executes pipeline stages with caching. Both the CLI and the HTTP
// server use it.
//
// A Runner holds no per-run state, so one Runner may serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Fetcher opens remote edge lists for LoadURL.
	Fetcher *httputil.Client

	// TTL overrides the default entry lifetime when nonzero.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means DefaultKeyer and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, Fetcher: httputil.NewClient()}
}

// Close releases the underlying cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// cachedReport is the cache payload for Count.
type cachedReport struct {
	Report     clique.Snapshot `json:"report"`
	Degeneracy int             `json:"degeneracy"`
}

// =============================================================================
// Stage 1: Load
// =============================================================================

// LoadFile validates path and loads it with Load. Gzip-compressed files
// are decompressed transparently.
func (r *Runner) LoadFile(ctx context.Context, path string, opts Options) (*Input, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	rc, err := httputil.Decompress(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decompress %s", path)
	}
	defer rc.Close()
	return r.Load(ctx, rc, opts)
}

// LoadURL fetches an edge list over HTTP and loads it with Load.
func (r *Runner) LoadURL(ctx context.Context, rawURL string, opts Options) (*Input, error) {
	if !httputil.IsURL(rawURL) {
		return nil, errors.New(errors.ErrCodeInvalidPath, "not an http(s) URL: %s", rawURL)
	}
	r.logger(opts).Debug("fetching edge list", "url", rawURL)

	body, err := r.Fetcher.Open(ctx, rawURL)
	if err != nil {
		switch {
		case stderrors.Is(err, httputil.ErrNotFound):
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "fetch %s", rawURL)
		case stderrors.Is(err, context.Canceled):
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "fetch %s", rawURL)
		case stderrors.Is(err, context.DeadlineExceeded):
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL)
		default:
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
		}
	}
	defer body.Close()
	return r.Load(ctx, body, opts)
}

// Load parses an edge list and builds its graph. Skipped lines and rejected
// edges are logged as warnings and counted, never fatal.
func (r *Runner) Load(ctx context.Context, src io.Reader, opts Options) (*Input, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	start := time.Now()
	in, err := r.load(src, opts, logger)
	elapsed := time.Since(start)

	var vertices, edges, skipped int
	if in != nil {
		in.LoadTime = elapsed
		vertices, edges, skipped = in.Graph.Order(), in.Graph.Size(), len(in.List.Skipped)
	}
	observability.Engine().OnLoadComplete(ctx, vertices, edges, skipped, elapsed, err)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded graph",
		"vertices", vertices,
		"edges", edges,
		"backend", in.Graph.Backend(),
		"duration", elapsed)
	return in, nil
}

func (r *Runner) load(src io.Reader, opts Options, logger *log.Logger) (*Input, error) {
	list, err := edgelist.Read(src, edgelist.Options{
		Format:     opts.format,
		OneIndexed: opts.OneIndexed,
		OnSkip: func(d edgelist.Diagnostic) {
			logger.Warn("skipped line", "line", d.Line, "reason", d.Reason, "text", d.Text)
		},
	})
	if err != nil {
		if stderrors.Is(err, edgelist.ErrMalformedHeader) {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse edge list")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse edge list")
	}
	// Build allocates per vertex, so a single large id must not reach it.
	if list.VertexCount > opts.MaxVertices {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"graph has %d vertices, limit is %d", list.VertexCount, opts.MaxVertices)
	}

	g, err := graph.Build(list.VertexCount, list.Edges,
		graph.WithBackend(opts.backend),
		graph.WithReporter(func(e graph.InvalidEdge) {
			logger.Warn("rejected edge", "index", e.Index, "u", e.Edge.U, "v", e.Edge.V, "reason", e.Reason)
		}))
	if err != nil {
		if stderrors.Is(err, graph.ErrDegenerateInput) {
			return nil, errors.Wrap(errors.ErrCodeDegenerateInput, err, "nothing to search")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build graph")
	}
	return &Input{List: list, Graph: g, Hash: list.Hash()}, nil
}

// =============================================================================
// Stages 2 and 3: Order and Search
// =============================================================================

// Execute loads src and counts its maximal cliques.
func (r *Runner) Execute(ctx context.Context, src io.Reader, opts Options) (*Result, error) {
	in, err := r.Load(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	return r.Count(ctx, in, opts)
}

// Count returns the maximal-clique histogram of in, from the cache when
// possible. Only completed reports are cached.
func (r *Runner) Count(ctx context.Context, in *Input, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	g := in.Graph

	result := &Result{
		RunID:     uuid.NewString(),
		GraphHash: in.Hash,
		Stats: Stats{
			Vertices:   g.Order(),
			Edges:      g.Size(),
			MaxDegree:  g.MaxDegree(),
			Skipped:    len(in.List.Skipped),
			Rejected:   len(g.Rejected()),
			Duplicates: g.Stats().Duplicates,
			Backend:    g.Backend().String(),
			Pivot:      clique.PivotName(opts.pivot),
			Seeding:    opts.seeding.String(),
			LoadTime:   in.LoadTime,
		},
	}

	key := r.Keyer.ReportKey(in.Hash, opts.ReportKeyOpts())
	if !opts.Refresh {
		var cached cachedReport
		if r.getJSON(ctx, key, "report", &cached) {
			result.Report = cached.Report
			result.Stats.Degeneracy = cached.Degeneracy
			result.CacheHit = true
			logger.Debug("report cache hit", "key", key)
			return result, nil
		}
	}

	searchCtx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	ordering := degeneracy.Compute(g)
	result.Stats.OrderTime = time.Since(start)
	result.Stats.Degeneracy = ordering.Degeneracy()
	logger.Debug("computed ordering", "degeneracy", ordering.Degeneracy(), "duration", result.Stats.OrderTime)

	observability.Engine().OnEnumerateStart(ctx, result.Stats.Backend, result.Stats.Pivot, g.Order())
	start = time.Now()
	hist, err := clique.Enumerate(searchCtx, g, clique.Options{
		Pivot:    opts.pivot,
		Seeding:  opts.seeding,
		Ordering: ordering,
	})
	result.Stats.SearchTime = time.Since(start)
	var total int64
	if hist != nil {
		total = hist.Total()
	}
	observability.Engine().OnEnumerateComplete(ctx, result.Stats.Backend, result.Stats.Pivot, total, result.Stats.SearchTime, err)
	if err != nil {
		return nil, searchError(err, "enumerate")
	}

	result.Report = hist.Snapshot()
	logger.Info("enumerated cliques",
		"total", total,
		"max_size", hist.MaxSize(),
		"duration", result.Stats.SearchTime)

	r.setJSON(ctx, key, "report", cachedReport{Report: result.Report, Degeneracy: result.Stats.Degeneracy}, r.ttl(cache.TTLReport))
	return result, nil
}

// =============================================================================
// Densest Subgraph
// =============================================================================

// Densest finds the densest subgraph of in with the configured method.
func (r *Runner) Densest(ctx context.Context, in *Input, opts Options) (*DensestResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	g := in.Graph

	result := &DensestResult{
		RunID:     uuid.NewString(),
		GraphHash: in.Hash,
		Method:    opts.Method,
	}

	key := r.Keyer.DensestKey(in.Hash, opts.DensestKeyOpts())
	if !opts.Refresh && r.getJSON(ctx, key, "densest", &result.Subgraph) {
		result.CacheHit = true
		return result, nil
	}

	searchCtx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	observability.Engine().OnDensestStart(ctx, opts.Method, g.Order())
	start := time.Now()
	var (
		sub *densest.Result
		err error
	)
	switch opts.Method {
	case MethodPeel:
		sub = densest.Peel(g)
	default:
		sub, err = densest.Exact(searchCtx, g, densest.Options{
			OnIteration: func(alpha float64, found bool) {
				logger.Debug("tested density", "alpha", alpha, "found", found)
			},
		})
	}
	result.Elapsed = time.Since(start)

	var iterations int
	if sub != nil {
		iterations = sub.Iterations
	}
	observability.Engine().OnDensestComplete(ctx, opts.Method, iterations, result.Elapsed, err)
	if err != nil {
		return nil, searchError(err, "densest subgraph")
	}

	result.Subgraph = *sub
	logger.Info("found densest subgraph",
		"vertices", len(sub.Vertices),
		"density", sub.Density,
		"duration", result.Elapsed)

	r.setJSON(ctx, key, "densest", sub, r.ttl(cache.TTLDensest))
	return result, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// getJSON decodes a cached value into v. Read and decode failures count as
// misses.
func (r *Runner) getJSON(ctx context.Context, key, keyType string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// setJSON stores v. Failures are logged; a result is still returned to the
// caller.
func (r *Runner) setJSON(ctx context.Context, key, keyType string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cache encode failed", "key", key, "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// searchError tags deadline and cancellation errors with their codes.
func searchError(err error, stage string) error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s timed out", stage)
	case stderrors.Is(err, context.Canceled):
		return errors.Wrap(errors.ErrCodeCanceled, err, "%s canceled", stage)
	}
	return fmt.Errorf("%s: %w", stage, err)
}
