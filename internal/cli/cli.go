// Package cli implements the cliquer command-line interface.
//
// # Commands
//
//   - count: histogram of maximal cliques by size
//   - densest: densest subgraph, exact or greedy
//   - stats: graph summary and degeneracy
//   - verify: run every backend and compare the reports
//   - render: draw the graph with a clique highlighted
//   - browse: page through the largest cliques interactively
//   - serve: HTTP API with Prometheus metrics
//   - cache: manage the result cache
//
// Every command reads an edge list from a file, an http(s) URL, or stdin
// when the path is "-". Gzip input is decompressed transparently. Settings come from the config file and are overridden by flags.
package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliquer/pkg/buildinfo"
	"github.com/matzehuels/cliquer/pkg/cache"
	"github.com/matzehuels/cliquer/pkg/config"
	"github.com/matzehuels/cliquer/pkg/graph"
	"github.com/matzehuels/cliquer/pkg/httputil"
	"github.com/matzehuels/cliquer/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	logOut     io.Writer
	logFile    io.WriteCloser
	configPath string
}

// New creates a CLI that logs to w. Config is loaded when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cliquer",
		Short: "cliquer counts the maximal cliques of large sparse graphs",
		Long: `cliquer enumerates every maximal clique of an undirected graph with the
Bron–Kerbosch algorithm, using pivoting and a degeneracy ordering, and reports
how many cliques of each size exist.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { c.closeLogFile() },
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cliquer/config.toml)")

	root.AddCommand(c.countCommand())
	root.AddCommand(c.densestCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies its log settings.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	if cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		c.SetLogLevel(level)
	}
	if w := cfg.Log.LogWriter(); w != nil {
		c.logFile = w
		c.Logger.SetOutput(io.MultiWriter(c.logOut, w))
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func (c *CLI) closeLogFile() {
	if c.logFile != nil {
		c.logFile.Close()
		c.logFile = nil
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns)
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache picks Redis when configured, then the file cache. An unreachable
// Redis falls back to the file cache with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.Config.Cache
	if noCache || !cc.Enabled {
		return cache.NewNullCache(), nil
	}
	if cc.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:        cc.RedisAddr,
			Password:    cc.RedisPassword,
			DB:          cc.RedisDB,
			DialTimeout: 2 * time.Second,
		})
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "addr", cc.RedisAddr, "err", err)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Engine Flags
// =============================================================================

// engineFlags are the flags shared by commands that load and search a graph.
// Empty strings fall back to the config file, then to pipeline defaults.
type engineFlags struct {
	backend    string
	pivot      string
	seeding    string
	format     string
	oneIndexed bool
	timeout    time.Duration
	noCache    bool
	refresh    bool
	json       bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.backend, "backend", "b", "", "neighbor sets: "+strings.Join(graph.BackendNames, ", "))
	fs.StringVarP(&f.pivot, "pivot", "p", "", "pivot rule: max-intersection (default), first, max-degree")
	fs.StringVar(&f.seeding, "seeding", "", "outer loop: degeneracy (default), none")
	fs.StringVarP(&f.format, "format", "f", "", "input format: pairs (default), header")
	fs.BoolVar(&f.oneIndexed, "one-indexed", false, "vertex ids start at 1")
	fs.DurationVar(&f.timeout, "timeout", 0, "abort the search after this long (0 = no limit)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	fs.BoolVar(&f.json, "json", false, "print the raw result as JSON")
}

// options merges flags over the config file.
func (c *CLI) options(f *engineFlags) pipeline.Options {
	ec := c.Config.Engine
	opts := pipeline.Options{
		Backend:     firstNonEmpty(f.backend, ec.Backend),
		Pivot:       firstNonEmpty(f.pivot, ec.Pivot),
		Seeding:     firstNonEmpty(f.seeding, ec.Seeding),
		Method:      ec.Method,
		Format:      f.format,
		OneIndexed:  f.oneIndexed,
		Timeout:     ec.Timeout.Duration,
		MaxVertices: ec.MaxVertices,
		Refresh:     f.refresh,
		Logger:      c.Logger,
	}
	if f.timeout > 0 {
		opts.Timeout = f.timeout
	}
	return opts
}

// load reads an http(s) URL, stdin for "-", or a local file.
func (c *CLI) load(cmd *cobra.Command, r *pipeline.Runner, path string, opts pipeline.Options) (*pipeline.Input, error) {
	switch {
	case path == "-":
		return r.Load(cmd.Context(), cmd.InOrStdin(), opts)
	case httputil.IsURL(path):
		return r.LoadURL(cmd.Context(), path, opts)
	}
	return r.LoadFile(cmd.Context(), path, opts)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
