package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliquer/pkg/buildinfo"
	"github.com/matzehuels/cliquer/pkg/config"
	"github.com/matzehuels/cliquer/pkg/errors"
	"github.com/matzehuels/cliquer/pkg/observability"
	"github.com/matzehuels/cliquer/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve clique counts and densest subgraphs over HTTP.

  POST /v1/cliques   edge list in the body; query: backend, pivot, seeding, format, one_indexed, refresh
  POST /v1/densest   edge list in the body; query: method, format, one_indexed, refresh
  GET  /healthz      build information
  GET  /metrics      Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			hooks := observability.NewPrometheusHooks(reg)
			observability.SetEngineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			maxBody := c.Config.Server.MaxBodyBytes
			if maxBody <= 0 {
				maxBody = config.Default().Server.MaxBodyBytes
			}
			srv := &server{
				runner:   runner,
				defaults: c.options(&engineFlags{}),
				logger:   c.Logger,
				maxBody:  maxBody,
				registry: reg,
			}
			return srv.listen(ctx, addr, c.Config.Server.ReadTimeout.Duration)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// server is the HTTP front end over a pipeline runner.
type server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	maxBody  int64
	registry *prometheus.Registry
}

// listen serves until ctx ends, then shuts down gracefully.
func (s *server) listen(ctx context.Context, addr string, readTimeout time.Duration) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// routes builds the router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/cliques", s.cliques)
		r.Post("/densest", s.densest)
	})
	return r
}

// requestLogger logs each request and reports it to the HTTP hooks.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", chimiddleware.GetReqID(r.Context()))
	})
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *server) cliques(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := s.runner.Load(r.Context(), http.MaxBytesReader(w, r.Body, s.maxBody), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Count(r.Context(), in, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, result)
}

func (s *server) densest(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := s.runner.Load(r.Context(), http.MaxBytesReader(w, r.Body, s.maxBody), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Densest(r.Context(), in, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, result)
}

// options overlays query parameters on the server defaults.
func (s *server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()
	for key, dst := range map[string]*string{
		"backend": &opts.Backend,
		"pivot":   &opts.Pivot,
		"seeding": &opts.Seeding,
		"format":  &opts.Format,
		"method":  &opts.Method,
	} {
		if v := q.Get(key); v != "" {
			*dst = v
		}
	}
	for key, dst := range map[string]*bool{
		"one_indexed": &opts.OneIndexed,
		"refresh":     &opts.Refresh,
	} {
		if v := q.Get(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", key, v)
			}
			*dst = b
		}
	}
	err := opts.ValidateAndSetDefaults()
	return opts, err
}

type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(err)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	if status >= 500 {
		s.logger.Error("request failed", "err", err, "request_id", chimiddleware.GetReqID(r.Context()))
	}
	s.writeJSON(w, r, status, errorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: chimiddleware.GetReqID(r.Context()),
	})
}

func (s *server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := writeJSON(w, v); err != nil {
		s.logger.Warn("write response", "err", err, "request_id", chimiddleware.GetReqID(r.Context()))
	}
}
