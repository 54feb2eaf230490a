package observability

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cliquer"

// PrometheusHooks implements EngineHooks, CacheHooks and HTTPHooks by
// updating Prometheus collectors.
type PrometheusHooks struct {
	graphsLoaded  prometheus.Counter
	edgesSkipped  prometheus.Counter
	enumerations  *prometheus.CounterVec
	enumDuration  *prometheus.HistogramVec
	cliquesFound  prometheus.Counter
	densestRuns   *prometheus.CounterVec
	densestDur    *prometheus.HistogramVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// It panics if registration fails, like prometheus.MustRegister.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		graphsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "graphs_loaded_total",
			Help: "Edge lists loaded and built into graphs.",
		}),
		edgesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "edges_skipped_total",
			Help: "Input lines or edges skipped during loading.",
		}),
		enumerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "enumerations_total",
			Help: "Maximal-clique enumerations by backend, pivot and outcome.",
		}, []string{"backend", "pivot", "status"}),
		enumDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "enumeration_duration_seconds",
			Help:    "Wall-clock time of maximal-clique enumerations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"backend"}),
		cliquesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cliques_found_total",
			Help: "Maximal cliques reported by completed enumerations.",
		}),
		densestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "densest_total",
			Help: "Densest-subgraph computations by method and outcome.",
		}, []string{"method", "status"}),
		densestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "densest_duration_seconds",
			Help:    "Wall-clock time of densest-subgraph computations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"method"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_events_total",
			Help: "Cache hits, misses and writes by key type.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_written_bytes_total",
			Help: "Bytes written to the cache.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests served by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		h.graphsLoaded, h.edgesSkipped,
		h.enumerations, h.enumDuration, h.cliquesFound,
		h.densestRuns, h.densestDur,
		h.cacheEvents, h.cacheBytes,
		h.httpRequests, h.httpDurations,
	)
	return h
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	return "error"
}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, _, _, skipped int, _ time.Duration, err error) {
	if err != nil {
		return
	}
	h.graphsLoaded.Inc()
	h.edgesSkipped.Add(float64(skipped))
}

func (h *PrometheusHooks) OnEnumerateStart(context.Context, string, string, int) {}

func (h *PrometheusHooks) OnEnumerateComplete(_ context.Context, backend, pivot string, cliques int64, d time.Duration, err error) {
	h.enumerations.WithLabelValues(backend, pivot, status(err)).Inc()
	if err == nil {
		h.enumDuration.WithLabelValues(backend).Observe(d.Seconds())
		h.cliquesFound.Add(float64(cliques))
	}
}

func (h *PrometheusHooks) OnDensestStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnDensestComplete(_ context.Context, method string, _ int, d time.Duration, err error) {
	h.densestRuns.WithLabelValues(method, status(err)).Inc()
	if err == nil {
		h.densestDur.WithLabelValues(method).Observe(d.Seconds())
	}
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.httpDurations.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ EngineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
)
