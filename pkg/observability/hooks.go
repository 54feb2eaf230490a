// Package observability lets cliquer's packages report what they are doing
// without importing a metrics backend.
//
// Loading, the search engines, the caches and the API server each call a
// small hook interface. Until the binary installs something else, every
// hook is a no-op. [NewPrometheusHooks] implements all three interfaces:
//
//	h := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	observability.SetEngineHooks(h)
//	observability.SetCacheHooks(h)
//	observability.SetHTTPHooks(h)
//
// and an instrumented call site looks like
//
//	observability.Engine().OnEnumerateStart(ctx, backend, pivot, n)
//	defer func() {
//	    observability.Engine().OnEnumerateComplete(ctx, backend, pivot, total, time.Since(t0), err)
//	}()
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// EngineHooks covers graph loading, enumeration and densest subgraph runs.
type EngineHooks interface {
	OnLoadComplete(ctx context.Context, vertices, edges, skipped int, duration time.Duration, err error)

	OnEnumerateStart(ctx context.Context, backend, pivot string, vertices int)
	OnEnumerateComplete(ctx context.Context, backend, pivot string, cliques int64, duration time.Duration, err error)

	OnDensestStart(ctx context.Context, method string, vertices int)
	OnDensestComplete(ctx context.Context, method string, iterations int, duration time.Duration, err error)
}

// CacheHooks is called by the pipeline around result cache lookups. kind is
// "report" or "densest"; size is the stored payload in bytes.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks is called once per served request. route is the router
// pattern such as "/v1/cliques", never the raw path.
type HTTPHooks interface {
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type NoopEngineHooks struct{}

func (NoopEngineHooks) OnLoadComplete(context.Context, int, int, int, time.Duration, error) {}

func (NoopEngineHooks) OnEnumerateStart(context.Context, string, string, int) {}

func (NoopEngineHooks) OnEnumerateComplete(context.Context, string, string, int64, time.Duration, error) {
}

func (NoopEngineHooks) OnDensestStart(context.Context, string, int) {}

func (NoopEngineHooks) OnDensestComplete(context.Context, string, int, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// installed is swapped whole on every Set call, so readers never lock.
type installed struct {
	engine EngineHooks
	cache  CacheHooks
	http   HTTPHooks
}

var current atomic.Pointer[installed]

func init() { Reset() }

func update(f func(*installed)) {
	for {
		old := current.Load()
		next := *old
		f(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetEngineHooks installs h. A nil h is ignored.
func SetEngineHooks(h EngineHooks) {
	if h != nil {
		update(func(i *installed) { i.engine = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(i *installed) { i.cache = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(i *installed) { i.http = h })
	}
}

func Engine() EngineHooks { return current.Load().engine }
func Cache() CacheHooks   { return current.Load().cache }
func HTTP() HTTPHooks     { return current.Load().http }

// Reset puts the no-op hooks back. Tests that install hooks call it when
// they finish.
func Reset() {
	current.Store(&installed{
		engine: NoopEngineHooks{},
		cache:  NoopCacheHooks{},
		http:   NoopHTTPHooks{},
	})
}
