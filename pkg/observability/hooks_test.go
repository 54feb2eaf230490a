package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingEngine struct {
	NoopEngineHooks
	mu    sync.Mutex
	loads int
}

func (c *countingEngine) OnLoadComplete(context.Context, int, int, int, time.Duration, error) {
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
}

type taggedCache struct{ NoopCacheHooks }
type taggedHTTP struct{ NoopHTTPHooks }

func TestDefaultsAreNoops(t *testing.T) {
	Reset()
	ctx := context.Background()

	Engine().OnEnumerateStart(ctx, "bitset", "max-intersection", 34)
	Engine().OnEnumerateComplete(ctx, "bitset", "max-intersection", 36, time.Millisecond, nil)
	Engine().OnDensestComplete(ctx, "exact", 9, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "report", 512)
	HTTP().OnResponse(ctx, "POST", "/v1/densest", 422, time.Millisecond)

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Errorf("Engine() = %T", Engine())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T", HTTP())
	}
}

func TestInstallAndReset(t *testing.T) {
	t.Cleanup(Reset)

	eng := &countingEngine{}
	ch := &taggedCache{}
	hh := &taggedHTTP{}
	SetEngineHooks(eng)
	SetCacheHooks(ch)
	SetHTTPHooks(hh)
	SetEngineHooks(nil)

	if Engine() != eng || Cache() != ch || HTTP() != hh {
		t.Fatal("installed hooks were not returned")
	}

	Engine().OnLoadComplete(context.Background(), 5, 7, 0, time.Millisecond, nil)
	if eng.loads != 1 {
		t.Errorf("loads = %d, want 1", eng.loads)
	}

	Reset()
	if Engine() == eng {
		t.Error("Reset kept the custom engine hooks")
	}
}

func TestConcurrentInstall(t *testing.T) {
	t.Cleanup(Reset)
	eng := &countingEngine{}
	ch := &taggedCache{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); SetEngineHooks(eng) }()
		go func() { defer wg.Done(); SetCacheHooks(ch) }()
	}
	wg.Wait()

	if Engine() != eng || Cache() != ch {
		t.Error("concurrent installs lost an update")
	}
}
