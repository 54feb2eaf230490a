package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCacheNeverStores(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	for _, key := range []string{"report:abc", "densest:abc"} {
		if err := c.Set(ctx, key, []byte(`{"total":4}`), time.Hour); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
		if data, hit, err := c.Get(ctx, key); hit || data != nil || err != nil {
			t.Errorf("Get(%s) = %q, %v, %v; want a clean miss", key, data, hit, err)
		}
		if err := c.Delete(ctx, key); err != nil {
			t.Errorf("Delete(%s): %v", key, err)
		}
	}
}

func TestHash(t *testing.T) {
	edges := []byte("0 1\n1 2\n2 0\n")
	h := Hash(edges)
	if h != Hash(append([]byte(nil), edges...)) {
		t.Error("equal inputs hashed differently")
	}
	if h == Hash([]byte("0 1\n1 2\n")) {
		t.Error("distinct inputs collided")
	}
	if len(h) != 64 || strings.Trim(h, "0123456789abcdef") != "" {
		t.Errorf("Hash = %q, want 64 lowercase hex digits", h)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	r1 := k.ReportKey("hash123", ReportKeyOpts{Pivot: "max-intersection", Seeding: "degeneracy"})
	r2 := k.ReportKey("hash123", ReportKeyOpts{Pivot: "first", Seeding: "degeneracy"})
	if r1 == r2 {
		t.Error("Different ReportKeyOpts should produce different keys")
	}
	if r1 != k.ReportKey("hash123", ReportKeyOpts{Pivot: "max-intersection", Seeding: "degeneracy"}) {
		t.Error("ReportKey should be deterministic")
	}
	if !strings.HasPrefix(r1, "report:") {
		t.Errorf("ReportKey unexpected: %s", r1)
	}

	d1 := k.DensestKey("hash123", DensestKeyOpts{Method: "exact"})
	d2 := k.DensestKey("hash456", DensestKeyOpts{Method: "exact"})
	if d1 == d2 {
		t.Error("Different graph hashes should produce different keys")
	}
	if !strings.HasPrefix(d1, "densest:") {
		t.Errorf("DensestKey unexpected: %s", d1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	opts := ReportKeyOpts{Pivot: "first"}
	if got, want := scoped.ReportKey("h", opts), "user:123:"+inner.ReportKey("h", opts); got != want {
		t.Errorf("ScopedKeyer ReportKey = %s, want %s", got, want)
	}
	if got := scoped.DensestKey("h", DensestKeyOpts{}); !strings.HasPrefix(got, "user:123:densest:") {
		t.Errorf("ScopedKeyer DensestKey should be prefixed: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if got := scoped.ReportKey("h", ReportKeyOpts{}); !strings.HasPrefix(got, "prefix:report:") {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, %v; want value, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without TTL should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := os.WriteFile(c.path("key"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache() error = %v, want ErrNetwork", err)
	}
}

func TestFileEntryEncoding(t *testing.T) {
	now := time.Now()
	raw, err := encodeEntry([]byte("payload"), now.Add(time.Minute).UnixNano())
	if err != nil {
		t.Fatal(err)
	}
	if v, live, err := decodeEntry(raw, now); err != nil || !live || string(v) != "payload" {
		t.Errorf("decode before expiry = %q, %v, %v", v, live, err)
	}
	if _, live, err := decodeEntry(raw, now.Add(2*time.Minute)); err != nil || live {
		t.Errorf("decode after expiry: live %v, err %v", live, err)
	}
	if _, _, err := decodeEntry(raw[:3], now); err == nil {
		t.Error("truncated header decoded without error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	errMissing := errors.New("key missing")

	cases := []struct {
		name      string
		failures  int
		permanent bool
		wantCalls int
		wantErr   bool
	}{
		{name: "first try", wantCalls: 1},
		{name: "one transient failure", failures: 1, wantCalls: 2},
		{name: "permanent failure", failures: 1, permanent: true, wantCalls: 1, wantErr: true},
		{name: "exhausted", failures: 10, wantCalls: 3, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				switch {
				case calls > c.failures:
					return nil
				case c.permanent:
					return errMissing
				default:
					return Retryable(ErrNetwork)
				}
			})
			if calls != c.wantCalls {
				t.Errorf("calls = %d, want %d", calls, c.wantCalls)
			}
			if (err != nil) != c.wantErr {
				t.Errorf("err = %v, wantErr %v", err, c.wantErr)
			}
			if c.permanent && IsRetryable(err) {
				t.Error("permanent error came back marked retryable")
			}
		})
	}
}

func TestRetryWithBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
