// Package cache stores finished reports keyed by input content.
//
// Enumeration is deterministic: the same graph with the same backend, pivot
// and seeding always yields the same histogram. A [Cache] can therefore serve
// a repeated request without searching again. Only completed results are
// stored; a canceled search leaves nothing behind.
//
// Three implementations are provided: [FileCache] for the CLI, [RedisCache]
// for servers sharing results, and [NullCache] to disable caching. Keys are
// built by a [Keyer] from the edge-list hash and the options that affect the
// result.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs.
const (
	TTLReport  = 30 * 24 * time.Hour
	TTLDensest = 30 * 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	ReportKey(graphHash string, opts ReportKeyOpts) string
	DensestKey(graphHash string, opts DensestKeyOpts) string
}

// ReportKeyOpts are the options that change a clique report.
//
// The backend is deliberately absent: every backend produces the same report.
type ReportKeyOpts struct {
	Pivot   string `json:"pivot"`
	Seeding string `json:"seeding"`
}

// DensestKeyOpts are the options that change a densest-subgraph result.
type DensestKeyOpts struct {
	Method string `json:"method"`
}

// DefaultKeyer builds keys of the form "kind:sha256(...)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ReportKey returns the key for a clique report.
func (DefaultKeyer) ReportKey(graphHash string, opts ReportKeyOpts) string {
	return digestKey("report", graphHash, "pivot="+opts.Pivot, "seeding="+opts.Seeding)
}

// DensestKey returns the key for a densest-subgraph result.
func (DefaultKeyer) DensestKey(graphHash string, opts DensestKeyOpts) string {
	return digestKey("densest", graphHash, "method="+opts.Method)
}

// digestKey returns kind followed by the SHA-256 of the NUL-separated parts.
func digestKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the lowercase hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
