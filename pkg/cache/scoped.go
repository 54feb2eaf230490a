package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis database without seeing each other's entries:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ReportKey returns the prefixed report key.
func (k *ScopedKeyer) ReportKey(graphHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(graphHash, opts)
}

// DensestKey returns the prefixed densest-subgraph key.
func (k *ScopedKeyer) DensestKey(graphHash string, opts DensestKeyOpts) string {
	return k.prefix + k.inner.DensestKey(graphHash, opts)
}
