package graph

import (
	"fmt"
	"strings"

	"github.com/google/btree"
	"github.com/soniakeys/bits"
)

// NeighborSet is the read-only view of one vertex's neighbors.
// All backends answer these queries with identical semantics.
type NeighborSet interface {
	// Has reports whether v is a neighbor. Out-of-range ids are never members.
	Has(v int) bool
	// Len returns the number of neighbors (the vertex degree).
	Len() int
	// Each calls fn for every neighbor until fn returns false. The bitset
	// and ordered backends visit in ascending order; the hash backend in
	// unspecified order.
	Each(fn func(v int) bool)
}

// neighborSet is the build-time view: sets are only mutated inside Build.
type neighborSet interface {
	NeighborSet
	add(v int) bool
}

// Backend selects the neighbor-set representation.
type Backend int

const (
	// BackendAuto picks BackendBitset for graphs small enough that the
	// bit vectors fit in AutoBitsetLimit bytes, BackendHash otherwise.
	BackendAuto Backend = iota
	// BackendBitset stores each neighbor set as a bit vector of length n.
	BackendBitset
	// BackendHash stores each neighbor set as a Go map.
	BackendHash
	// BackendOrdered stores each neighbor set as a B-tree.
	BackendOrdered
)

// AutoBitsetLimit is the total bit-vector footprint, in bytes, up to which
// BackendAuto chooses BackendBitset.
const AutoBitsetLimit = 64 << 20

// btreeDegree is the B-tree branching factor for BackendOrdered.
const btreeDegree = 16

var backendNames = map[Backend]string{
	BackendAuto:    "auto",
	BackendBitset:  "bitset",
	BackendHash:    "hash",
	BackendOrdered: "ordered",
}

// BackendNames lists the names accepted by ParseBackend, in display order.
var BackendNames = []string{"auto", "bitset", "hash", "ordered"}

// String returns the backend name as accepted by ParseBackend.
func (b Backend) String() string {
	if s, ok := backendNames[b]; ok {
		return s
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend maps a backend name to its Backend. Matching ignores case.
func ParseBackend(name string) (Backend, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for b, s := range backendNames {
		if s == n {
			return b, nil
		}
	}
	return BackendAuto, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// resolve turns BackendAuto into a concrete backend for n vertices.
func (b Backend) resolve(n int) Backend {
	if b != BackendAuto {
		return b
	}
	if int64(n)*int64(n)/8 <= AutoBitsetLimit {
		return BackendBitset
	}
	return BackendHash
}

func newNeighborSet(b Backend, n int) neighborSet {
	switch b {
	case BackendHash:
		return &hashSet{m: make(map[int]struct{})}
	case BackendOrdered:
		return &orderedSet{t: btree.NewOrderedG[int](btreeDegree)}
	default:
		return &bitSet{b: bits.New(n)}
	}
}

// =============================================================================
// Bit vector
// =============================================================================

type bitSet struct {
	b     bits.Bits
	count int
}

func (s *bitSet) Has(v int) bool {
	return v >= 0 && v < s.b.Num && s.b.Bit(v) == 1
}

func (s *bitSet) Len() int { return s.count }

func (s *bitSet) Each(fn func(v int) bool) { s.b.IterateOnes(fn) }

func (s *bitSet) add(v int) bool {
	if s.b.Bit(v) == 1 {
		return false
	}
	s.b.SetBit(v, 1)
	s.count++
	return true
}

// =============================================================================
// Hash set
// =============================================================================

type hashSet struct {
	m map[int]struct{}
}

func (s *hashSet) Has(v int) bool {
	_, ok := s.m[v]
	return ok
}

func (s *hashSet) Len() int { return len(s.m) }

func (s *hashSet) Each(fn func(v int) bool) {
	for v := range s.m {
		if !fn(v) {
			return
		}
	}
}

func (s *hashSet) add(v int) bool {
	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	return true
}

// =============================================================================
// Ordered set
// =============================================================================

type orderedSet struct {
	t *btree.BTreeG[int]
}

func (s *orderedSet) Has(v int) bool { return s.t.Has(v) }

func (s *orderedSet) Len() int { return s.t.Len() }

func (s *orderedSet) Each(fn func(v int) bool) { s.t.Ascend(btree.ItemIteratorG[int](fn)) }

func (s *orderedSet) add(v int) bool {
	_, replaced := s.t.ReplaceOrInsert(v)
	return !replaced
}
