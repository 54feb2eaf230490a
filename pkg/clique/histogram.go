package clique

import "slices"

// Histogram counts maximal cliques by size.
//
// The zero value is an empty histogram ready to use. A Histogram has a single
// writer; it is not safe for concurrent Record calls.
type Histogram struct {
	counts []int64
	total  int64
}

// Record counts one clique of the given size.
func (h *Histogram) Record(size int) {
	if size >= len(h.counts) {
		h.counts = append(h.counts, make([]int64, size+1-len(h.counts))...)
	}
	h.counts[size]++
	h.total++
}

// Merge adds every count of other into h.
func (h *Histogram) Merge(other *Histogram) {
	if len(other.counts) > len(h.counts) {
		h.counts = append(h.counts, make([]int64, len(other.counts)-len(h.counts))...)
	}
	for size, c := range other.counts {
		h.counts[size] += c
	}
	h.total += other.total
}

// Total returns the number of cliques recorded.
func (h *Histogram) Total() int64 { return h.total }

// Count returns the number of cliques of the given size.
func (h *Histogram) Count(size int) int64 {
	if size < 0 || size >= len(h.counts) {
		return 0
	}
	return h.counts[size]
}

// MaxSize returns the size of the largest clique recorded, or 0 if none.
func (h *Histogram) MaxSize() int {
	for size := len(h.counts) - 1; size > 0; size-- {
		if h.counts[size] > 0 {
			return size
		}
	}
	return 0
}

// SizeCount is one row of a Snapshot.
type SizeCount struct {
	Size  int   `json:"size"`
	Count int64 `json:"count"`
}

// Snapshot is a read-only copy of a Histogram with sizes in ascending order.
// Sizes with a zero count are omitted.
type Snapshot struct {
	Sizes []SizeCount `json:"sizes"`
	Total int64       `json:"total"`
}

// Snapshot returns the current counts.
func (h *Histogram) Snapshot() Snapshot {
	s := Snapshot{Sizes: []SizeCount{}, Total: h.total}
	for size, c := range h.counts {
		if c > 0 {
			s.Sizes = append(s.Sizes, SizeCount{Size: size, Count: c})
		}
	}
	return s
}

// Equal reports whether s and other hold the same counts.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Total == other.Total && slices.Equal(s.Sizes, other.Sizes)
}

// Map returns the counts keyed by size.
func (s Snapshot) Map() map[int]int64 {
	m := make(map[int]int64, len(s.Sizes))
	for _, sc := range s.Sizes {
		m[sc.Size] = sc.Count
	}
	return m
}
