package graph

import (
	"errors"
	"slices"
	"testing"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"auto", BackendAuto, false},
		{"bitset", BackendBitset, false},
		{" Hash ", BackendHash, false},
		{"ORDERED", BackendOrdered, false},
		{"btree", BackendAuto, true},
		{"", BackendAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBackend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownBackend) {
			t.Errorf("ParseBackend(%q) error = %v, want ErrUnknownBackend", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBackendString(t *testing.T) {
	for _, name := range BackendNames {
		b, err := ParseBackend(name)
		if err != nil {
			t.Fatalf("ParseBackend(%q): %v", name, err)
		}
		if b.String() != name {
			t.Errorf("String() = %q, want %q", b.String(), name)
		}
	}
	if got := Backend(42).String(); got != "Backend(42)" {
		t.Errorf("String() = %q, want Backend(42)", got)
	}
}

func TestResolve(t *testing.T) {
	if got := BackendAuto.resolve(1000); got != BackendBitset {
		t.Errorf("resolve(1000) = %v, want bitset", got)
	}
	if got := BackendAuto.resolve(1 << 20); got != BackendHash {
		t.Errorf("resolve(1<<20) = %v, want hash", got)
	}
	if got := BackendOrdered.resolve(1 << 20); got != BackendOrdered {
		t.Errorf("resolve(1<<20) = %v, want ordered", got)
	}
}

func TestNeighborSetsAgree(t *testing.T) {
	const n = 70
	var edges []Edge
	for u := range n {
		for v := u + 1; v < n; v++ {
			if (u*31+v*17)%5 == 0 {
				edges = append(edges, Edge{u, v})
			}
		}
	}

	collect := func(s NeighborSet) []int {
		var out []int
		s.Each(func(v int) bool {
			out = append(out, v)
			return true
		})
		slices.Sort(out)
		return out
	}

	ref, err := Build(n, edges, WithBackend(BackendBitset))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, b := range []Backend{BackendHash, BackendOrdered} {
		g, err := Build(n, edges, WithBackend(b))
		if err != nil {
			t.Fatalf("Build(%v): %v", b, err)
		}
		for v := range n {
			want, got := collect(ref.Neighbors(v)), collect(g.Neighbors(v))
			if !slices.Equal(got, want) {
				t.Fatalf("%v: Neighbors(%d) = %v, want %v", b, v, got, want)
			}
			if g.Degree(v) != ref.Degree(v) {
				t.Errorf("%v: Degree(%d) = %d, want %d", b, v, g.Degree(v), ref.Degree(v))
			}
			for u := -1; u <= n; u++ {
				if g.Neighbors(v).Has(u) != ref.Neighbors(v).Has(u) {
					t.Errorf("%v: Neighbors(%d).Has(%d) disagrees", b, v, u)
				}
			}
		}
	}
}

func TestEachStopsEarly(t *testing.T) {
	for _, b := range []Backend{BackendBitset, BackendHash, BackendOrdered} {
		g, err := Build(5, []Edge{{0, 1}, {0, 2}, {0, 3}, {0, 4}}, WithBackend(b))
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		calls := 0
		g.Neighbors(0).Each(func(int) bool {
			calls++
			return calls < 2
		})
		if calls != 2 {
			t.Errorf("%v: Each made %d calls, want 2", b, calls)
		}
	}
}

func TestOrderedIterationAscending(t *testing.T) {
	for _, b := range []Backend{BackendBitset, BackendOrdered} {
		g, err := Build(6, []Edge{{0, 5}, {0, 2}, {0, 4}, {0, 1}}, WithBackend(b))
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		var got []int
		g.Neighbors(0).Each(func(v int) bool {
			got = append(got, v)
			return true
		})
		if !slices.IsSorted(got) {
			t.Errorf("%v: Each order = %v, want ascending", b, got)
		}
	}
}
