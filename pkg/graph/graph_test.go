package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuild(t *testing.T) {
	g, err := Build(4, []Edge{{0, 1}, {1, 2}, {2, 0}, {2, 3}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.Order(); got != 4 {
		t.Errorf("Order() = %d, want 4", got)
	}
	if got := g.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
	if got := g.MaxDegree(); got != 3 {
		t.Errorf("MaxDegree() = %d, want 3", got)
	}
	if got := g.Backend(); got != BackendBitset {
		t.Errorf("Backend() = %v, want bitset", got)
	}

	degrees := []int{2, 2, 3, 1}
	for v, want := range degrees {
		if got := g.Degree(v); got != want {
			t.Errorf("Degree(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestBuildDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []Edge
		opts  []Option
	}{
		{"zero vertices", 0, []Edge{{0, 1}}, nil},
		{"negative vertices", -3, nil, nil},
		{"no edges", 5, nil, nil},
		{"all rejected", 3, []Edge{{0, 0}, {1, 7}}, nil},
		{"edgeless still needs vertices", 0, nil, []Option{WithAllowEdgeless()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.n, tt.edges, tt.opts...)
			if !errors.Is(err, ErrDegenerateInput) {
				t.Errorf("Build() error = %v, want ErrDegenerateInput", err)
			}
		})
	}
}

func TestBuildAllowEdgeless(t *testing.T) {
	g, err := Build(3, nil, WithAllowEdgeless())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Size() != 0 || g.MaxDegree() != 0 {
		t.Errorf("Size() = %d, MaxDegree() = %d, want 0, 0", g.Size(), g.MaxDegree())
	}
	if got := g.Stats().Isolated; got != 3 {
		t.Errorf("Stats().Isolated = %d, want 3", got)
	}
}

func TestBuildDuplicates(t *testing.T) {
	g, err := Build(3, []Edge{{0, 1}, {1, 0}, {0, 1}, {1, 2}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
	if got := g.Degree(1); got != 2 {
		t.Errorf("Degree(1) = %d, want 2", got)
	}
	if got := g.Stats().Duplicates; got != 2 {
		t.Errorf("Stats().Duplicates = %d, want 2", got)
	}
}

func TestBuildRejects(t *testing.T) {
	var reported []InvalidEdge
	g, err := Build(3, []Edge{{0, 1}, {2, 2}, {0, 3}, {-1, 1}, {1, 2}},
		WithReporter(func(ie InvalidEdge) { reported = append(reported, ie) }))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []InvalidEdge{
		{Edge: Edge{2, 2}, Index: 1, Reason: ReasonSelfLoop, VertexCount: 3},
		{Edge: Edge{0, 3}, Index: 2, Reason: ReasonOutOfRange, VertexCount: 3},
		{Edge: Edge{-1, 1}, Index: 3, Reason: ReasonOutOfRange, VertexCount: 3},
	}
	if !reflect.DeepEqual(reported, want) {
		t.Errorf("reported = %+v, want %+v", reported, want)
	}
	if !reflect.DeepEqual(g.Rejected(), want) {
		t.Errorf("Rejected() = %+v, want %+v", g.Rejected(), want)
	}
	if g.Size() != 2 {
		t.Errorf("Size() = %d, want 2", g.Size())
	}
	for _, ie := range reported {
		if !errors.Is(ie, ErrInvalidEdge) {
			t.Errorf("errors.Is(%v, ErrInvalidEdge) = false", ie)
		}
	}
}

func TestAdjacent(t *testing.T) {
	g, err := Build(3, []Edge{{0, 1}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tests := []struct {
		u, v int
		want bool
	}{
		{0, 1, true},
		{1, 0, true},
		{0, 2, false},
		{0, 0, false},
		{-1, 0, false},
		{0, 9, false},
		{9, 0, false},
	}
	for _, tt := range tests {
		if got := g.Adjacent(tt.u, tt.v); got != tt.want {
			t.Errorf("Adjacent(%d, %d) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestEdges(t *testing.T) {
	for _, b := range []Backend{BackendBitset, BackendHash, BackendOrdered} {
		t.Run(b.String(), func(t *testing.T) {
			g, err := Build(4, []Edge{{3, 0}, {2, 1}, {0, 1}, {1, 3}}, WithBackend(b))
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			want := []Edge{{0, 1}, {0, 3}, {1, 2}, {1, 3}}
			if got := g.Edges(); !reflect.DeepEqual(got, want) {
				t.Errorf("Edges() = %v, want %v", got, want)
			}
		})
	}
}

func TestTriangles(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []Edge
		want  int64
	}{
		{"path", 3, []Edge{{0, 1}, {1, 2}}, 0},
		{"triangle", 3, []Edge{{0, 1}, {1, 2}, {0, 2}}, 1},
		{"k4", 4, []Edge{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, 4},
		{"bowtie", 5, []Edge{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {3, 4}, {2, 4}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.n, tt.edges)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := g.Triangles(); got != tt.want {
				t.Errorf("Triangles() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInducedEdges(t *testing.T) {
	g, err := Build(5, []Edge{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {3, 4}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.InducedEdges([]int{0, 1, 2}); got != 3 {
		t.Errorf("InducedEdges({0,1,2}) = %d, want 3", got)
	}
	if got := g.InducedEdges([]int{0, 4}); got != 0 {
		t.Errorf("InducedEdges({0,4}) = %d, want 0", got)
	}
}
