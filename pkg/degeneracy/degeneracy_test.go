package degeneracy

import (
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/cliquer/pkg/graph"
)

// batageljZaversnik is the example graph from Batagelj and Zaversnik,
// "An O(m) Algorithm for Cores Decomposition of Networks".
var batageljZaversnik = adjacency{
	0:  nil,
	1:  {2, 3},
	2:  {4},
	3:  {4},
	4:  {5},
	5:  nil,
	6:  {7, 8, 14},
	7:  {8, 11, 12, 14},
	8:  {14},
	9:  {11},
	10: {11},
	11: {12},
	12: {18},
	13: {14, 15},
	14: {15, 17},
	15: {16, 17},
	16: nil,
	17: {18, 19, 20},
	18: {19, 20},
	19: {20},
	20: nil,
}

type adjacency [][]int

func (a adjacency) build(t *testing.T, b graph.Backend) *graph.Graph {
	t.Helper()
	var edges []graph.Edge
	for u, vs := range a {
		for _, v := range vs {
			edges = append(edges, graph.Edge{U: u, V: v})
		}
	}
	g, err := graph.Build(len(a), edges, graph.WithBackend(b), graph.WithAllowEdgeless())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

var backends = []graph.Backend{graph.BackendBitset, graph.BackendHash, graph.BackendOrdered}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		g         adjacency
		wantShell [][]int
	}{
		{
			name: "small",
			g: adjacency{
				0: {1, 2, 4, 6},
				1: {2, 4, 6},
				2: {3, 6},
				3: {4, 5},
				4: {6},
				5: nil,
				6: nil,
			},
			wantShell: [][]int{{}, {5}, {3}, {0, 1, 2, 4, 6}},
		},
		{
			name: "batagelj-zaversnik",
			g:    batageljZaversnik,
			wantShell: [][]int{
				{0},
				{5, 9, 10, 16},
				{1, 2, 3, 4, 11, 12, 13, 15},
				{6, 7, 8, 14, 17, 18, 19, 20},
			},
		},
	}
	for _, tt := range tests {
		for _, b := range backends {
			t.Run(tt.name+"/"+b.String(), func(t *testing.T) {
				o := Compute(tt.g.build(t, b))
				if got, want := o.Degeneracy(), len(tt.wantShell)-1; got != want {
					t.Errorf("Degeneracy() = %d, want %d", got, want)
				}
				shells := o.Shells()
				for k, want := range tt.wantShell {
					var got []int
					if k < len(shells) {
						got = slices.Clone(shells[k])
					}
					slices.Sort(got)
					if len(got) == 0 && len(want) == 0 {
						continue
					}
					if !reflect.DeepEqual(got, want) {
						t.Errorf("shell %d = %v, want %v", k, got, want)
					}
				}
			})
		}
	}
}

func TestOrderingInvariants(t *testing.T) {
	for _, b := range backends {
		g := batageljZaversnik.build(t, b)
		o := Compute(g)

		if len(o.Order) != g.Order() {
			t.Fatalf("len(Order) = %d, want %d", len(o.Order), g.Order())
		}
		seen := make([]bool, g.Order())
		for i, v := range o.Order {
			if seen[v] {
				t.Fatalf("vertex %d appears twice", v)
			}
			seen[v] = true
			if o.Position(v) != i {
				t.Errorf("Position(%d) = %d, want %d", v, o.Position(v), i)
			}
		}

		for v := range g.Order() {
			later, earlier := o.Split(g, v)
			if len(later) > o.Degeneracy() {
				t.Errorf("%v: vertex %d has %d later neighbors, degeneracy %d", b, v, len(later), o.Degeneracy())
			}
			if len(later) != o.RemovalDegree(v) {
				t.Errorf("%v: RemovalDegree(%d) = %d, want %d", b, v, o.RemovalDegree(v), len(later))
			}
			if len(later)+len(earlier) != g.Degree(v) {
				t.Errorf("%v: Split(%d) covers %d neighbors, want %d", b, v, len(later)+len(earlier), g.Degree(v))
			}
			for _, u := range later {
				if !o.Later(v, u) || o.Later(u, v) {
					t.Errorf("%v: Later(%d, %d) inconsistent", b, v, u)
				}
			}
		}
	}
}

func TestComputeClique(t *testing.T) {
	var edges []graph.Edge
	for u := range 6 {
		for v := u + 1; v < 6; v++ {
			edges = append(edges, graph.Edge{U: u, V: v})
		}
	}
	g, err := graph.Build(6, edges)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	o := Compute(g)
	if o.Degeneracy() != 5 {
		t.Errorf("Degeneracy() = %d, want 5", o.Degeneracy())
	}
	for v := range 6 {
		if o.Core(v) != 5 {
			t.Errorf("Core(%d) = %d, want 5", v, o.Core(v))
		}
	}
}

func TestComputeIsolated(t *testing.T) {
	g, err := graph.Build(4, nil, graph.WithAllowEdgeless())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	o := Compute(g)
	if o.Degeneracy() != 0 {
		t.Errorf("Degeneracy() = %d, want 0", o.Degeneracy())
	}
	if len(o.Order) != 4 {
		t.Errorf("len(Order) = %d, want 4", len(o.Order))
	}
}
