package densest

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cliquer/pkg/graph"
)

func build(t *testing.T, n int, edges []graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.Build(n, edges, graph.WithAllowEdgeless())
	require.NoError(t, err)
	return g
}

// k4 plus a path hanging off vertex 3.
var k4Tail = []graph.Edge{
	{U: 0, V: 1}, {U: 0, V: 2}, {U: 0, V: 3}, {U: 1, V: 2}, {U: 1, V: 3}, {U: 2, V: 3},
	{U: 3, V: 4}, {U: 4, V: 5}, {U: 5, V: 6},
}

func TestExactK4Tail(t *testing.T) {
	g := build(t, 7, k4Tail)
	res, err := Exact(context.Background(), g, Options{})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, res.Vertices)
	require.Equal(t, 6, res.Edges)
	require.InDelta(t, 1.5, res.Density, 1e-12)
	require.InDelta(t, 3.0, res.AverageDegree, 1e-12)
}

func TestPeelK4Tail(t *testing.T) {
	res := Peel(build(t, 7, k4Tail))
	require.Equal(t, []int{0, 1, 2, 3}, res.Vertices)
	require.Equal(t, 6, res.Edges)
	require.InDelta(t, 1.5, res.Density, 1e-12)
	require.InDelta(t, 3.0, res.AverageDegree, 1e-12)
}

func TestExactWholeGraph(t *testing.T) {
	// A 5-cycle is its own densest subgraph.
	g := build(t, 5, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 0}})
	res, err := Exact(context.Background(), g, Options{})
	require.NoError(t, err)
	require.Len(t, res.Vertices, 5)
	require.InDelta(t, 1.0, res.Density, 1e-12)
}

func TestExactEdgeless(t *testing.T) {
	res, err := Exact(context.Background(), build(t, 3, nil), Options{})
	require.NoError(t, err)
	require.Zero(t, res.Density)
	require.Zero(t, res.Iterations)
}

func TestExactDisconnected(t *testing.T) {
	// A K4 and a K5; the K5 wins.
	edges := []graph.Edge{
		{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 2}, {U: 1, V: 3}, {U: 2, V: 3}, {U: 0, V: 3},
		{U: 4, V: 5}, {U: 4, V: 6}, {U: 4, V: 7}, {U: 4, V: 8}, {U: 5, V: 6}, {U: 5, V: 7}, {U: 5, V: 8}, {U: 6, V: 7}, {U: 6, V: 8}, {U: 7, V: 8},
	}
	g := build(t, 9, edges)
	res, err := Exact(context.Background(), g, Options{})
	require.NoError(t, err)
	require.Equal(t, []int{4, 5, 6, 7, 8}, res.Vertices)
	require.InDelta(t, 2.0, res.Density, 1e-12)
	require.GreaterOrEqual(t, res.Density, Peel(g).Density)
}

func TestExactMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := range 20 {
		n := 4 + rng.IntN(6)
		var edges []graph.Edge
		for u := range n {
			for v := u + 1; v < n; v++ {
				if rng.Float64() < 0.4 {
					edges = append(edges, graph.Edge{U: u, V: v})
				}
			}
		}
		g := build(t, n, edges)

		want := 0.0
		for mask := 1; mask < 1<<n; mask++ {
			var vs []int
			for v := range n {
				if mask&(1<<v) != 0 {
					vs = append(vs, v)
				}
			}
			want = max(want, float64(g.InducedEdges(vs))/float64(len(vs)))
		}

		res, err := Exact(context.Background(), g, Options{})
		require.NoError(t, err)
		require.InDelta(t, want, res.Density, 1e-9, "trial %d", trial)
		if len(res.Vertices) > 0 {
			require.InDelta(t, float64(g.InducedEdges(res.Vertices))/float64(len(res.Vertices)), res.Density, 1e-12)
		}

		p := Peel(g)
		require.GreaterOrEqual(t, p.Density*2+1e-9, want, "trial %d: peel is not a 2-approximation", trial)
	}
}

func TestExactCanceled(t *testing.T) {
	edges := []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}, {U: 2, V: 3}, {U: 3, V: 4}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Exact(ctx, build(t, 5, edges), Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOnIteration(t *testing.T) {
	calls := 0
	res, err := Exact(context.Background(), build(t, 7, k4Tail), Options{
		OnIteration: func(alpha float64, found bool) { calls++ },
	})
	require.NoError(t, err)
	require.Equal(t, res.Iterations, calls)
	require.Positive(t, calls)
}
