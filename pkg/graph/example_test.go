package graph_test

import (
	"fmt"

	"github.com/matzehuels/cliquer/pkg/graph"
)

func ExampleBuild() {
	g, err := graph.Build(4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}, {U: 3, V: 3}},
		graph.WithBackend(graph.BackendOrdered),
		graph.WithReporter(func(ie graph.InvalidEdge) { fmt.Println("skipped:", ie) }),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(g.Order(), g.Size(), g.Degree(3))
	// Output:
	// skipped: invalid edge (3, 3): self-loop
	// 4 3 0
}
