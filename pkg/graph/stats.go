package graph

// Stats summarizes a built graph and what Build dropped on the way.
type Stats struct {
	Vertices   int `json:"vertices"`
	Edges      int `json:"edges"`
	MaxDegree  int `json:"max_degree"`
	Isolated   int `json:"isolated"`
	Duplicates int `json:"duplicates"`
	Rejected   int `json:"rejected"`
}

// Stats returns summary counts for g.
func (g *Graph) Stats() Stats {
	s := Stats{
		Vertices:   g.n,
		Edges:      g.m,
		MaxDegree:  g.maxDegree,
		Duplicates: g.duplicates,
		Rejected:   len(g.rejected),
	}
	for _, a := range g.adj {
		if a.Len() == 0 {
			s.Isolated++
		}
	}
	return s
}

// Triangles counts the 3-cliques of g (not necessarily maximal).
// Each triangle u < v < w is counted once.
func (g *Graph) Triangles() int64 {
	var count int64
	for u := range g.n {
		g.adj[u].Each(func(v int) bool {
			if v <= u {
				return true
			}
			g.adj[v].Each(func(w int) bool {
				if w > v && g.adj[u].Has(w) {
					count++
				}
				return true
			})
			return true
		})
	}
	return count
}

// InducedEdges counts the edges of g with both endpoints in vertices.
func (g *Graph) InducedEdges(vertices []int) int {
	in := make(map[int]bool, len(vertices))
	for _, v := range vertices {
		in[v] = true
	}
	count := 0
	for _, u := range vertices {
		g.adj[u].Each(func(v int) bool {
			if u < v && in[v] {
				count++
			}
			return true
		})
	}
	return count
}
