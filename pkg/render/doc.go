// Package render draws graphs and their cliques with Graphviz.
//
// [ToDOT] writes an undirected DOT graph in which a chosen vertex set (the
// largest clique, a densest subgraph) is filled and its internal edges are
// drawn bold. [RenderSVG] lays the DOT source out with the embedded Graphviz
// from github.com/goccy/go-graphviz; [ToPDF] and [ToPNG] convert the SVG with
// the external rsvg-convert tool:
//
//	dot := render.ToDOT(g, render.Options{Highlight: clique})
//	svg, err := render.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// Layout cost grows quickly with graph size, so ToDOT refuses graphs above
// [Options.MaxVertices] with [ErrTooLarge].
package render
