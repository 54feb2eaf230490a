package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cliquer/pkg/graph"
)

// DefaultMaxVertices is the vertex limit used when Options.MaxVertices is zero.
const DefaultMaxVertices = 2000

// ErrTooLarge is returned by ToDOT for graphs over the vertex limit.
var ErrTooLarge = errors.New("graph too large to render")

// Options configures DOT generation.
type Options struct {
	// Highlight lists vertices drawn filled; edges between two highlighted
	// vertices are drawn bold.
	Highlight []int
	// Title is shown as the graph label when set.
	Title string
	// HideIsolated omits vertices of degree zero that are not highlighted.
	HideIsolated bool
	// MaxVertices caps the graph order. Zero means DefaultMaxVertices.
	MaxVertices int
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g *graph.Graph, opts Options) (string, error) {
	limit := opts.MaxVertices
	if limit <= 0 {
		limit = DefaultMaxVertices
	}
	if g.Order() > limit {
		return "", fmt.Errorf("%w: %d vertices, limit %d", ErrTooLarge, g.Order(), limit)
	}

	marked := make([]bool, g.Order())
	for _, v := range opts.Highlight {
		if v >= 0 && v < g.Order() {
			marked[v] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3];\n")
	buf.WriteString("  edge [color=\"#888888\"];\n\n")

	for v := range g.Order() {
		if opts.HideIsolated && g.Degree(v) == 0 && !marked[v] {
			continue
		}
		if marked[v] {
			fmt.Fprintf(&buf, "  %d [fillcolor=\"#7D56F4\", fontcolor=white];\n", v)
		} else {
			fmt.Fprintf(&buf, "  %d;\n", v)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if marked[e.U] && marked[e.V] {
			fmt.Fprintf(&buf, "  %d -- %d [color=\"#7D56F4\", penwidth=2.5];\n", e.U, e.V)
		} else {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG lays out DOT source and returns the SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// viewBox so the SVG scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
