package pipeline

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	"github.com/matzehuels/cliquer/pkg/clique"
	"github.com/matzehuels/cliquer/pkg/densest"
	"github.com/matzehuels/cliquer/pkg/errors"
	"github.com/matzehuels/cliquer/pkg/render"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// RenderFormats lists the accepted output formats.
var RenderFormats = []string{FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// Highlight modes.
const (
	HighlightClique  = "clique"
	HighlightDensest = "densest"
	HighlightNone    = "none"
)

// HighlightModes lists the accepted highlight modes.
var HighlightModes = []string{HighlightClique, HighlightDensest, HighlightNone}

// RenderOptions configures Render.
type RenderOptions struct {
	Formats      []string
	Highlight    string
	Title        string
	HideIsolated bool
	MaxVertices  int
	// Scale applies to PNG output. Zero means 2.
	Scale float64
}

// Render draws in.Graph in every requested format. The clique highlight marks
// the first maximum clique found; the densest highlight marks the greedy
// peeling result.
func (r *Runner) Render(ctx context.Context, in *Input, opts RenderOptions) (map[string][]byte, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	if opts.Highlight == "" {
		opts.Highlight = HighlightClique
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	for _, f := range opts.Formats {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "render format", f, RenderFormats); err != nil {
			return nil, err
		}
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidInput, "highlight", opts.Highlight, HighlightModes); err != nil {
		return nil, err
	}

	highlight, err := r.highlight(ctx, in, strings.ToLower(strings.TrimSpace(opts.Highlight)))
	if err != nil {
		return nil, err
	}

	dot, err := render.ToDOT(in.Graph, render.Options{
		Highlight:    highlight,
		Title:        opts.Title,
		HideIsolated: opts.HideIsolated,
		MaxVertices:  opts.MaxVertices,
	})
	if err != nil {
		if stderrors.Is(err, render.ErrTooLarge) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "render")
		}
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	for _, f := range opts.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == FormatDOT {
			artifacts[f] = []byte(dot)
			continue
		}
		if svg == nil {
			if svg, err = render.RenderSVG(ctx, dot); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
			}
		}
		var data []byte
		switch f {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(ctx, svg, opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svg)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
		}
		artifacts[f] = data
	}

	r.Logger.Info("rendered graph", "formats", opts.Formats, "highlighted", len(highlight))
	return artifacts, nil
}

func (r *Runner) highlight(ctx context.Context, in *Input, mode string) ([]int, error) {
	switch mode {
	case HighlightClique:
		var best []int
		_, err := clique.Enumerate(ctx, in.Graph, clique.Options{
			Visit: func(c []int) {
				if len(c) > len(best) {
					best = c
				}
			},
		})
		if err != nil {
			return nil, searchError(err, "highlight")
		}
		slices.Sort(best)
		return best, nil
	case HighlightDensest:
		return densest.Peel(in.Graph).Vertices, nil
	}
	return nil, nil
}
