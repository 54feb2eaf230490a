package cli

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cliquer/pkg/httputil"
	"github.com/matzehuels/cliquer/pkg/pipeline"
	"github.com/matzehuels/cliquer/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string
	formats      string
	highlight    string
	title        string
	hideIsolated bool
	maxVertices  int
	scale        float64
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags engineFlags
		ro    renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Draw the graph with its largest clique highlighted",
		Long: `Draw the graph with Graphviz and highlight either a maximum clique or the
greedy densest subgraph.

SVG is rendered in-process. PNG and PDF need rsvg-convert on PATH.`,
		Example: `  cliquer render graph.txt
  cliquer render --format svg,png --highlight densest -o out/graph graph.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			in, err := c.load(cmd, runner, args[0], c.options(&flags))
			if err != nil {
				return err
			}

			formats := parseFormats(ro.formats)
			title := ro.title
			if title == "" && args[0] != "-" {
				title = path.Base(urlPath(args[0]))
			}
			artifacts, err := runner.Render(cmd.Context(), in, pipeline.RenderOptions{
				Formats:      formats,
				Highlight:    ro.highlight,
				Title:        title,
				HideIsolated: ro.hideIsolated,
				MaxVertices:  ro.maxVertices,
				Scale:        ro.scale,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			base := basePath(ro.output, args[0])
			for _, f := range formats {
				dst := base + "." + f
				if dir := filepath.Dir(dst); dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return fmt.Errorf("create %s: %w", dir, err)
					}
				}
				if err := os.WriteFile(dst, artifacts[f], 0o644); err != nil {
					return fmt.Errorf("write %s: %w", dst, err)
				}
				printFile(out, dst)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output base path (default: input name without extension)")
	cmd.Flags().StringVar(&ro.formats, "formats", "", "output formats: svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&ro.highlight, "highlight", pipeline.HighlightClique, "clique, densest or none")
	cmd.Flags().StringVar(&ro.title, "title", "", "graph label (default: input file name)")
	cmd.Flags().BoolVar(&ro.hideIsolated, "hide-isolated", false, "omit vertices without edges")
	cmd.Flags().IntVar(&ro.maxVertices, "max-vertices", render.DefaultMaxVertices, "refuse to draw larger graphs")
	cmd.Flags().Float64Var(&ro.scale, "scale", 2, "PNG scale factor")
	return cmd
}

// parseFormats splits a comma-separated format list. Empty means svg.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the output path without extension. A known format
// extension on output is stripped; stdin input defaults to "graph" and a URL
// input to the last path element in the working directory.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "graph"
		}
		if httputil.IsURL(input) {
			if input = path.Base(urlPath(input)); input == "/" || input == "." {
				return "graph"
			}
		}
		input = strings.TrimSuffix(input, ".gz")
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.RenderFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// urlPath returns the path component of a URL input, or s itself for files.
func urlPath(s string) string {
	if !httputil.IsURL(s) {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
