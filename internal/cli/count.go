package cli

import (
	"encoding/json"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliquer/pkg/pipeline"
)

// countCommand creates the count command, the main entry point.
func (c *CLI) countCommand() *cobra.Command {
	var flags engineFlags

	cmd := &cobra.Command{
		Use:   "count [file|-]",
		Short: "Count maximal cliques by size",
		Long: `Count every maximal clique of the graph and print how many there are of each size.

The input is an edge list with one "u v" pair per line. Lines starting with
# or % are comments. Malformed lines and self-loops are skipped with a warning.
The file may be gzip-compressed or given as an http(s) URL.

Results are cached by input content; use --refresh to recompute.`,
		Example: `  cliquer count graph.txt
  cliquer count --backend hash --pivot max-degree graph.txt
  cliquer count https://example.org/graphs/karate.txt.gz
  cat graph.txt | cliquer count --json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCount(cmd, args[0], &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runCount(cmd *cobra.Command, path string, flags *engineFlags) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.options(flags)
	in, err := c.load(cmd, runner, path, opts)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Enumerating cliques...")
	spinner.Start()
	prog := newProgress(c.Logger)
	result, err := runner.Count(ctx, in, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("counted " + humanize.Comma(result.Report.Total) + " maximal cliques")

	out := cmd.OutOrStdout()
	if flags.json {
		return writeJSON(out, result)
	}
	printCountResult(out, result)
	return nil
}

func printCountResult(w io.Writer, r *pipeline.Result) {
	printStats(w, r.Stats.Vertices, r.Stats.Edges, r.CacheHit)
	printHistogram(w, r.Report)
	printKeyValue(w, "Degeneracy", humanize.Comma(int64(r.Stats.Degeneracy)))
	printKeyValue(w, "Backend", r.Stats.Backend)
	printKeyValue(w, "Pivot", r.Stats.Pivot)
	printKeyValue(w, "Elapsed", formatElapsed(r.Stats.Elapsed()))
	if r.Stats.Skipped > 0 || r.Stats.Rejected > 0 {
		printWarning(w, "%d lines skipped, %d edges rejected", r.Stats.Skipped, r.Stats.Rejected)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
