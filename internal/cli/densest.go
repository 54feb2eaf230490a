package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const maxListedVertices = 50

// densestCommand creates the densest command.
func (c *CLI) densestCommand() *cobra.Command {
	var (
		flags  engineFlags
		method string
	)

	cmd := &cobra.Command{
		Use:   "densest [file|-]",
		Short: "Find the densest subgraph",
		Long: `Find a vertex set S maximizing |E(S)| / |S|.

The exact method runs Goldberg's parametric min-cut search. The peel method
repeatedly removes a minimum-degree vertex and is within a factor of two.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.options(&flags)
			if method != "" {
				opts.Method = method
			}
			in, err := c.load(cmd, runner, args[0], opts)
			if err != nil {
				return err
			}

			spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Searching for the densest subgraph...")
			spinner.Start()
			result, err := runner.Densest(ctx, in, opts)
			spinner.Stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.json {
				return writeJSON(out, result)
			}
			sub := result.Subgraph
			printStats(out, in.Graph.Order(), in.Graph.Size(), result.CacheHit)
			printKeyValue(out, "Method", result.Method)
			printKeyValue(out, "Density", fmt.Sprintf("%.6f", sub.Density))
			printKeyValue(out, "Avg degree", fmt.Sprintf("%.6f", sub.AverageDegree))
			printKeyValue(out, "Vertices", humanize.Comma(int64(len(sub.Vertices))))
			printKeyValue(out, "Edges", humanize.Comma(int64(sub.Edges)))
			if result.Method == "exact" {
				printKeyValue(out, "Iterations", fmt.Sprint(sub.Iterations))
			}
			printKeyValue(out, "Elapsed", formatElapsed(result.Elapsed))
			printDetail(out, "%s", formatVertices(sub.Vertices, maxListedVertices))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&method, "method", "m", "", "exact (default) or peel")
	return cmd
}
