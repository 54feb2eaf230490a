package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliquer/pkg/degeneracy"
	"github.com/matzehuels/cliquer/pkg/graph"
)

// statsReport is the JSON form of `cliquer stats`.
type statsReport struct {
	graph.Stats
	GraphHash  string `json:"graph_hash"`
	Backend    string `json:"backend"`
	Skipped    int    `json:"skipped_lines"`
	Triangles  int64  `json:"triangles"`
	Degeneracy int    `json:"degeneracy"`
	// Shells[k] is the number of vertices with core number k.
	Shells []int `json:"shells"`
}

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var flags engineFlags

	cmd := &cobra.Command{
		Use:   "stats [file|-]",
		Short: "Summarize a graph and its core decomposition",
		Args:  cobra.ExactArgs(1),
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
			g := in.Graph
			o := degeneracy.Compute(g)
			report := statsReport{
				Stats:      g.Stats(),
				GraphHash:  in.Hash,
				Backend:    g.Backend().String(),
				Skipped:    len(in.List.Skipped),
				Triangles:  g.Triangles(),
				Degeneracy: o.Degeneracy(),
			}
			for _, shell := range o.Shells() {
				report.Shells = append(report.Shells, len(shell))
			}

			out := cmd.OutOrStdout()
			if flags.json {
				return writeJSON(out, report)
			}
			printKeyValue(out, "Vertices", humanize.Comma(int64(report.Vertices)))
			printKeyValue(out, "Edges", humanize.Comma(int64(report.Edges)))
			printKeyValue(out, "Max degree", humanize.Comma(int64(report.MaxDegree)))
			printKeyValue(out, "Isolated", humanize.Comma(int64(report.Isolated)))
			printKeyValue(out, "Triangles", humanize.Comma(report.Triangles))
			printKeyValue(out, "Degeneracy", strconv.Itoa(report.Degeneracy))
			printKeyValue(out, "Backend", report.Backend)
			printKeyValue(out, "Hash", report.GraphHash[:12])

			t := newTable("Core", "Vertices")
			for k, n := range report.Shells {
				if n > 0 {
					t.Row(strconv.Itoa(k), humanize.Comma(int64(n)))
				}
			}
			fmt.Fprintln(out, t.Render())

			if report.Duplicates > 0 || report.Rejected > 0 || report.Skipped > 0 {
				printWarning(out, "%d duplicate edges, %d rejected edges, %d skipped lines",
					report.Duplicates, report.Rejected, report.Skipped)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
