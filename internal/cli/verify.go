package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/cliquer/pkg/clique"
	"github.com/matzehuels/cliquer/pkg/edgelist"
	"github.com/matzehuels/cliquer/pkg/errors"
	"github.com/matzehuels/cliquer/pkg/graph"
)

// verifyBackends are the concrete backends compared by verify.
var verifyBackends = []graph.Backend{graph.BackendBitset, graph.BackendHash, graph.BackendOrdered}

// verifyRun is one independent enumeration.
type verifyRun struct {
	Name    string          `json:"name"`
	Report  clique.Snapshot `json:"report"`
	Elapsed time.Duration   `json:"elapsed_ns"`
}

// verifyReport is the JSON form of `cliquer verify`.
type verifyReport struct {
	Runs  []verifyRun `json:"runs"`
	Agree bool        `json:"agree"`
}

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	var (
		flags  engineFlags
		oracle bool
	)

	cmd := &cobra.Command{
		Use:   "verify [file|-]",
		Short: "Check that every backend produces the same report",
		Long: `Enumerate the graph once per neighbor-set backend, concurrently, and fail
if the histograms differ. With --oracle, gonum's Bron–Kerbosch is run as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.options(&flags)
			in, err := c.load(cmd, runner, args[0], opts)
			if err != nil {
				return err
			}
			eo, err := engineOptions(opts.Pivot, opts.Seeding)
			if err != nil {
				return err
			}

			report, err := runVerify(cmd.Context(), in.List, eo, oracle)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.json {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				t := newTable("Run", "Cliques", "Max size", "Elapsed")
				for _, r := range report.Runs {
					maxSize := 0
					if n := len(r.Report.Sizes); n > 0 {
						maxSize = r.Report.Sizes[n-1].Size
					}
					t.Row(r.Name, humanize.Comma(r.Report.Total), humanize.Comma(int64(maxSize)), formatElapsed(r.Elapsed))
				}
				fmt.Fprintln(out, t.Render())
			}
			if !report.Agree {
				if !flags.json {
					for _, r := range report.Runs[1:] {
						if !r.Report.Equal(report.Runs[0].Report) {
							printError(out, "%s differs from %s", r.Name, report.Runs[0].Name)
						}
					}
				}
				return errors.New(errors.ErrCodeInternal, "reports differ between runs")
			}
			if !flags.json {
				printSuccess(out, "all %d runs agree", len(report.Runs))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&oracle, "oracle", false, "also compare against gonum's Bron–Kerbosch")
	return cmd
}

// engineOptions parses pivot and seeding names, treating empty as default.
func engineOptions(pivot, seeding string) (clique.Options, error) {
	p, err := clique.ParsePivot(pivot)
	if err != nil {
		return clique.Options{}, errors.Wrap(errors.ErrCodeInvalidPivot, err, "parse pivot")
	}
	s, err := clique.ParseSeeding(seeding)
	if err != nil {
		return clique.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse seeding")
	}
	return clique.Options{Pivot: p, Seeding: s}, nil
}

// runVerify enumerates list once per backend in parallel. Each run has its
// own graph and histogram.
func runVerify(ctx context.Context, list *edgelist.List, opts clique.Options, oracle bool) (*verifyReport, error) {
	n := len(verifyBackends)
	if oracle {
		n++
	}
	runs := make([]verifyRun, n)

	g, ctx := errgroup.WithContext(ctx)
	for i, b := range verifyBackends {
		g.Go(func() error {
			start := time.Now()
			gr, err := graph.Build(list.VertexCount, list.Edges, graph.WithBackend(b))
			if err != nil {
				return err
			}
			hist, err := clique.Enumerate(ctx, gr, opts)
			if err != nil {
				return err
			}
			runs[i] = verifyRun{Name: b.String(), Report: hist.Snapshot(), Elapsed: time.Since(start)}
			return nil
		})
	}
	if oracle {
		g.Go(func() error {
			start := time.Now()
			runs[n-1] = verifyRun{Name: "gonum", Report: gonumReport(list), Elapsed: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &verifyReport{Runs: runs, Agree: true}
	for _, r := range runs[1:] {
		if !r.Report.Equal(runs[0].Report) {
			report.Agree = false
		}
	}
	return report, nil
}

// gonumReport counts maximal cliques with gonum. Self-loops and out-of-range
// edges are dropped the same way graph.Build drops them.
func gonumReport(list *edgelist.List) clique.Snapshot {
	ug := simple.NewUndirectedGraph()
	for v := 0; v < list.VertexCount; v++ {
		ug.AddNode(simple.Node(v))
	}
	for _, e := range list.Edges {
		if e.U == e.V || e.U < 0 || e.V < 0 || e.U >= list.VertexCount || e.V >= list.VertexCount {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	var h clique.Histogram
	for _, c := range topo.BronKerbosch(ug) {
		h.Record(len(c))
	}
	return h.Snapshot()
}
