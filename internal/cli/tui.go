package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliquer/pkg/clique"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxShownVertices truncates long cliques in the list view.
const maxShownVertices = 12

// =============================================================================
// CliqueListModel - Interactive clique browser
// =============================================================================

// CliqueListModel is the bubbletea model for paging through cliques.
type CliqueListModel struct {
	Cliques  [][]int
	Cursor   int
	Offset   int
	Height   int
	Selected []int
}

// NewCliqueListModel creates a list over cliques, largest first.
func NewCliqueListModel(cliques [][]int) CliqueListModel {
	return CliqueListModel{Cliques: cliques, Height: 15}
}

func (m CliqueListModel) Init() tea.Cmd {
	return nil
}

func (m CliqueListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Cliques)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Cliques) > 0 {
				m.Selected = m.Cliques[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m CliqueListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Largest Maximal Cliques"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ print  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Cliques))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		c := m.Cliques[i]
		rows = append(rows, []string{cursor, strconv.Itoa(i + 1), strconv.Itoa(len(c)), formatVertices(c, maxShownVertices)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Size", "Vertices").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Cliques)), len(m.Cliques))))
	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		flags engineFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "browse [file|-]",
		Short: "Page through the largest maximal cliques",
		Long: `Enumerate the graph, keep the largest cliques and show them in an
interactive list. Press enter to print the selected clique.

When stdout is not a terminal the list is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, true)
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

			top := &topCliques{limit: limit}
			eo.Visit = top.add
			if _, err := clique.Enumerate(ctx, in.Graph, eo); err != nil {
				return err
			}
			cliques := top.result()

			out := cmd.OutOrStdout()
			if flags.json {
				return writeJSON(out, cliques)
			}
			if !isTerminal(out) {
				for _, cl := range cliques {
					fmt.Fprintln(out, formatVertices(cl, len(cl)))
				}
				return nil
			}

			final, err := tea.NewProgram(NewCliqueListModel(cliques), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if sel := final.(CliqueListModel).Selected; sel != nil {
				fmt.Fprintln(out, formatVertices(sel, len(sel)))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 500, "number of cliques to keep")
	return cmd
}

// topCliques keeps the limit largest cliques seen, ties broken by vertex
// order so the result does not depend on discovery order.
type topCliques struct {
	limit   int
	cliques [][]int
}

func (t *topCliques) add(c []int) {
	slices.Sort(c)
	t.cliques = append(t.cliques, c)
	if len(t.cliques) >= 2*t.limit+16 {
		t.trim()
	}
}

func (t *topCliques) trim() {
	slices.SortFunc(t.cliques, func(a, b []int) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return slices.Compare(a, b)
	})
	if len(t.cliques) > t.limit {
		t.cliques = t.cliques[:t.limit]
	}
}

func (t *topCliques) result() [][]int {
	t.trim()
	return t.cliques
}
