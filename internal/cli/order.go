package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/catalog"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/pipeline"
)

func (c *CLI) orderCommand() *cobra.Command {
	var (
		o     runOptions
		plain bool
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "order <catalog>",
		Short: "Print the order in which resources are applied",
		Long: `Load a catalog, splice its containers into their members and print a
schedule in which every resource follows everything it depends on.

A dependency cycle fails the command and lists the relationships involved.
With --watch the catalog is rescheduled on every save until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			once := func() error {
				prog := newProgress(c.Logger)
				res, err := c.execute(cmd.Context(), c.pipelineOptions(args[0], o), o.noCache)
				if err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Scheduled %d resources", len(res.Order)))
				printOrder(out, res, plain)
				return nil
			}

			if !watch {
				return once()
			}
			report := func(err error) { ReportError(cmd.ErrOrStderr(), err) }
			if err := once(); err != nil {
				report(err)
			}
			return c.watch(cmd.Context(), args[0], once, report)
		},
	}

	o.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print one resource per line without styling")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reschedule whenever the catalog file changes")
	return cmd
}

func printOrder(out io.Writer, res *pipeline.Result, plain bool) {
	if plain {
		for _, ref := range res.Order {
			fmt.Fprintln(out, ref)
		}
		return
	}
	fmt.Fprintln(out, orderTable(res.Order, res.Expanded))
	printStats(out, res.Stats.Vertices, res.Stats.Edges, res.CacheInfo.ScheduleHit)
	for _, f := range res.GraphFiles {
		printFile(out, f)
	}
}

// orderTable renders the schedule with each resource's direct dependency
// count and the number of its subscriptions.
func orderTable(order []catalog.Ref, g *graph.Graph[catalog.Ref]) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(order))
	for i, ref := range order {
		subs := 0
		for _, e := range g.AdjacentEdges(ref, graph.In) {
			if e.Label.Event != "" {
				subs++
			}
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			ref.String(),
			strconv.Itoa(len(g.Adjacent(ref, graph.In))),
			strconv.Itoa(subs),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Resource", "After", "Subscriptions").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= 0 && row < len(order) && pipeline.IsPlaceholder(order[row].String()) {
				return base.Inherit(stylePlaceholder)
			}
			if col == 0 {
				return base.Foreground(colorDim)
			}
			return base
		}).
		Render()
}
