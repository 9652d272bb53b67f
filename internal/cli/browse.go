package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/catalog"
	"github.com/matzehuels/relgraph/pkg/graph"
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1).
	MarginLeft(1)

func (c *CLI) browseCommand() *cobra.Command {
	var o runOptions

	cmd := &cobra.Command{
		Use:   "browse <catalog>",
		Short: "Browse the schedule interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.execute(cmd.Context(), c.pipelineOptions(args[0], o), o.noCache)
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewScheduleModel(res.Order, res.Expanded),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	o.register(cmd)
	return cmd
}

// ScheduleModel is the bubbletea model for browsing a schedule. The list on
// the left is the order; the panel on the right shows the neighbours and
// subscriptions of the resource under the cursor.
type ScheduleModel struct {
	Order  []catalog.Ref
	Graph  *graph.Graph[catalog.Ref]
	Cursor int
	Height int
	Offset int
}

// NewScheduleModel creates a schedule browser.
func NewScheduleModel(order []catalog.Ref, g *graph.Graph[catalog.Ref]) ScheduleModel {
	return ScheduleModel{Order: order, Graph: g, Height: 15}
}

func (m ScheduleModel) Init() tea.Cmd {
	return nil
}

func (m ScheduleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(m.Cursor - 1)
		case "down", "j":
			m.move(m.Cursor + 1)
		case "pgup":
			m.move(m.Cursor - m.Height)
		case "pgdown":
			m.move(m.Cursor + m.Height)
		case "home", "g":
			m.move(0)
		case "end", "G":
			m.move(len(m.Order) - 1)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.move(m.Cursor)
	}
	return m, nil
}

// move places the cursor at i, clamped to the list, and scrolls so the
// cursor stays visible.
func (m *ScheduleModel) move(i int) {
	m.Cursor = max(0, min(i, len(m.Order)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ScheduleModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Schedule"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Order) == 0 {
		b.WriteString(StyleDim.Render("  (empty catalog)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Order))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(i + 1), m.Order[i].String()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Resource").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case idx < len(m.Order) && m.Order[idx].Type == catalog.WhitType:
				return stylePlaceholder
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, t.Render(), m.details()))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Order))))
	return b.String()
}

// details renders the panel for the resource under the cursor.
func (m ScheduleModel) details() string {
	ref := m.Order[m.Cursor]
	var b strings.Builder
	b.WriteString(StyleTitle.Render(ref.String()))
	b.WriteString("\n\n")

	section := func(title string, refs []string) {
		b.WriteString(StyleValue.Render(title))
		b.WriteString("\n")
		if len(refs) == 0 {
			b.WriteString(StyleDim.Render("  none"))
			b.WriteString("\n")
		}
		for _, r := range refs {
			b.WriteString("  " + r + "\n")
		}
	}

	var after, before, subs []string
	for _, v := range m.Graph.Adjacent(ref, graph.In) {
		after = append(after, v.String())
	}
	for _, v := range m.Graph.Adjacent(ref, graph.Out) {
		before = append(before, v.String())
	}
	for _, e := range m.Graph.AdjacentEdges(ref, graph.In) {
		if e.Label.Event != "" {
			subs = append(subs, fmt.Sprintf("%s %s %s", e.Source, iconArrow, e.Label))
		}
	}
	section("After", after)
	section("Before", before)
	section("Subscriptions", subs)
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d transitive dependencies", len(m.Graph.Dependencies(ref)))))

	return panelStyle.Render(b.String())
}
