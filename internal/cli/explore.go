package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/RomainClaret/pubgraph/pkg/filter"
	"github.com/RomainClaret/pubgraph/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command for interactive graph browsing.
func (c *CLI) exploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [graph.json]",
		Short: "Browse a publication graph interactively",
		Long: `Browse a publication graph interactively.

Opens a terminal table of all publications in the graph with their year,
topic, citations, and category. Category toggles re-filter the view in
place without touching the underlying graph file.

Keys:
  up/k, down/j   navigate
  left/h, right/l  scrub the minimum year
  t              toggle theses
  p              toggle papers
  o              toggle posters
  q, esc         quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(args[0])
		},
	}
	return cmd
}

func (c *CLI) runExplore(input string) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	model, err := NewNodeListModel(g)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run explorer: %w", err)
	}
	return nil
}

// =============================================================================
// NodeListModel - Interactive publication browsing
// =============================================================================

// NodeListModel is the bubbletea model for browsing graph nodes.
type NodeListModel struct {
	Source *graph.Graph
	Spec   filter.Spec
	Nodes  []*graph.Node
	Cursor int
	Height int
	Offset int

	// Year scrubbing bounds, derived from the data at construction.
	YearLow  int
	YearHigh int
}

// NewNodeListModel creates a node list model showing every node in g.
func NewNodeListModel(g *graph.Graph) (NodeListModel, error) {
	low, high := yearBounds(g)
	m := NodeListModel{
		Source:   g,
		Spec:     filter.Everything(),
		Height:   15,
		YearLow:  low,
		YearHigh: high,
	}
	m.Spec.YearMin = low
	if err := m.refilter(); err != nil {
		return NodeListModel{}, err
	}
	return m, nil
}

// yearBounds scans the graph for the earliest and latest parsable years.
// Graphs with no parsable years get a degenerate [0, 0] range, which
// disables scrubbing without hiding anything.
func yearBounds(g *graph.Graph) (low, high int) {
	for _, n := range g.Nodes() {
		var y int
		if _, err := fmt.Sscanf(n.Year, "%d", &y); err != nil {
			continue
		}
		if low == 0 || y < low {
			low = y
		}
		if y > high {
			high = y
		}
	}
	return low, high
}

// refilter reapplies the current category toggles and resets the viewport.
func (m *NodeListModel) refilter() error {
	out, err := filter.Apply(m.Source, m.Spec)
	if err != nil {
		return err
	}
	m.Nodes = out.Nodes()
	m.Cursor = 0
	m.Offset = 0
	return nil
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "left", "h":
			if m.Spec.YearMin > m.YearLow {
				m.Spec.YearMin--
				_ = m.refilter()
			}
		case "right", "l":
			if m.Spec.YearMin < m.YearHigh {
				m.Spec.YearMin++
				_ = m.refilter()
			}
		case "t":
			m.Spec.ShowTheses = !m.Spec.ShowTheses
			_ = m.refilter()
		case "p":
			m.Spec.ShowPapers = !m.Spec.ShowPapers
			_ = m.refilter()
		case "o":
			m.Spec.ShowPosters = !m.Spec.ShowPosters
			_ = m.refilter()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Publications"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ min year  t/p/o toggle theses/papers/posters  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Nodes) {
		end = len(m.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			truncate(n.Title, 48),
			n.Year,
			n.Topic,
			fmt.Sprintf("%d", n.Citations),
			string(filter.Categorize(n.Title)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Title", "Year", "Topic", "Cites", "Category").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 || col == 4 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	status := fmt.Sprintf("  [%d/%d]  %s", min(m.Cursor+1, len(m.Nodes)), len(m.Nodes), toggleSummary(m.Spec))
	if m.YearLow > 0 {
		status += fmt.Sprintf("  year≥%d", m.Spec.YearMin)
	}
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}

func toggleSummary(s filter.Spec) string {
	mark := func(on bool) string {
		if on {
			return "on"
		}
		return "off"
	}
	return fmt.Sprintf("theses:%s papers:%s posters:%s", mark(s.ShowTheses), mark(s.ShowPapers), mark(s.ShowPosters))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
