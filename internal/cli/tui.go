package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/engine/columns"
	"github.com/matzehuels/daygrid/pkg/engine/visibility"
)

var (
	laneStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorDim)
	collapsedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	expandedStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	badgeStyle      = lipgloss.NewStyle().Foreground(colorYellow)
	watchHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	clusterTimeCell = lipgloss.NewStyle().Foreground(colorGray).Width(13)
)

// watchCommand creates the interactive watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var flags dayFlags

	cmd := &cobra.Command{
		Use:   "watch [timetable.json]",
		Short: "Resize one day's lanes interactively",
		Long: `Resize one day's lanes interactively.

The terminal width is the layout width. Resizing the terminal, or pressing
←/→ to move the width by 10 cells, refits the lanes so collapse and expand
thresholds can be tried out live. Press r to follow the terminal again and
q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, arr, opts, err := c.dayArrangement(args[0], flags)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewWatchModel(date, arr, opts.Width), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(WatchModel); ok {
				printInfo("%s at width %d: %d of %d lanes visible, %d collapse changes",
					date, m.width, m.Result.State.VisibleColumns, maxColumns(arr), m.Toggles)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// WatchModel - Interactive width sampling
// =============================================================================

// WatchModel refits one arrangement on every width change. It is the
// arrangement's width provider: each refit samples its current width and
// carries the previous visibility state forward.
type WatchModel struct {
	Date   string
	Arr    *engine.Arrangement
	Result engine.Result

	// Toggles counts collapse state changes since start.
	Toggles int

	width     int
	termWidth int
	manual    bool
}

// NewWatchModel fits arr at width.
func NewWatchModel(date string, arr *engine.Arrangement, width int) WatchModel {
	m := WatchModel{Date: date, Arr: arr, width: max(width, 1)}
	m.Result = arr.Sample(m, visibility.State{})
	return m
}

// Width implements visibility.WidthProvider.
func (m WatchModel) Width() int { return m.width }

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.manual = true
			return m.resize(max(m.width-widthStep, 1)), nil
		case "right", "l":
			m.manual = true
			return m.resize(m.width + widthStep), nil
		case "r":
			m.manual = false
			if m.termWidth > 0 {
				return m.resize(m.termWidth), nil
			}
		}
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		if !m.manual && msg.Width > 0 {
			return m.resize(msg.Width), nil
		}
	}
	return m, nil
}

// resize samples the new width with the previous state.
func (m WatchModel) resize(width int) WatchModel {
	m.width = width
	prev := m.Result.State
	m.Result = m.Arr.Sample(m, prev)
	if m.Result.State.Collapsed != prev.Collapsed {
		m.Toggles++
	}
	return m
}

func (m WatchModel) View() string {
	var b strings.Builder

	state := expandedStyle.Render("expanded")
	if m.Result.State.Collapsed {
		state = collapsedStyle.Render("collapsed")
	}
	b.WriteString(StyleTitle.Render(m.Date))
	b.WriteString(fmt.Sprintf("  width %s  %s  %s",
		StyleNumber.Render(fmt.Sprint(m.width)), state,
		StyleDim.Render(fmt.Sprintf("%d lanes visible", m.Result.State.VisibleColumns))))
	b.WriteString("\n")
	follow := "following terminal"
	if m.manual {
		follow = "fixed width"
	}
	b.WriteString(watchHelpStyle.Render("←/→ width ±10  r follow terminal  q quit  · " + follow))
	b.WriteString("\n\n")

	if len(m.Result.Clusters) == 0 {
		b.WriteString(StyleDim.Render("No lessons on this day"))
		return b.String()
	}
	for _, fit := range m.Result.Clusters {
		b.WriteString(m.renderCluster(fit))
		b.WriteString("\n")
	}
	return b.String()
}

// renderCluster draws the visible lanes of a cluster side by side, sized
// the way the policy budgets them, and a "+N" badge for hidden items.
func (m WatchModel) renderCluster(fit engine.ClusterFit) string {
	label := clusterTimeCell.Render(fmt.Sprintf("%s-%s", fit.Start, fit.End))

	visible := max(fit.Visible, 1)
	gap := m.Arr.Policy().Gap
	avail := m.width - lipgloss.Width(label) - gap*(visible-1)
	cell := max(avail/visible-2, 1)

	lanes := make([][]string, visible)
	for _, j := range fit.Items {
		p := m.Arr.Placed[j]
		if p.Column >= visible || p.Lesson == nil {
			continue
		}
		lanes[p.Column] = append(lanes[p.Column], laneLabel(p))
	}

	parts := []string{label}
	for i, lane := range lanes {
		if i > 0 && gap > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
		}
		parts = append(parts, laneStyle.Width(cell).MaxWidth(cell+2).Render(strings.Join(lane, "\n")))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if fit.Hidden > 0 {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, " ", badgeStyle.Render(fmt.Sprintf("+%d", fit.Hidden)))
	}
	return row
}

func laneLabel(p columns.Placed) string {
	label := fmt.Sprintf("%s %s", p.Start, p.Lesson.Subject)
	return priorityStyles[p.Priority].Render(label)
}

// maxColumns is the widest cluster of arr.
func maxColumns(arr *engine.Arrangement) int {
	var n int
	for _, c := range arr.Clusters {
		n = max(n, c.Columns)
	}
	return n
}
