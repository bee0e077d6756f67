package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/daygrid/pkg/timetable"
	"github.com/matzehuels/daygrid/pkg/view"
)

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// showCommand creates the show command that prints lane tables.
func (c *CLI) showCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "show [timetable.json]",
		Short: "Print the lanes of each day as a table",
		Long: `Print the lanes of each day as a table.

Every placed block is listed with its time, lane and resources. Blocks in
lanes beyond the visible count at --width are marked hidden, and clusters
with hidden lanes get a "+N" note, the same way a renderer would badge
them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessons, err := readTimetable(args[0])
			if err != nil {
				return err
			}
			opts, err := c.pipelineOptions(flags)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			doc, _, err := runner.LayoutRange(cmd.Context(), lessons, opts)
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}
			if len(doc.Days) == 0 {
				printInfo("No lessons to show")
				return nil
			}
			out := cmd.OutOrStdout()
			for i, day := range doc.Days {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, renderDay(day, doc.Mode, doc.Width))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// renderDay draws a day's heading, its lane table, clusters with hidden
// lanes and its exams.
func renderDay(day view.Day, mode string, width int) string {
	var b strings.Builder

	state := "expanded"
	if day.State.Collapsed {
		state = "collapsed"
	}
	b.WriteString(StyleTitle.Render(day.Date))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · width %d · %s · %s",
		mode, width, state, plural(len(day.Clusters), "cluster"))))
	b.WriteString("\n")

	rows := make([][]string, 0, len(day.Items))
	for _, it := range day.Items {
		lesson, _ := day.Block(it)
		lane := fmt.Sprintf("%d/%d", it.Column+1, it.Columns)
		if it.Hidden {
			lane += " hidden"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s-%s", it.Start, it.End),
			lane,
			lesson.Subject,
			resourceList(lesson.Teachers),
			resourceList(lesson.Rooms),
			it.Priority,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Time", "Lane", "Subject", "Teachers", "Rooms", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader.Padding(0, 1)
			}
			if row < 0 || row >= len(day.Items) {
				return lipgloss.NewStyle().Padding(0, 1)
			}
			it := day.Items[row]
			if it.Hidden {
				return StyleDim.Padding(0, 1)
			}
			if col == 2 || col == 5 {
				return priorityStyle(it.Priority).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	b.WriteString(t.Render())

	for _, cl := range day.Clusters {
		if cl.Hidden == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  %s-%s  %d of %d lanes shown, +%d hidden",
			cl.Start, cl.End, cl.Visible, cl.Columns, cl.Hidden)))
	}
	for _, ex := range day.Exams {
		b.WriteString("\n")
		label := ex.Name
		if label == "" {
			label = "exam"
		}
		line := fmt.Sprintf("  %s %s-%s  %s (%s), lane %d", iconWarning, ex.Start, ex.End, label, ex.Subject, ex.Column+1)
		if ex.Hidden {
			line += " hidden"
		}
		b.WriteString(priorityStyle("exam").Render(line))
	}
	return b.String()
}

// resourceList joins resource names, showing substitutions as
// "planned→actual".
func resourceList(rs []timetable.Resource) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		if r.Substituted() {
			parts[i] = r.OriginalName + iconArrow + r.Name
		} else {
			parts[i] = r.Name
		}
	}
	return strings.Join(parts, ", ")
}
