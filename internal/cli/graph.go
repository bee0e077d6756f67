package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/pipeline"
)

// dayFlags are the flags of commands that work on a single day.
type dayFlags struct {
	date    string
	mode    string
	width   int
	noCache bool
}

func (f *dayFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "day to use (YYYY-MM-DD; optional when the file has one date)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "layout mode: wide, compact (default from config)")
	cmd.Flags().IntVar(&f.width, "width", 0, "layout width in cells (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

func (f dayFlags) layout() layoutFlags {
	return layoutFlags{mode: f.mode, width: f.width, noCache: f.noCache}
}

// graphCommand creates the graph command that renders a day's overlaps.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags  dayFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "graph [timetable.json]",
		Short: "Render the overlap graph of one day",
		Long: `Render the overlap graph of one day.

Each block is a node, each pair of blocks sharing time is an edge, and
clusters are drawn as boxes labelled with their lane count. The format
follows the output extension (.dot, .svg, .png or .pdf) unless --format
is given. PNG and PDF need rsvg-convert from librsvg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessons, err := readTimetable(args[0])
			if err != nil {
				return err
			}
			date, day, err := singleDate(lessons, flags.date)
			if err != nil {
				return err
			}
			if format == "" {
				format = graphFormatFor(output)
			}
			if err := pipeline.ValidateGraphFormat(format); err != nil {
				return err
			}
			opts, err := c.pipelineOptions(flags.layout())
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			data, cached, err := runner.Graph(cmd.Context(), date, day, opts, format)
			if err != nil {
				return fmt.Errorf("render graph: %w", err)
			}
			c.Logger.Debug("rendered graph", "date", date, "format", format, "bytes", len(data), "cached", cached)

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				output = fmt.Sprintf("%s.%s.%s", base, date, format)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			prog.done("Rendered overlap graph of " + date)
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.<date>.svg)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg, dot, png, pdf")

	return cmd
}

// graphFormatFor picks the graph format from an output path, falling back
// to SVG for unknown extensions.
func graphFormatFor(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if pipeline.ValidGraphFormats[ext] {
		return ext
	}
	return pipeline.FormatSVG
}

// dayArrangement prepares one day of a timetable file for the watch view.
func (c *CLI) dayArrangement(input string, flags dayFlags) (string, *engine.Arrangement, pipeline.Options, error) {
	lessons, err := readTimetable(input)
	if err != nil {
		return "", nil, pipeline.Options{}, err
	}
	date, day, err := singleDate(lessons, flags.date)
	if err != nil {
		return "", nil, pipeline.Options{}, err
	}
	opts, err := c.pipelineOptions(flags.layout())
	if err != nil {
		return "", nil, pipeline.Options{}, err
	}
	arr, err := pipeline.NewRunner(nil, nil, c.Logger).Arrange(day, opts)
	if err != nil {
		return "", nil, pipeline.Options{}, err
	}
	return date, arr, opts, nil
}
