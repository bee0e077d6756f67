package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/daygrid/pkg/view"
)

// layoutCommand creates the layout command for laying out a timetable file.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [timetable.json]",
		Short: "Lay out every day of a timetable file",
		Long: `Lay out every day of a timetable file.

The layout command reads lesson records (JSON or YAML), merges them into
blocks, assigns overlapping blocks to lanes and decides how many lanes fit
the given width. The result is a layout.json document for renderers.

Use "-o -" to write the document to stdout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the timetable, lays out the wanted days and writes the
// document.
func (c *CLI) runLayout(cmd *cobra.Command, input string, flags layoutFlags, output string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	lessons, err := readTimetable(input)
	if err != nil {
		return err
	}
	opts, err := c.pipelineOptions(flags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	toStdout := output == "-"
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %s...", filepath.Base(input)))
	spinner.Start()

	doc, stats, err := runner.LayoutRange(ctx, lessons, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		data, err := view.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := view.WriteFile(doc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	fmt.Println(statsLine(stats))
	printNewline()
	printNextStep("Inspect", appName+" show "+input)

	return nil
}
