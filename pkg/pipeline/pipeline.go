// Package pipeline lays out timetable files day by day with caching.
//
// The engine packages work on one day and hold no state. This package adds
// what the CLI and other callers need around them: grouping records by date,
// laying out days concurrently, caching results by content hash, structured
// logging and observability hooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	opts := pipeline.Options{Engine: cfg.EngineOptions(), Width: 120}
//	doc, stats, err := runner.LayoutRange(ctx, lessons, opts)
//	if err != nil {
//	    return err
//	}
//	view.WriteFile(doc, "layout.json")
//
// Single days are available through [Runner.LayoutDay], and the raw
// width-independent [engine.Arrangement] through [Runner.Arrange] for
// callers that re-fit on every width sample.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/daygrid/pkg/cache"
	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the layout width in terminal cells.
	DefaultWidth = 80

	// DefaultConcurrency bounds how many days are laid out at once.
	DefaultConcurrency = 4
)

// Graph output formats. PNG and PDF need rsvg-convert.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidGraphFormats is the set of supported overlap graph formats.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. A zero Engine means
// [engine.DefaultOptions].
type Options struct {
	Engine engine.Options `json:"engine"`
	Width  int            `json:"width"`

	// Dates restricts a range run to these dates. Empty means all.
	Dates []string `json:"dates,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh     bool `json:"refresh,omitempty"`
	Concurrency int  `json:"concurrency,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Stats summarises a range run.
type Stats struct {
	Days      int
	Blocks    int
	Hidden    int
	CacheHits int
	Duration  time.Duration
}

// ValidateAndSetDefaults checks the options and fills defaults. Calling it
// again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Engine == (engine.Options{}) {
		o.Engine = engine.DefaultOptions()
	}
	o.Engine.SetDefaults()
	if err := o.Engine.Validate(); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %d", o.Width)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	for _, d := range o.Dates {
		if err := errors.ValidateDate(d); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateGraphFormat checks an overlap graph format.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// Wants reports whether date passes the Dates filter.
func (o *Options) Wants(date string) bool {
	return len(o.Dates) == 0 || slices.Contains(o.Dates, date)
}

// LayoutKeyOpts returns the cache key options of a layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	p := o.Engine.Visibility
	return cache.LayoutKeyOpts{
		MaxBreak:       o.Engine.Merge.MaxBreak,
		Mode:           string(o.Engine.Mode),
		DayStart:       int(o.Engine.DayStart),
		DayEnd:         int(o.Engine.DayEnd),
		Width:          o.Width,
		MinColumnWidth: p.MinColumnWidth,
		Gap:            p.Gap,
		MaxColumns:     p.MaxColumns,
		CollapseBelow:  p.CollapseBelow,
		ExpandAbove:    p.ExpandAbove,
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d days, %d blocks, %d hidden, %d cached", s.Days, s.Blocks, s.Hidden, s.CacheHits)
}
