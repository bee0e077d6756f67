// Package visibility decides how many lanes of a cluster are shown at a
// given rendering width.
//
// Two signals combine. The fine signal is horizontal fit: how many columns
// of at least MinColumnWidth, separated by Gap, fit into the width. The
// coarse signal is a collapse switch with hysteresis: below CollapseBelow
// the layout collapses to a single lane and it re-expands only above
// ExpandAbove. Widths oscillating between the two thresholds, as during a
// drag-resize, therefore never toggle the layout.
//
// Widths are abstract units: pixels for a browser renderer, cells for a
// terminal. The caller threads [State] between width samples; the policy
// itself holds none.
package visibility

import (
	"github.com/matzehuels/daygrid/pkg/errors"
)

// Terminal-cell defaults used by the CLI.
const (
	DefaultMinColumnWidth = 16
	DefaultGap            = 1
	DefaultCollapseBelow  = 40
	DefaultExpandAbove    = 48
)

// Policy configures visibility decisions. MaxColumns <= 0 disables the
// column cap. CollapseBelow and ExpandAbove both zero disables collapsing.
type Policy struct {
	MinColumnWidth int `toml:"min_column_width"`
	Gap            int `toml:"gap"`
	MaxColumns     int `toml:"max_columns"`
	CollapseBelow  int `toml:"collapse_below"`
	ExpandAbove    int `toml:"expand_above"`
}

// DefaultPolicy returns the terminal defaults with no column cap.
func DefaultPolicy() Policy {
	return Policy{
		MinColumnWidth: DefaultMinColumnWidth,
		Gap:            DefaultGap,
		CollapseBelow:  DefaultCollapseBelow,
		ExpandAbove:    DefaultExpandAbove,
	}
}

// Validate checks the policy for values that make decisions meaningless.
func (p Policy) Validate() error {
	if p.MinColumnWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min column width must be positive, got %d", p.MinColumnWidth)
	}
	if p.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gap must not be negative, got %d", p.Gap)
	}
	if p.hysteresis() && p.CollapseBelow >= p.ExpandAbove {
		return errors.New(errors.ErrCodeInvalidConfig,
			"collapse threshold %d must be below expand threshold %d", p.CollapseBelow, p.ExpandAbove)
	}
	return nil
}

func (p Policy) hysteresis() bool { return p.CollapseBelow != 0 || p.ExpandAbove != 0 }

// State is the outcome of one decision. Only Collapsed is carried into the
// next decision. The zero State is expanded.
type State struct {
	Collapsed      bool `json:"collapsed"`
	VisibleColumns int  `json:"visibleColumns"`
}

// Hidden reports whether an item in the given column is hidden.
func (s State) Hidden(column int) bool { return column >= s.VisibleColumns }

// Collapse applies the hysteresis rule to a width sample.
func (p Policy) Collapse(width int, prev bool) bool {
	if !p.hysteresis() {
		return false
	}
	if prev {
		return width <= p.ExpandAbove
	}
	return width < p.CollapseBelow
}

// MaxFit returns how many columns fit into width, capped by MaxColumns.
// At least one column always fits.
func (p Policy) MaxFit(width int) int {
	fit := 1
	if unit := p.MinColumnWidth + p.Gap; unit > 0 {
		fit = max(1, (width+p.Gap)/unit)
	}
	if p.MaxColumns > 0 {
		fit = min(fit, p.MaxColumns)
	}
	return fit
}

// Visible returns how many of columnCount columns are shown.
func (p Policy) Visible(columnCount, width int, collapsed bool) int {
	if collapsed {
		return min(columnCount, 1)
	}
	return min(columnCount, p.MaxFit(width))
}

// Decide computes the state for a cluster of columnCount columns at width.
func (p Policy) Decide(columnCount, width int, prev State) State {
	collapsed := p.Collapse(width, prev.Collapsed)
	return State{Collapsed: collapsed, VisibleColumns: p.Visible(columnCount, width, collapsed)}
}

// =============================================================================
// Width Providers
// =============================================================================

// WidthProvider reports the current rendering width.
type WidthProvider interface {
	Width() int
}

// WidthFunc adapts a function to [WidthProvider].
type WidthFunc func() int

// Width implements WidthProvider.
func (f WidthFunc) Width() int { return f() }

// Fixed is a constant width.
type Fixed int

// Width implements WidthProvider.
func (f Fixed) Width() int { return int(f) }

// Sample reads the width from w and decides.
func (p Policy) Sample(w WidthProvider, columnCount int, prev State) State {
	return p.Decide(columnCount, w.Width(), prev)
}
