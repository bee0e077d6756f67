package engine

import (
	"strings"

	"github.com/matzehuels/daygrid/pkg/engine/columns"
	"github.com/matzehuels/daygrid/pkg/engine/merge"
	"github.com/matzehuels/daygrid/pkg/engine/overlay"
	"github.com/matzehuels/daygrid/pkg/engine/segment"
	"github.com/matzehuels/daygrid/pkg/engine/visibility"
	"github.com/matzehuels/daygrid/pkg/errors"
	"github.com/matzehuels/daygrid/pkg/timetable"
)

// =============================================================================
// Modes
// =============================================================================

// Mode selects whether whole blocks or atomic segments are placed.
type Mode string

const (
	ModeWide    Mode = "wide"
	ModeCompact Mode = "compact"
)

// ParseMode parses a mode name. An empty name is wide.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeWide:
		return ModeWide, nil
	case ModeCompact:
		return ModeCompact, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: wide, compact)", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures a layout.
type Options struct {
	Merge      merge.Options
	Mode       Mode
	DayStart   timetable.Clock
	DayEnd     timetable.Clock
	Visibility visibility.Policy
}

// DefaultOptions returns wide mode with the default merge break and the
// terminal visibility policy.
func DefaultOptions() Options {
	return Options{
		Merge:      merge.DefaultOptions(),
		Mode:       ModeWide,
		Visibility: visibility.DefaultPolicy(),
	}
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = ModeWide
	}
	if o.Visibility == (visibility.Policy{}) {
		o.Visibility = visibility.DefaultPolicy()
	}
}

// Validate reports options that [Prepare] would otherwise silently coerce.
func (o Options) Validate() error {
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if o.Merge.MaxBreak < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max break must not be negative, got %d", o.Merge.MaxBreak)
	}
	if o.DayEnd < o.DayStart {
		return errors.New(errors.ErrCodeInvalidConfig, "day end %v is before day start %v", o.DayEnd, o.DayStart)
	}
	if o.DayEnd > timetable.MinutesPerDay {
		return errors.New(errors.ErrCodeInvalidConfig, "day end %v is past midnight", o.DayEnd)
	}
	return o.Visibility.Validate()
}

// =============================================================================
// Arrangement
// =============================================================================

// Arrangement is the width-independent layout of one day.
type Arrangement struct {
	Mode     Mode
	DayStart timetable.Clock
	DayEnd   timetable.Clock

	// Blocks are the merged lessons. Placed items point into this slice.
	Blocks   []timetable.Lesson
	Placed   []columns.Placed
	Clusters []columns.Cluster
	Overlays []overlay.ExamOverlay

	policy visibility.Policy
}

// Prepare merges, optionally slices, and assigns lanes. The input is not
// modified. Unknown modes fall back to wide.
func Prepare(lessons []timetable.Lesson, opts Options) *Arrangement {
	opts.SetDefaults()

	blocks := merge.MergeWithOptions(lessons, opts.Merge)
	arr := &Arrangement{
		Mode:     ModeWide,
		DayStart: opts.DayStart,
		DayEnd:   opts.DayEnd,
		Blocks:   blocks,
		policy:   opts.Visibility,
	}
	if arr.DayStart == 0 && arr.DayEnd == 0 {
		arr.DayStart, arr.DayEnd = segment.Bounds(blocks)
	}

	var items []columns.Item
	if opts.Mode == ModeCompact {
		arr.Mode = ModeCompact
		items = columns.FromSegments(blocks, segment.Slice(blocks, arr.DayStart, arr.DayEnd))
	} else {
		items = columns.FromBlocks(blocks)
	}

	arr.Placed = columns.Assign(items)
	arr.Clusters = columns.Clusters(arr.Placed)
	arr.Overlays = overlay.Derive(arr.Placed)
	return arr
}

// Policy returns the visibility policy used by Fit.
func (a *Arrangement) Policy() visibility.Policy { return a.policy }

// =============================================================================
// Fitting
// =============================================================================

// ClusterFit is the visibility outcome of one cluster.
type ClusterFit struct {
	columns.Cluster
	Visible int
	Hidden  int // items with a column >= Visible
}

// Result is an arrangement fitted to one width.
type Result struct {
	// State carries the collapse decision into the next Fit. VisibleColumns
	// is the widest visible cluster.
	State    visibility.State
	Width    int
	Clusters []ClusterFit

	// Hidden and OverlayHidden are parallel to the arrangement's Placed and
	// Overlays.
	Hidden        []bool
	OverlayHidden []bool
}

// Fit applies the visibility policy at width. prev is the state returned
// by the previous Fit; use the zero State for the first sample.
func (a *Arrangement) Fit(width int, prev visibility.State) Result {
	collapsed := a.policy.Collapse(width, prev.Collapsed)

	res := Result{
		State:         visibility.State{Collapsed: collapsed},
		Width:         width,
		Clusters:      make([]ClusterFit, len(a.Clusters)),
		Hidden:        make([]bool, len(a.Placed)),
		OverlayHidden: make([]bool, len(a.Overlays)),
	}

	visible := make(map[int]int, len(a.Clusters))
	for i, c := range a.Clusters {
		fit := ClusterFit{Cluster: c, Visible: a.policy.Visible(c.Columns, width, collapsed)}
		for _, j := range c.Items {
			if a.Placed[j].Column >= fit.Visible {
				res.Hidden[j] = true
				fit.Hidden++
			}
		}
		res.Clusters[i] = fit
		visible[c.ID] = fit.Visible
		res.State.VisibleColumns = max(res.State.VisibleColumns, fit.Visible)
	}

	for i, o := range a.Overlays {
		res.OverlayHidden[i] = o.Column >= visible[o.Cluster]
	}
	return res
}

// Sample reads the width from w and fits.
func (a *Arrangement) Sample(w visibility.WidthProvider, prev visibility.State) Result {
	return a.Fit(w.Width(), prev)
}

// Layout prepares and fits in one call.
func Layout(lessons []timetable.Lesson, opts Options, width int, prev visibility.State) (*Arrangement, Result) {
	arr := Prepare(lessons, opts)
	return arr, arr.Fit(width, prev)
}
