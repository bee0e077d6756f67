// Package engine lays out one day of lesson records into side-by-side lanes.
//
// # Overview
//
// The engine chains four pure stages:
//
//	lessons ──► merge ──► [segment] ──► columns ──► visibility
//	                                        │
//	                                        └──► overlay
//
//  1. [merge.Merge] collapses records of one real-world lesson into blocks
//  2. [segment.Slice] cuts blocks into atomic segments (compact mode only)
//  3. [columns.Assign] clusters overlapping items and assigns lanes
//  4. [visibility.Policy] decides how many lanes fit the current width
//
// [overlay.Derive] runs next to stage 4 and yields one rectangle per exam.
//
// # Width-Independent Work
//
// Stages 1 to 3 depend only on the records, so [Prepare] runs them once and
// returns an [Arrangement]. Each width sample then calls [Arrangement.Fit],
// which is cheap: hidden lanes are flagged, never dropped, so widening the
// view reveals them again without recomputing merge or cluster state.
//
//	arr := engine.Prepare(lessons, engine.DefaultOptions())
//	state := visibility.State{}
//	for width := range widths {
//	    res := arr.Fit(width, state)
//	    state = res.State
//	    paint(res)
//	}
//
// [visibility.State] is the only value carried between samples. The engine
// holds no mutable state and every call is safe for concurrent use.
//
// # Modes
//
// [ModeWide] places whole blocks. [ModeCompact] places atomic segments so
// that partially overlapping blocks each keep a visible sliver when lanes
// are narrow. Compact mode clamps blocks to [Options.DayStart] and
// [Options.DayEnd]; when both are zero the bounds come from the blocks.
package engine
