// Package segment decomposes a day's blocks into atomic time segments for
// width-constrained rendering.
//
// When lanes are too narrow to show every overlapping block side by side,
// renderers switch to a compact mode in which each block is drawn as a stack
// of slivers. [Slice] cuts every block at every other block's start and end,
// so each resulting [Segment] either fully overlaps or fully misses any
// other segment:
//
//	block A  |--------------|
//	block B        |--------------|
//	cuts     ^     ^        ^     ^
//	A        [ a1 ][   a2   ]
//	B              [   b1   ][ b2 ]
//
// The segments of one block, sorted by start, reconstruct its clamped span
// exactly with no gap or overlap.
package segment

import (
	"slices"

	"github.com/matzehuels/daygrid/pkg/timetable"
)

// Segment is a sub-interval [Start, End) of exactly one source block.
// Source is the index of that block in the slice passed to [Slice].
type Segment struct {
	Source int
	Start  timetable.Clock
	End    timetable.Clock
}

// Duration returns the segment length in minutes.
func (s Segment) Duration() int { return int(s.End - s.Start) }

// Bounds returns the earliest start and latest end over all valid blocks.
// Both are zero when no block is valid.
func Bounds(blocks []timetable.Lesson) (start, end timetable.Clock) {
	first := true
	for _, b := range blocks {
		if !b.Valid() {
			continue
		}
		if first {
			start, end, first = b.Start, b.End, false
			continue
		}
		start = min(start, b.Start)
		end = max(end, b.End)
	}
	return start, end
}

// CutPoints returns the sorted, distinct cut points of a day: its bounds
// plus every block start and end clamped to those bounds.
func CutPoints(blocks []timetable.Lesson, dayStart, dayEnd timetable.Clock) []timetable.Clock {
	dayStart, dayEnd = ordered(dayStart, dayEnd)
	points := make([]timetable.Clock, 0, 2*len(blocks)+2)
	points = append(points, dayStart, dayEnd)
	for _, b := range blocks {
		points = append(points, b.Start.Clamp(dayStart, dayEnd), b.End.Clamp(dayStart, dayEnd))
	}
	slices.Sort(points)
	return slices.Compact(points)
}

// Slice emits, for each block in input order, one segment per consecutive
// cut-point pair inside the block's span clamped to [dayStart, dayEnd].
// Blocks with no duration after clamping produce no segments.
func Slice(blocks []timetable.Lesson, dayStart, dayEnd timetable.Clock) []Segment {
	dayStart, dayEnd = ordered(dayStart, dayEnd)
	points := CutPoints(blocks, dayStart, dayEnd)

	var segs []Segment
	for i, b := range blocks {
		start := b.Start.Clamp(dayStart, dayEnd)
		end := b.End.Clamp(dayStart, dayEnd)
		if start >= end {
			continue
		}

		j, _ := slices.BinarySearch(points, start)
		for ; j+1 < len(points) && points[j+1] <= end; j++ {
			segs = append(segs, Segment{Source: i, Start: points[j], End: points[j+1]})
		}
	}
	return segs
}

// Of returns the segments of one source block sorted by start.
func Of(segs []Segment, source int) []Segment {
	var out []Segment
	for _, s := range segs {
		if s.Source == source {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b Segment) int { return int(a.Start - b.Start) })
	return out
}

// Reconstruct joins the segments of one source block. It reports false when
// the block has no segments or when they leave a gap or overlap.
func Reconstruct(segs []Segment, source int) (start, end timetable.Clock, ok bool) {
	own := Of(segs, source)
	if len(own) == 0 {
		return 0, 0, false
	}
	start, end = own[0].Start, own[0].End
	for _, s := range own[1:] {
		if s.Start != end {
			return 0, 0, false
		}
		end = s.End
	}
	return start, end, true
}

func ordered(a, b timetable.Clock) (timetable.Clock, timetable.Clock) {
	if b < a {
		return b, a
	}
	return a, b
}
