package columns

import (
	"cmp"
	"slices"

	"github.com/matzehuels/daygrid/pkg/engine/segment"
	"github.com/matzehuels/daygrid/pkg/timetable"
)

// =============================================================================
// Items
// =============================================================================

// Item is one rectangle to be placed: a whole block or one of its segments.
// Source is the index of the block in the merged block list.
type Item struct {
	Lesson *timetable.Lesson
	Start  timetable.Clock
	End    timetable.Clock
	Source int
}

// FromBlocks wraps each valid block as an item spanning the whole block.
func FromBlocks(blocks []timetable.Lesson) []Item {
	items := make([]Item, 0, len(blocks))
	for i := range blocks {
		if !blocks[i].Valid() {
			continue
		}
		items = append(items, Item{Lesson: &blocks[i], Start: blocks[i].Start, End: blocks[i].End, Source: i})
	}
	return items
}

// FromSegments wraps each segment as an item pointing at its source block.
// Segments whose source is out of range are ignored.
func FromSegments(blocks []timetable.Lesson, segs []segment.Segment) []Item {
	items := make([]Item, 0, len(segs))
	for _, s := range segs {
		if s.Source < 0 || s.Source >= len(blocks) || s.Start >= s.End {
			continue
		}
		items = append(items, Item{Lesson: &blocks[s.Source], Start: s.Start, End: s.End, Source: s.Source})
	}
	return items
}

// =============================================================================
// Priority
// =============================================================================

// Priority orders items of a cluster for column placement. Lower values
// take columns further left.
type Priority int

const (
	PriorityExam Priority = iota + 1
	PriorityChange
	PriorityNormal
	PriorityBadChange
	PriorityCancelled
)

func (p Priority) String() string {
	switch p {
	case PriorityExam:
		return "exam"
	case PriorityChange:
		return "change"
	case PriorityNormal:
		return "normal"
	case PriorityBadChange:
		return "bad-change"
	case PriorityCancelled:
		return "cancelled"
	}
	return "unknown"
}

// PriorityOf classifies a lesson. An attached exam outranks every other
// signal, including cancellation.
func PriorityOf(l *timetable.Lesson) Priority {
	if l == nil {
		return PriorityNormal
	}
	if len(l.Exams) > 0 {
		return PriorityExam
	}
	if l.Cancelled() {
		return PriorityCancelled
	}

	var good, bad bool
	for _, r := range l.Resources() {
		if !r.Substituted() {
			continue
		}
		if r.Resolvable() {
			good = true
		} else {
			bad = true
		}
	}
	switch {
	case bad:
		return PriorityBadChange
	case good, l.Status == timetable.StatusIrregular:
		return PriorityChange
	}
	return PriorityNormal
}

// =============================================================================
// Placement
// =============================================================================

// Placed is an item with its lane assignment. Columns is the column count
// of the item's cluster.
type Placed struct {
	Lesson   *timetable.Lesson
	Start    timetable.Clock
	End      timetable.Clock
	Source   int
	Column   int
	Columns  int
	Cluster  int
	Priority Priority
}

// Overlaps reports whether p and o share an instant.
func (p Placed) Overlaps(o Placed) bool { return p.Start < o.End && o.Start < p.End }

// Assign clusters items by overlap and places each cluster greedily.
//
// Clusters are numbered from 0 in time order. The result is ordered by
// cluster, then start, then column. The input slice is not modified.
func Assign(items []Item) []Placed {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})

	placed := make([]Placed, 0, len(sorted))
	for id, group := range clusterize(sorted) {
		placed = append(placed, place(group, id)...)
	}
	return placed
}

// clusterize splits time-sorted items wherever an item starts at or after
// the running maximum end of the current cluster.
func clusterize(sorted []Item) [][]Item {
	var (
		clusters [][]Item
		start    int
		maxEnd   timetable.Clock
	)
	for i, it := range sorted {
		if i > 0 && it.Start >= maxEnd {
			clusters = append(clusters, sorted[start:i])
			start = i
		}
		if i == start || it.End > maxEnd {
			maxEnd = it.End
		}
	}
	if start < len(sorted) {
		clusters = append(clusters, sorted[start:])
	}
	return clusters
}

func place(group []Item, cluster int) []Placed {
	out := make([]Placed, len(group))
	for i, it := range group {
		out[i] = Placed{
			Lesson:   it.Lesson,
			Start:    it.Start,
			End:      it.End,
			Source:   it.Source,
			Cluster:  cluster,
			Priority: PriorityOf(it.Lesson),
		}
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		pa, pb := out[a], out[b]
		return cmp.Or(
			cmp.Compare(pa.Priority, pb.Priority),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End-pa.Start, pb.End-pb.Start),
			cmp.Compare(pa.Source, pb.Source),
		)
	})

	var lastEnd []timetable.Clock
	for _, i := range order {
		col := slices.IndexFunc(lastEnd, func(end timetable.Clock) bool { return end <= out[i].Start })
		if col < 0 {
			col = len(lastEnd)
			lastEnd = append(lastEnd, 0)
		}
		lastEnd[col] = out[i].End
		out[i].Column = col
	}

	for i := range out {
		out[i].Columns = len(lastEnd)
	}
	slices.SortStableFunc(out, func(a, b Placed) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.Column, b.Column))
	})
	return out
}
