package columns

import (
	"cmp"
	"slices"

	"github.com/matzehuels/daygrid/pkg/timetable"
)

// Cluster summarises one group of overlapping placed items.
type Cluster struct {
	ID      int
	Start   timetable.Clock
	End     timetable.Clock
	Columns int
	Depth   int
	Items   []int // indices into the placed slice
}

// Clusters summarises the clusters of an [Assign] result in ID order.
func Clusters(placed []Placed) []Cluster {
	byID := make(map[int]*Cluster)
	var ids []int
	for i, p := range placed {
		c, ok := byID[p.Cluster]
		if !ok {
			c = &Cluster{ID: p.Cluster, Start: p.Start, End: p.End, Columns: p.Columns}
			byID[p.Cluster] = c
			ids = append(ids, p.Cluster)
		}
		c.Start = min(c.Start, p.Start)
		c.End = max(c.End, p.End)
		c.Items = append(c.Items, i)
	}

	slices.Sort(ids)
	out := make([]Cluster, 0, len(ids))
	for _, id := range ids {
		c := byID[id]
		c.Depth = depth(placed, c.Items)
		out = append(out, *c)
	}
	return out
}

// Depth returns the largest number of items active at one instant.
func Depth(placed []Placed) int {
	idx := make([]int, len(placed))
	for i := range idx {
		idx[i] = i
	}
	return depth(placed, idx)
}

func depth(placed []Placed, items []int) int {
	type event struct {
		at    timetable.Clock
		delta int
	}
	events := make([]event, 0, 2*len(items))
	for _, i := range items {
		events = append(events, event{placed[i].Start, 1}, event{placed[i].End, -1})
	}
	// Ends sort before starts at the same instant: [a,b) and [b,c) do not overlap.
	slices.SortFunc(events, func(a, b event) int {
		return cmp.Or(cmp.Compare(a.at, b.at), cmp.Compare(a.delta, b.delta))
	})

	var cur, best int
	for _, e := range events {
		cur += e.delta
		best = max(best, cur)
	}
	return best
}
