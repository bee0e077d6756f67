// Package columns assigns overlapping blocks to side-by-side lanes.
//
// # Overview
//
// A day's blocks (or, in compact mode, their atomic segments) are first
// grouped into clusters: maximal runs of items connected by time overlap.
// Items of different clusters never share horizontal space, so each cluster
// is laid out on its own.
//
// Within a cluster, items are placed greedily into columns. The placement
// order is the item's [Priority], so the most important lesson takes the
// leftmost column:
//
//	Priority 1  exam attached
//	Priority 2  resolvable substitution, or irregular
//	Priority 3  normal
//	Priority 4  substitution with a placeholder name
//	Priority 5  cancelled
//
// Ties break by start time, then by duration (shorter first) so a short
// make-up lesson is not hidden behind a long lesson sharing its start.
//
// # Column Count
//
// Each item goes into the first column whose last item has ended by the
// item's start; if none qualifies a column is opened. Every item of a
// cluster reports the same Columns value. [Cluster] additionally reports
// Depth, the largest number of items active at one instant. For a cluster
// of uniform priority the greedy order is by start time and Columns equals
// Depth. Mixed priorities may open a column more than the depth requires.
//
// # Pipeline Position
//
//	merge.Merge → segment.Slice (compact mode) → [this package] → visibility → overlay
package columns
