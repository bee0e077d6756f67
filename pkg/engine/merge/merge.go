package merge

import (
	"cmp"
	"slices"

	"github.com/matzehuels/daygrid/pkg/timetable"
)

// DefaultMaxBreak is the largest gap in minutes that still joins two records
// of the same lesson.
const DefaultMaxBreak = 5

// Options configures merging.
type Options struct {
	// MaxBreak is the largest gap in minutes between the end of the running
	// block and the start of the next record that still merges them.
	// Overlapping records (negative gap) always merge.
	MaxBreak int
}

// DefaultOptions returns options with the default break threshold.
func DefaultOptions() Options {
	return Options{MaxBreak: DefaultMaxBreak}
}

type groupKey struct {
	date   string
	id     timetable.Identifier
	status timetable.Status
}

// Merge combines records with the default options.
func Merge(lessons []timetable.Lesson) []timetable.Lesson {
	return MergeWithOptions(lessons, DefaultOptions())
}

// MergeWithOptions combines records of the same lesson, see the package
// documentation. The input is not modified. The result is ordered by start,
// end and ID.
func MergeWithOptions(lessons []timetable.Lesson, opts Options) []timetable.Lesson {
	groups := make(map[groupKey][]timetable.Lesson)
	var order []groupKey

	for _, l := range lessons {
		if !l.Valid() {
			continue
		}
		k := groupKey{date: l.Date, id: timetable.Identify(l), status: l.Status}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], l)
	}

	var out []timetable.Lesson
	for _, k := range order {
		out = append(out, mergeGroup(groups[k], opts.MaxBreak)...)
	}
	slices.SortStableFunc(out, CompareSpan)
	return out
}

// CompareSpan orders lessons by start, end and ID.
func CompareSpan(a, b timetable.Lesson) int {
	return cmp.Or(
		cmp.Compare(a.Start, b.Start),
		cmp.Compare(a.End, b.End),
		cmp.Compare(a.ID, b.ID),
	)
}

func mergeGroup(group []timetable.Lesson, maxBreak int) []timetable.Lesson {
	if len(group) == 1 {
		return []timetable.Lesson{group[0].Clone()}
	}

	sorted := slices.Clone(group)
	slices.SortStableFunc(sorted, CompareSpan)

	var out []timetable.Lesson
	cur := sorted[0].Clone()
	for _, next := range sorted[1:] {
		if int(next.Start-cur.End) <= maxBreak {
			cur = combine(cur, next)
			continue
		}
		out = append(out, cur)
		cur = next.Clone()
	}
	return append(out, cur)
}

func combine(cur, next timetable.Lesson) timetable.Lesson {
	cur.End = max(cur.End, next.End)
	cur.ID = min(cur.ID, next.ID)
	cur.Teachers = unionResources(cur.Teachers, next.Teachers)
	cur.Rooms = unionResources(cur.Rooms, next.Rooms)
	cur.Homework = dedupeHomework(slices.Concat(cur.Homework, next.Homework))
	cur.Exams = dedupeExams(slices.Concat(cur.Exams, next.Exams))
	cur.Info = JoinNotes(cur.Info, next.Info)
	return cur
}
