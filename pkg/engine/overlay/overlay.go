// Package overlay derives one exam overlay per exam from placed lanes.
//
// An exam is often attached to several blocks (both halves of a split
// double lesson, or every segment of a block in compact mode). Renderers
// draw it once, horizontally aligned with the leftmost carrier and
// vertically spanning the exam's own time, which may differ from the
// lesson it is attached to.
package overlay

import (
	"cmp"
	"slices"

	"github.com/matzehuels/daygrid/pkg/engine/columns"
	"github.com/matzehuels/daygrid/pkg/timetable"
)

// ExamOverlay is the bounding rectangle of one exam.
type ExamOverlay struct {
	ExamID  int             `json:"examId"`
	Name    string          `json:"name,omitempty"`
	Subject string          `json:"subject,omitempty"`
	Start   timetable.Clock `json:"startTime"`
	End     timetable.Clock `json:"endTime"`
	Column  int             `json:"column"`
	Columns int             `json:"columns"`
	Cluster int             `json:"cluster"`
}

// Derive emits one overlay per distinct exam ID, ordered by start and then
// exam ID. The carrier is the placed item with the smallest column; ties go
// to the earlier item. An exam without a valid span of its own takes the
// span of its carrying block.
func Derive(placed []columns.Placed) []ExamOverlay {
	carrier := make(map[int]int)
	exams := make(map[int]timetable.Exam)
	var ids []int

	for i, p := range placed {
		if p.Lesson == nil {
			continue
		}
		for _, e := range p.Lesson.Exams {
			j, seen := carrier[e.ID]
			if !seen {
				ids = append(ids, e.ID)
				exams[e.ID] = e
			}
			if !seen || better(p, placed[j]) {
				carrier[e.ID] = i
			}
		}
	}

	out := make([]ExamOverlay, 0, len(ids))
	for _, id := range ids {
		p, e := placed[carrier[id]], exams[id]
		start, end := e.Start, e.End
		if start >= end {
			start, end = p.Lesson.Start, p.Lesson.End
		}
		out = append(out, ExamOverlay{
			ExamID:  id,
			Name:    e.Name,
			Subject: cmp.Or(e.Subject, p.Lesson.Subject),
			Start:   start,
			End:     end,
			Column:  p.Column,
			Columns: p.Columns,
			Cluster: p.Cluster,
		})
	}

	slices.SortFunc(out, func(a, b ExamOverlay) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.ExamID, b.ExamID))
	})
	return out
}

func better(p, q columns.Placed) bool {
	if p.Column != q.Column {
		return p.Column < q.Column
	}
	return p.Start < q.Start
}
