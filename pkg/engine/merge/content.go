package merge

import (
	"strings"

	"github.com/matzehuels/daygrid/pkg/timetable"
)

// NoteSeparator joins note fragments of a merged block.
const NoteSeparator = " | "

// JoinNotes splits each note on "|", trims the fragments, drops empty and
// case-insensitively repeated ones, and joins the rest with [NoteSeparator].
// Joining an already joined note with itself returns it unchanged.
func JoinNotes(notes ...string) string {
	var parts []string
	seen := make(map[string]bool)
	for _, n := range notes {
		for _, frag := range strings.Split(n, "|") {
			frag = strings.TrimSpace(frag)
			key := strings.ToLower(frag)
			if frag == "" || seen[key] {
				continue
			}
			seen[key] = true
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, NoteSeparator)
}

type homeworkKey struct {
	text, subject, dueDate, remark string
}

// dedupeHomework keeps the first occurrence of each assignment and marks
// it completed when any duplicate is.
func dedupeHomework(hw []timetable.Homework) []timetable.Homework {
	var out []timetable.Homework
	index := make(map[homeworkKey]int)
	for _, h := range hw {
		k := homeworkKey{h.Text, h.Subject, h.DueDate, h.Remark}
		if i, ok := index[k]; ok {
			out[i].Completed = out[i].Completed || h.Completed
			continue
		}
		index[k] = len(out)
		out = append(out, h)
	}
	return out
}

type examKey struct {
	name, subject, date string
	start, end          timetable.Clock
	text                string
}

// dedupeExams keeps the first occurrence of each exam.
func dedupeExams(exams []timetable.Exam) []timetable.Exam {
	var out []timetable.Exam
	seen := make(map[examKey]bool)
	for _, e := range exams {
		k := examKey{e.Name, e.Subject, e.Date, e.Start, e.End, e.Text}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// unionResources appends resources of b not already named in a. A planned
// name learned later fills in a missing OriginalName.
func unionResources(a, b []timetable.Resource) []timetable.Resource {
	out := a
	for _, r := range b {
		i := indexByName(out, r.Name)
		if i < 0 {
			out = append(out, r)
			continue
		}
		if out[i].OriginalName == "" {
			out[i].OriginalName = r.OriginalName
		}
	}
	return out
}

func indexByName(rs []timetable.Resource, name string) int {
	for i, r := range rs {
		if r.Name == name {
			return i
		}
	}
	return -1
}
