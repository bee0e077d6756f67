package timetable

import (
	"slices"
	"strings"

	"github.com/matzehuels/daygrid/pkg/errors"
)

// =============================================================================
// Status
// =============================================================================

// Status is the feed's classification of a lesson.
type Status int

const (
	StatusNormal Status = iota
	StatusCancelled
	StatusIrregular
)

var statusNames = map[Status]string{
	StatusNormal:    "normal",
	StatusCancelled: "cancelled",
	StatusIrregular: "irregular",
}

// String returns the lowercase status name.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the status name.
func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name. An empty value is normal.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatus parses a status name case-insensitively.
// "regular" and the US spelling "canceled" are accepted as aliases.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "regular":
		return StatusNormal, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "irregular":
		return StatusIrregular, nil
	}
	return StatusNormal, errors.New(errors.ErrCodeInvalidInput, "unknown status: %q", s)
}

// =============================================================================
// Resources
// =============================================================================

// Resource is a teacher or room assignment. OriginalName is set when the
// resource was substituted; it holds the name that was planned.
type Resource struct {
	Name         string `json:"name" yaml:"name"`
	OriginalName string `json:"originalName,omitempty" yaml:"originalName,omitempty"`
}

// Substituted reports whether the resource replaces a planned one.
func (r Resource) Substituted() bool { return r.OriginalName != "" }

// Resolvable reports whether Name identifies a real teacher or room rather
// than a feed placeholder.
func (r Resource) Resolvable() bool { return !IsPlaceholder(r.Name) }

var placeholderNames = map[string]bool{
	"n.n.":    true,
	"nn":      true,
	"tba":     true,
	"tbd":     true,
	"unknown": true,
}

// IsPlaceholder reports whether name is blank, punctuation only (---, ?)
// or a well-known stand-in such as "N.N.".
func IsPlaceholder(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || placeholderNames[strings.ToLower(name)] {
		return true
	}
	return strings.Trim(name, "-?.*_ ") == ""
}

func names(rs []Resource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

// =============================================================================
// Exams and Homework
// =============================================================================

// Exam is an exam attached to a lesson. Its span may differ from the
// carrying lesson's span.
type Exam struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	Start   Clock  `json:"startTime" yaml:"startTime"`
	End     Clock  `json:"endTime" yaml:"endTime"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Homework is an assignment attached to a lesson.
type Homework struct {
	ID        int    `json:"id,omitempty" yaml:"id,omitempty"`
	Text      string `json:"text" yaml:"text"`
	Subject   string `json:"subject,omitempty" yaml:"subject,omitempty"`
	DueDate   string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Remark    string `json:"remark,omitempty" yaml:"remark,omitempty"`
	Completed bool   `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// =============================================================================
// Lesson
// =============================================================================

// Lesson is one lesson record of a single day. A merged block has the same
// shape: its span covers all merged records.
type Lesson struct {
	ID       int        `json:"id" yaml:"id"`
	LessonID string     `json:"lessonId,omitempty" yaml:"lessonId,omitempty"`
	Date     string     `json:"date" yaml:"date"`
	Start    Clock      `json:"startTime" yaml:"startTime"`
	End      Clock      `json:"endTime" yaml:"endTime"`
	Subject  string     `json:"subject" yaml:"subject"`
	Teachers []Resource `json:"teachers,omitempty" yaml:"teachers,omitempty"`
	Rooms    []Resource `json:"rooms,omitempty" yaml:"rooms,omitempty"`
	Status   Status     `json:"status,omitempty" yaml:"status,omitempty"`
	Exams    []Exam     `json:"exams,omitempty" yaml:"exams,omitempty"`
	Homework []Homework `json:"homework,omitempty" yaml:"homework,omitempty"`
	Info     string     `json:"info,omitempty" yaml:"info,omitempty"`
}

// Valid reports whether the lesson has a positive duration.
func (l Lesson) Valid() bool { return l.Start < l.End }

// Duration returns the span length in minutes.
func (l Lesson) Duration() int { return int(l.End - l.Start) }

// Cancelled reports whether the lesson is cancelled.
func (l Lesson) Cancelled() bool { return l.Status == StatusCancelled }

// Resources returns teachers followed by rooms.
func (l Lesson) Resources() []Resource {
	return slices.Concat(l.Teachers, l.Rooms)
}

// Clone returns a deep copy so callers can modify slices freely.
func (l Lesson) Clone() Lesson {
	l.Teachers = slices.Clone(l.Teachers)
	l.Rooms = slices.Clone(l.Rooms)
	l.Exams = slices.Clone(l.Exams)
	l.Homework = slices.Clone(l.Homework)
	return l
}
