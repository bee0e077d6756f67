package timetable

import (
	"fmt"
	"slices"
	"strings"
)

// Identifier names the real-world lesson a record belongs to.
// It is either [Explicit] or [Composite].
type Identifier interface {
	fmt.Stringer
	identifier()
}

// Explicit is a lesson identifier supplied by the feed.
type Explicit string

func (Explicit) identifier() {}

// String implements fmt.Stringer.
func (e Explicit) String() string { return "id:" + string(e) }

// Composite identifies a lesson by its content when the feed has no
// identifier. Teachers and Rooms hold sorted names joined by a unit
// separator so the struct stays comparable.
type Composite struct {
	Subject  string
	Teachers string
	Rooms    string
	Status   Status
}

func (Composite) identifier() {}

// String implements fmt.Stringer.
func (c Composite) String() string {
	return fmt.Sprintf("sig:%s|%s|%s|%s", c.Subject,
		strings.ReplaceAll(c.Teachers, sep, ","),
		strings.ReplaceAll(c.Rooms, sep, ","), c.Status)
}

const sep = "\x1f"

// Identify resolves the identifier of a record. A non-blank LessonID wins;
// otherwise the composite signature is used, with empty strings for missing
// fields. Two unrelated records lacking every distinguishing field therefore
// share a signature.
func Identify(l Lesson) Identifier {
	if id := strings.TrimSpace(l.LessonID); id != "" {
		return Explicit(id)
	}
	return Composite{
		Subject:  l.Subject,
		Teachers: sortedJoin(names(l.Teachers)),
		Rooms:    sortedJoin(names(l.Rooms)),
		Status:   l.Status,
	}
}

func sortedJoin(ss []string) string {
	slices.Sort(ss)
	return strings.Join(ss, sep)
}
