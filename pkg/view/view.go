package view

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/engine/overlay"
	"github.com/matzehuels/daygrid/pkg/engine/visibility"
	"github.com/matzehuels/daygrid/pkg/errors"
	"github.com/matzehuels/daygrid/pkg/timetable"
)

// Version is the document format version.
const Version = 1

// =============================================================================
// Document Types
// =============================================================================

// Document is a laid out date range.
type Document struct {
	Version   int    `json:"version"`
	Generator string `json:"generator,omitempty"`
	Mode      string `json:"mode"`
	Width     int    `json:"width"`
	Days      []Day  `json:"days"`
}

// Day is the layout of one date at one width.
type Day struct {
	Date     string             `json:"date"`
	DayStart timetable.Clock    `json:"dayStart"`
	DayEnd   timetable.Clock    `json:"dayEnd"`
	State    visibility.State   `json:"state"`
	Blocks   []timetable.Lesson `json:"blocks"`
	Items    []Item             `json:"items"`
	Clusters []Cluster          `json:"clusters"`
	Exams    []Exam             `json:"exams,omitempty"`
}

// Item is a placed block or segment. Block indexes Day.Blocks.
type Item struct {
	Block    int             `json:"block"`
	Start    timetable.Clock `json:"startTime"`
	End      timetable.Clock `json:"endTime"`
	Column   int             `json:"column"`
	Columns  int             `json:"columns"`
	Cluster  int             `json:"cluster"`
	Priority string          `json:"priority"`
	Hidden   bool            `json:"hidden,omitempty"`
}

// Cluster summarises one group of overlapping items.
type Cluster struct {
	ID      int             `json:"id"`
	Start   timetable.Clock `json:"startTime"`
	End     timetable.Clock `json:"endTime"`
	Columns int             `json:"columns"`
	Depth   int             `json:"depth"`
	Visible int             `json:"visible"`
	Hidden  int             `json:"hidden"`
}

// Exam is an exam overlay.
type Exam struct {
	overlay.ExamOverlay
	Hidden bool `json:"hidden,omitempty"`
}

// =============================================================================
// Conversion
// =============================================================================

// FromResult converts an arrangement fitted by res into a Day.
func FromResult(date string, arr *engine.Arrangement, res engine.Result) Day {
	day := Day{
		Date:     date,
		DayStart: arr.DayStart,
		DayEnd:   arr.DayEnd,
		State:    res.State,
		Blocks:   arr.Blocks,
		Items:    make([]Item, len(arr.Placed)),
		Clusters: make([]Cluster, len(res.Clusters)),
	}
	if day.Blocks == nil {
		day.Blocks = []timetable.Lesson{}
	}

	for i, p := range arr.Placed {
		day.Items[i] = Item{
			Block:    p.Source,
			Start:    p.Start,
			End:      p.End,
			Column:   p.Column,
			Columns:  p.Columns,
			Cluster:  p.Cluster,
			Priority: p.Priority.String(),
			Hidden:   i < len(res.Hidden) && res.Hidden[i],
		}
	}
	for i, c := range res.Clusters {
		day.Clusters[i] = Cluster{
			ID:      c.ID,
			Start:   c.Start,
			End:     c.End,
			Columns: c.Columns,
			Depth:   c.Depth,
			Visible: c.Visible,
			Hidden:  c.Hidden,
		}
	}
	for i, o := range arr.Overlays {
		day.Exams = append(day.Exams, Exam{
			ExamOverlay: o,
			Hidden:      i < len(res.OverlayHidden) && res.OverlayHidden[i],
		})
	}
	return day
}

// Block returns the block an item refers to.
func (d Day) Block(it Item) (timetable.Lesson, bool) {
	if it.Block < 0 || it.Block >= len(d.Blocks) {
		return timetable.Lesson{}, false
	}
	return d.Blocks[it.Block], true
}

// HiddenItems counts hidden items.
func (d Day) HiddenItems() int {
	var n int
	for _, it := range d.Items {
		if it.Hidden {
			n++
		}
	}
	return n
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal encodes doc as indented JSON, filling the version.
func Marshal(doc Document) ([]byte, error) {
	if doc.Version == 0 {
		doc.Version = Version
	}
	if doc.Days == nil {
		doc.Days = []Day{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal decodes a document and checks that every item refers to an
// existing block.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout document")
	}
	if doc.Version > Version {
		return Document{}, errors.New(errors.ErrCodeUnsupported,
			"layout document version %d is newer than supported version %d", doc.Version, Version)
	}
	for _, d := range doc.Days {
		for i, it := range d.Items {
			if _, ok := d.Block(it); !ok {
				return Document{}, errors.New(errors.ErrCodeInvalidFormat,
					"%s: item %d refers to missing block %d", d.Date, i, it.Block)
			}
		}
	}
	return doc, nil
}

// WriteFile writes doc to path.
func WriteFile(doc Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a document from path.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
