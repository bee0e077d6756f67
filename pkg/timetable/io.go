package timetable

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/daygrid/pkg/errors"
)

// Format identifies a timetable file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// document is the wrapped file form: {"lessons": [...]}.
type document struct {
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported timetable file %q (want .json, .yaml or .yml)", path)
}

// ReadFile decodes the lesson records stored at path.
func ReadFile(path string) ([]Lesson, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads lesson records in the given format. Both a bare list and a
// {"lessons": [...]} object are accepted. Date keys, when present, must be
// ISO dates.
func Decode(r io.Reader, format Format) ([]Lesson, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var lessons []Lesson
	switch format {
	case FormatJSON:
		lessons, err = decodeJSON(data)
	case FormatYAML:
		lessons, err = decodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s timetable", format)
	}

	for _, l := range lessons {
		if l.Date == "" {
			continue
		}
		if err := errors.ValidateDate(l.Date); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "lesson %d", l.ID)
		}
	}
	return lessons, nil
}

func decodeJSON(data []byte) ([]Lesson, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var lessons []Lesson
		err := json.Unmarshal(trimmed, &lessons)
		return lessons, err
	}
	var doc document
	err := json.Unmarshal(trimmed, &doc)
	return doc.Lessons, err
}

func decodeYAML(data []byte) ([]Lesson, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	if root.Content[0].Kind == yaml.SequenceNode {
		var lessons []Lesson
		err := root.Content[0].Decode(&lessons)
		return lessons, err
	}
	var doc document
	err := root.Content[0].Decode(&doc)
	return doc.Lessons, err
}

// ByDate groups lessons by their date key. Input order is kept within a day.
func ByDate(lessons []Lesson) map[string][]Lesson {
	days := make(map[string][]Lesson)
	for _, l := range lessons {
		days[l.Date] = append(days[l.Date], l)
	}
	return days
}

// Dates returns the distinct date keys in ascending order.
func Dates(lessons []Lesson) []string {
	var dates []string
	for _, l := range lessons {
		if !slices.Contains(dates, l.Date) {
			dates = append(dates, l.Date)
		}
	}
	slices.Sort(dates)
	return dates
}
