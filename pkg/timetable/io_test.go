package timetable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/daygrid/pkg/errors"
)

const sampleJSON = `{
  "lessons": [
    {
      "id": 7,
      "date": "2026-10-14",
      "startTime": 800,
      "endTime": 845,
      "subject": "MA",
      "teachers": [{"name": "JON", "originalName": "SMI"}],
      "rooms": [{"name": "R101"}],
      "status": "irregular",
      "exams": [{"id": 3, "name": "Quiz", "startTime": 810, "endTime": 840}],
      "homework": [{"text": "p. 12", "dueDate": "2026-10-15"}],
      "info": "bring calculator"
    }
  ]
}`

const sampleYAML = `
- id: 7
  date: 2026-10-14
  startTime: 800
  endTime: "08:45"
  subject: MA
  teachers:
    - name: JON
      originalName: SMI
  rooms:
    - name: R101
  status: irregular
  exams:
    - id: 3
      name: Quiz
      startTime: 810
      endTime: 840
  homework:
    - text: p. 12
      dueDate: "2026-10-15"
  info: bring calculator
`

func expectedSample() []Lesson {
	return []Lesson{{
		ID:       7,
		Date:     "2026-10-14",
		Start:    FromHHMM(800),
		End:      FromHHMM(845),
		Subject:  "MA",
		Teachers: []Resource{{Name: "JON", OriginalName: "SMI"}},
		Rooms:    []Resource{{Name: "R101"}},
		Status:   StatusIrregular,
		Exams:    []Exam{{ID: 3, Name: "Quiz", Start: FromHHMM(810), End: FromHHMM(840)}},
		Homework: []Homework{{Text: "p. 12", DueDate: "2026-10-15"}},
		Info:     "bring calculator",
	}}
}

func TestDecodeJSON(t *testing.T) {
	got, err := Decode(strings.NewReader(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(expectedSample(), got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSONBareList(t *testing.T) {
	in := `[{"id": 1, "date": "2026-10-14", "startTime": 800, "endTime": 845, "subject": "DE"}]`
	got, err := Decode(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 || got[0].Subject != "DE" {
		t.Errorf("Decode = %+v, want one DE lesson", got)
	}
}

func TestDecodeYAML(t *testing.T) {
	got, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(expectedSample(), got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"bad status", FormatJSON, `[{"id": 1, "status": "moved"}]`},
		{"bad time", FormatJSON, `[{"id": 1, "startTime": 861}]`},
		{"bad date", FormatJSON, `[{"id": 1, "date": "14.10.2026"}]`},
		{"malformed json", FormatJSON, `[{"id": `},
		{"malformed yaml", FormatYAML, "- id: [1"},
		{"unknown format", Format("xml"), `<lessons/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input), tt.format); err == nil {
				t.Errorf("Decode(%s) should fail", tt.name)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "week.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadFile returned %d lessons, want 1", len(got))
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}

	_, err = ReadFile(filepath.Join(dir, "week.csv"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFile(csv) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestByDateAndDates(t *testing.T) {
	lessons := []Lesson{
		{ID: 1, Date: "2026-10-15"},
		{ID: 2, Date: "2026-10-14"},
		{ID: 3, Date: "2026-10-15"},
	}

	if diff := cmp.Diff([]string{"2026-10-14", "2026-10-15"}, Dates(lessons)); diff != "" {
		t.Errorf("Dates mismatch (-want +got):\n%s", diff)
	}

	days := ByDate(lessons)
	if got := days["2026-10-15"]; len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("ByDate[2026-10-15] = %+v, want ids [1 3]", got)
	}
}
