package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/errors"
	"github.com/matzehuels/daygrid/pkg/timetable"
	"github.com/matzehuels/daygrid/pkg/view"
)

const sampleTimetable = `{
  "lessons": [
    {"id": 1, "date": "2024-05-06", "startTime": 800, "endTime": 845, "subject": "MA",
     "teachers": [{"name": "Adler"}], "rooms": [{"name": "R1"}]},
    {"id": 2, "date": "2024-05-06", "startTime": 845, "endTime": 930, "subject": "MA",
     "teachers": [{"name": "Adler"}], "rooms": [{"name": "R1"}]},
    {"id": 3, "date": "2024-05-06", "startTime": 800, "endTime": 930, "subject": "EN",
     "teachers": [{"name": "Berg"}], "rooms": [{"name": "R2"}], "status": "irregular"},
    {"id": 4, "date": "2024-05-06", "startTime": 1000, "endTime": 1045, "subject": "DE",
     "status": "cancelled"},
    {"id": 5, "date": "2024-05-07", "startTime": 800, "endTime": 845, "subject": "BIO"}
  ]
}`

// writeFixtures writes the sample timetable and a config that disables
// caching, returning both paths.
func writeFixtures(t *testing.T) (input, configPath string) {
	t.Helper()
	dir := t.TempDir()
	input = filepath.Join(dir, "week.json")
	configPath = filepath.Join(dir, "config.toml")
	if err := os.WriteFile(input, []byte(sampleTimetable), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return input, configPath
}

// execute runs the root command of a fresh CLI and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()

	want := []string{"layout", "show", "watch", "graph", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	input, cfg := writeFixtures(t)
	output := filepath.Join(filepath.Dir(input), "out.json")

	if _, err := execute(t, "--config", cfg, "layout", input, "-o", output, "--width", "120"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	doc, err := view.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if doc.Width != 120 || doc.Mode != string(engine.ModeWide) {
		t.Errorf("doc width/mode = %d/%s, want 120/wide", doc.Width, doc.Mode)
	}
	if len(doc.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(doc.Days))
	}
	day := doc.Days[0]
	if day.Date != "2024-05-06" {
		t.Errorf("first day = %s, want 2024-05-06", day.Date)
	}
	if len(day.Blocks) != 3 {
		t.Errorf("blocks = %d, want 3 (MA halves merged)", len(day.Blocks))
	}
	if len(day.Clusters) != 2 || day.Clusters[0].Columns != 2 {
		t.Errorf("clusters = %+v, want 2 clusters with 2 lanes first", day.Clusters)
	}
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	input, cfg := writeFixtures(t)

	if _, err := execute(t, "--config", cfg, "layout", input, "--date", "2024-05-07"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	doc, err := view.ReadFile(strings.TrimSuffix(input, ".json") + ".layout.json")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(doc.Days) != 1 || doc.Days[0].Date != "2024-05-07" {
		t.Errorf("days = %+v, want only 2024-05-07", doc.Days)
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	input, cfg := writeFixtures(t)

	out, err := execute(t, "--config", cfg, "layout", input, "-o", "-", "--mode", "compact")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	doc, err := view.Unmarshal([]byte(out))
	if err != nil {
		t.Fatalf("stdout is not a layout document: %v", err)
	}
	if doc.Mode != string(engine.ModeCompact) {
		t.Errorf("mode = %s, want compact", doc.Mode)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	input, cfg := writeFixtures(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad mode", []string{"--config", cfg, "layout", input, "--mode", "narrow"}, errors.ErrCodeInvalidMode},
		{"bad date", []string{"--config", cfg, "layout", input, "--date", "06.05.2024"}, errors.ErrCodeInvalidDate},
		{"negative width", []string{"--config", cfg, "layout", input, "--width", "-5"}, errors.ErrCodeInvalidInput},
		{"missing input", []string{"--config", cfg, "layout", input + ".missing.json"}, errors.ErrCodeFileNotFound},
		{"missing config", []string{"--config", cfg + ".missing", "layout", input}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestPipelineOptionsFlagsOverrideConfig(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Layout.Width = 64
	c.Config.Merge.MaxBreak = 10

	opts, err := c.pipelineOptions(layoutFlags{})
	if err != nil {
		t.Fatalf("pipelineOptions() error: %v", err)
	}
	if opts.Width != 64 || opts.Engine.Merge.MaxBreak != 10 {
		t.Errorf("config values = width %d, max break %d, want 64, 10", opts.Width, opts.Engine.Merge.MaxBreak)
	}

	opts, err = c.pipelineOptions(layoutFlags{width: 200, mode: "compact"})
	if err != nil {
		t.Fatalf("pipelineOptions() error: %v", err)
	}
	if opts.Width != 200 || opts.Engine.Mode != engine.ModeCompact {
		t.Errorf("flag values = width %d, mode %s, want 200, compact", opts.Width, opts.Engine.Mode)
	}
}

func TestSingleDate(t *testing.T) {
	lessons := []timetable.Lesson{
		{ID: 1, Date: "2024-05-06", Start: 480, End: 525},
		{ID: 2, Date: "2024-05-07", Start: 480, End: 525},
	}

	tests := []struct {
		name    string
		lessons []timetable.Lesson
		date    string
		want    string
		code    errors.Code
	}{
		{"explicit", lessons, "2024-05-07", "2024-05-07", ""},
		{"only date", lessons[:1], "", "2024-05-06", ""},
		{"ambiguous", lessons, "", "", errors.ErrCodeInvalidInput},
		{"absent", lessons, "2024-05-08", "", errors.ErrCodeNotFound},
		{"malformed", lessons, "tomorrow", "", errors.ErrCodeInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, day, err := singleDate(tt.lessons, tt.date)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("singleDate() error = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("singleDate() error: %v", err)
			}
			if got != tt.want || len(day) != 1 || day[0].Date != tt.want {
				t.Errorf("singleDate() = %s with %d lessons, want %s with 1", got, len(day), tt.want)
			}
		})
	}
}

func TestNewCacheFallsBack(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Cache.Backend = "redis"
	c.Config.Cache.RedisURL = "redis://127.0.0.1:1/0"

	store, err := c.newCache(context.Background(), false)
	if err != nil {
		t.Fatalf("newCache() error: %v, want fallback to no caching", err)
	}
	defer store.Close()

	c.Config.Cache.Backend = "memcached"
	if _, err := c.newCache(context.Background(), false); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("newCache() unknown backend error = %v, want INVALID_CONFIG", err)
	}
}
