package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/daygrid/pkg/cache"
	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/errors"
	"github.com/matzehuels/daygrid/pkg/observability"
	"github.com/matzehuels/daygrid/pkg/timetable"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

type countingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	starts int
}

func (c *countingHooks) OnLayoutStart(context.Context, string, int) {
	c.mu.Lock()
	c.starts++
	c.mu.Unlock()
}

func lesson(id int, date, subject string, start, end int) timetable.Lesson {
	return timetable.Lesson{
		ID:       id,
		Date:     date,
		Subject:  subject,
		Start:    timetable.FromHHMM(start),
		End:      timetable.FromHHMM(end),
		Teachers: []timetable.Resource{{Name: "T" + subject}},
	}
}

func term() []timetable.Lesson {
	return []timetable.Lesson{
		lesson(3, "2026-10-15", "EN", 800, 845),
		lesson(1, "2026-10-14", "MA", 800, 845),
		lesson(2, "2026-10-14", "MA", 850, 935),
		lesson(4, "2026-10-14", "DE", 900, 945),
		lesson(5, "2026-10-16", "BI", 1000, 1045),
	}
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Concurrency != DefaultConcurrency || opts.Engine.Mode != engine.ModeWide {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidInput},
		{"bad date", Options{Dates: []string{"14.10.2026"}}, errors.ErrCodeInvalidDate},
		{"bad mode", Options{Engine: engine.Options{Mode: "tall"}}, errors.ErrCodeInvalidMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestValidateGraphFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"gif", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateGraphFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateGraphFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := Options{Engine: engine.DefaultOptions(), Width: 80}
	b := a
	b.Width = 120
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("width should be part of the layout key")
	}
	c := a
	c.Engine.Mode = engine.ModeCompact
	if a.LayoutKeyOpts() == c.LayoutKeyOpts() {
		t.Error("mode should be part of the layout key")
	}
}

func TestLayoutRange(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	doc, stats, err := r.LayoutRange(context.Background(), term(), Options{})
	if err != nil {
		t.Fatalf("LayoutRange: %v", err)
	}

	var dates []string
	for _, d := range doc.Days {
		dates = append(dates, d.Date)
	}
	if diff := cmp.Diff([]string{"2026-10-14", "2026-10-15", "2026-10-16"}, dates); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}
	if stats.Days != 3 || stats.Blocks != 4 || stats.CacheHits != 0 {
		t.Errorf("stats = %+v, want 3 days, 4 blocks, 0 cached", stats)
	}
	if doc.Version != 1 || doc.Mode != "wide" || doc.Width != DefaultWidth {
		t.Errorf("document header = %d %q %d", doc.Version, doc.Mode, doc.Width)
	}
	if !strings.HasPrefix(doc.Generator, "daygrid ") {
		t.Errorf("Generator = %q", doc.Generator)
	}
}

func TestLayoutRange_DateFilter(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	doc, _, err := r.LayoutRange(context.Background(), term(), Options{Dates: []string{"2026-10-15", "2026-12-24"}})
	if err != nil {
		t.Fatalf("LayoutRange: %v", err)
	}
	if len(doc.Days) != 1 || doc.Days[0].Date != "2026-10-15" {
		t.Errorf("days = %+v, want only 2026-10-15", doc.Days)
	}
}

func TestLayoutRange_Deterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	first, _, err := r.LayoutRange(context.Background(), term(), Options{Concurrency: 1})
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		again, _, err := r.LayoutRange(context.Background(), term(), Options{Concurrency: 8})
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("parallel run differs (-serial +parallel):\n%s", diff)
		}
	}
}

func TestLayoutDay_Cache(t *testing.T) {
	ctx := context.Background()
	mem := newMemCache()
	r := NewRunner(mem, nil, nil)
	day := term()[1:4]

	first, hit, err := r.LayoutDay(ctx, "2026-10-14", day, Options{})
	if err != nil || hit {
		t.Fatalf("first LayoutDay = hit %v, %v; want miss", hit, err)
	}
	second, hit, err := r.LayoutDay(ctx, "2026-10-14", day, Options{})
	if err != nil || !hit {
		t.Fatalf("second LayoutDay = hit %v, %v; want hit", hit, err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached day differs (-computed +cached):\n%s", diff)
	}

	_, hit, _ = r.LayoutDay(ctx, "2026-10-14", day, Options{Width: 200})
	if hit {
		t.Error("a different width should miss")
	}
	_, hit, _ = r.LayoutDay(ctx, "2026-10-14", day, Options{Refresh: true})
	if hit {
		t.Error("Refresh should skip the cache read")
	}
	if mem.sets != 3 {
		t.Errorf("cache sets = %d, want 3", mem.sets)
	}
}

func TestLayoutDay_ScopedKeyerIsolates(t *testing.T) {
	ctx := context.Background()
	mem := newMemCache()
	day := term()[1:4]

	if _, _, err := NewRunner(mem, cache.NewScopedKeyer(nil, "v1:"), nil).LayoutDay(ctx, "2026-10-14", day, Options{}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := NewRunner(mem, cache.NewScopedKeyer(nil, "v2:"), nil).LayoutDay(ctx, "2026-10-14", day, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("a different scope should not see the entry")
	}
}

func TestLayoutRange_Hooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, _, err := r.LayoutRange(context.Background(), term(), Options{}); err != nil {
		t.Fatal(err)
	}
	if hooks.starts != 3 {
		t.Errorf("OnLayoutStart calls = %d, want 3", hooks.starts)
	}
}

func TestLayoutRange_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewRunner(nil, nil, nil).LayoutRange(ctx, term(), Options{})
	if err == nil {
		t.Error("LayoutRange should fail on a canceled context")
	}
}

func TestGraph_DOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	data, hit, err := r.Graph(context.Background(), "2026-10-14", term()[1:4], Options{}, FormatDOT)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if hit {
		t.Error("DOT output is never cached")
	}
	dot := string(data)
	if !strings.Contains(dot, `label="2026-10-14"`) || !strings.Contains(dot, "b0 -- b1;") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestGraph_InvalidFormat(t *testing.T) {
	_, _, err := NewRunner(nil, nil, nil).Graph(context.Background(), "2026-10-14", nil, Options{}, "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Graph(gif) error = %v, want INVALID_FORMAT", err)
	}
}
