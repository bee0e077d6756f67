package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/daygrid/pkg/buildinfo"
	"github.com/matzehuels/daygrid/pkg/cache"
	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/engine/visibility"
	"github.com/matzehuels/daygrid/pkg/observability"
	"github.com/matzehuels/daygrid/pkg/render"
	"github.com/matzehuels/daygrid/pkg/render/conflict"
	"github.com/matzehuels/daygrid/pkg/timetable"
	"github.com/matzehuels/daygrid/pkg/view"
)

// Runner lays out days with caching. It keeps no per-run state, so one
// Runner may serve several goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long layout results stay cached.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: cache.TTLLayout}
}

// Arrange runs the width-independent stages for one day.
func (r *Runner) Arrange(lessons []timetable.Lesson, opts Options) (*engine.Arrangement, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return engine.Prepare(lessons, opts.Engine), nil
}

// LayoutDay lays out the records of one date at opts.Width and reports
// whether the result came from the cache.
func (r *Runner) LayoutDay(ctx context.Context, date string, lessons []timetable.Lesson, opts Options) (view.Day, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return view.Day{}, false, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return view.Day{}, false, err
	}

	dayHash, err := hashDay(lessons)
	if err != nil {
		return view.Day{}, false, err
	}
	key := r.Keyer.LayoutKey(dayHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var day view.Day
			if err := json.Unmarshal(data, &day); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return day, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "date", date, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, date, len(lessons))
	arr, res := engine.Layout(lessons, opts.Engine, opts.Width, visibility.State{})
	day := view.FromResult(date, arr, res)
	elapsed := time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, date, len(day.Blocks), elapsed, nil)

	opts.Logger.Debug("laid out day",
		"date", date,
		"records", len(lessons),
		"blocks", len(day.Blocks),
		"clusters", len(day.Clusters),
		"duration", elapsed)

	if data, err := json.Marshal(day); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "date", date, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return day, false, nil
}

// LayoutRange groups lessons by date and lays the wanted days out
// concurrently. Days are returned in date order.
func (r *Runner) LayoutRange(ctx context.Context, lessons []timetable.Lesson, opts Options) (view.Document, Stats, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return view.Document{}, Stats{}, fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()

	byDate := timetable.ByDate(lessons)
	var dates []string
	for _, d := range timetable.Dates(lessons) {
		if opts.Wants(d) {
			dates = append(dates, d)
		}
	}

	days := make([]view.Day, len(dates))
	hits := make([]bool, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, date := range dates {
		g.Go(func() error {
			day, hit, err := r.LayoutDay(gctx, date, byDate[date], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", date, err)
			}
			days[i], hits[i] = day, hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return view.Document{}, Stats{}, err
	}

	stats := Stats{Days: len(days), Duration: time.Since(start)}
	for i, d := range days {
		stats.Blocks += len(d.Blocks)
		stats.Hidden += d.HiddenItems()
		if hits[i] {
			stats.CacheHits++
		}
	}
	r.Logger.Info("laid out timetable",
		"days", stats.Days,
		"blocks", stats.Blocks,
		"hidden", stats.Hidden,
		"cached", stats.CacheHits,
		"duration", stats.Duration)

	doc := view.Document{
		Version:   view.Version,
		Generator: buildinfo.Generator(),
		Mode:      string(opts.Engine.Mode),
		Width:     opts.Width,
		Days:      days,
	}
	return doc, stats, nil
}

// Graph renders the overlap graph of one day as DOT, SVG, PNG or PDF.
// DOT is cheap and never cached; the other formats are cached by the hash
// of the DOT source.
func (r *Runner) Graph(ctx context.Context, date string, lessons []timetable.Lesson, opts Options, format string) ([]byte, bool, error) {
	if err := ValidateGraphFormat(format); err != nil {
		return nil, false, err
	}
	arr, err := r.Arrange(lessons, opts)
	if err != nil {
		return nil, false, err
	}
	dot := conflict.ToDOT(arr, conflict.Options{Detailed: true, Title: date})
	if format == FormatDOT {
		return []byte(dot), false, nil
	}

	dotHash := cache.Hash([]byte(dot))
	key := r.Keyer.GraphKey(dotHash, format)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "graph")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	data, err := conflict.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	switch format {
	case FormatPNG:
		data, err = render.ToPNG(ctx, data, 2)
	case FormatPDF:
		data, err = render.ToPDF(ctx, data)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLGraph); err == nil {
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
	return data, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// hashDay hashes the canonical JSON encoding of a day's records.
func hashDay(lessons []timetable.Lesson) (string, error) {
	data, err := json.Marshal(lessons)
	if err != nil {
		return "", fmt.Errorf("hash day: %w", err)
	}
	return cache.Hash(data), nil
}
