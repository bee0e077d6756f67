// Package cli implements the daygrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/daygrid/pkg/buildinfo"
	"github.com/matzehuels/daygrid/pkg/cache"
	"github.com/matzehuels/daygrid/pkg/config"
	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/errors"
	"github.com/matzehuels/daygrid/pkg/observability"
	"github.com/matzehuels/daygrid/pkg/pipeline"
	"github.com/matzehuels/daygrid/pkg/timetable"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "daygrid"

	// widthStep is how far one arrow key press moves the width in watch.
	widthStep = 10
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded in the root command's pre-run and defaults until then.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Daygrid lays out school timetables as non-overlapping lanes",
		Long:          `Daygrid merges timetable records into lesson blocks, assigns overlapping blocks to lanes and decides how many lanes fit a given width.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := logHooks{logger: c.Logger}
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/daygrid/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config or found on the
// default search path.
func (c *CLI) loadConfig() error {
	cfg, used, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if used != "" {
		c.Logger.Debug("loaded config", "path", used)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Keys are scoped by build
// version so layouts of another release are never read back.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, buildinfo.CacheScope()), c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		runner.TTL = ttl
	}
	return runner, nil
}

// newCache opens the configured backend. A backend that is configured
// correctly but unreachable degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.CacheConfig()
	if cfg.Dir == "" {
		if dir, err := cacheDir(); err == nil {
			cfg.Dir = dir
		}
	}
	store, err := cache.Open(ctx, cfg)
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidConfig) || errors.Is(err, errors.ErrCodeInvalidInput) {
			return nil, err
		}
		c.Logger.Warn("cache unavailable, continuing without", "backend", cache.Describe(cfg), "error", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/daygrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the flags shared by commands that lay out days.
type layoutFlags struct {
	mode    string
	width   int
	dates   []string
	noCache bool
	refresh bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "layout mode: wide, compact (default from config)")
	cmd.Flags().IntVar(&f.width, "width", 0, "layout width in cells (default from config)")
	cmd.Flags().StringSliceVar(&f.dates, "date", nil, "only lay out these dates (YYYY-MM-DD, repeatable)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached layouts")
}

// pipelineOptions merges config values and flags. Flags win.
func (c *CLI) pipelineOptions(f layoutFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		Engine:  c.Config.EngineOptions(),
		Width:   c.Config.Layout.Width,
		Dates:   f.dates,
		Refresh: f.refresh,
		Logger:  c.Logger,
	}
	if f.mode != "" {
		mode, err := engine.ParseMode(f.mode)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Engine.Mode = mode
	}
	if f.width != 0 {
		opts.Width = f.width
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// readTimetable loads the records of a timetable file.
func readTimetable(path string) ([]timetable.Lesson, error) {
	lessons, err := timetable.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load timetable %s: %w", path, err)
	}
	return lessons, nil
}

// singleDate picks the day a one-day command works on: the requested date,
// or the only date of the file.
func singleDate(lessons []timetable.Lesson, date string) (string, []timetable.Lesson, error) {
	byDate := timetable.ByDate(lessons)
	if date == "" {
		dates := timetable.Dates(lessons)
		if len(dates) != 1 {
			return "", nil, errors.New(errors.ErrCodeInvalidInput,
				"timetable has %d dates, pick one with --date (%s)", len(dates), strings.Join(dates, ", "))
		}
		date = dates[0]
	}
	if err := errors.ValidateDate(date); err != nil {
		return "", nil, err
	}
	day, ok := byDate[date]
	if !ok {
		return "", nil, errors.New(errors.ErrCodeNotFound, "no lessons on %s", date)
	}
	return date, day, nil
}
