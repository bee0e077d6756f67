// Package config loads daygrid settings from a TOML file.
//
// A complete file with the built-in defaults:
//
//	[merge]
//	max_break = 5            # minutes
//
//	[layout]
//	mode = "wide"            # or "compact"
//	day_start = "00:00"      # both zero: bounds come from the lessons
//	day_end = "00:00"
//	width = 80
//
//	[visibility]
//	min_column_width = 16
//	gap = 1
//	max_columns = 0          # 0: no cap
//	collapse_below = 40
//	expand_above = 48
//
//	[cache]
//	backend = "file"         # file, redis or none
//	dir = ""                 # file backend; empty: user cache dir
//	redis_url = ""
//	ttl = "168h"
//
// Keys left out keep their default. Unknown keys are an error so typos do
// not go unnoticed.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/daygrid/pkg/cache"
	"github.com/matzehuels/daygrid/pkg/engine"
	"github.com/matzehuels/daygrid/pkg/engine/merge"
	"github.com/matzehuels/daygrid/pkg/engine/visibility"
	"github.com/matzehuels/daygrid/pkg/errors"
	"github.com/matzehuels/daygrid/pkg/timetable"
)

// DefaultWidth is the layout width in terminal cells when neither the
// config nor a flag sets one.
const DefaultWidth = 80

// =============================================================================
// Types
// =============================================================================

// Config is the decoded config file.
type Config struct {
	Merge      Merge             `toml:"merge"`
	Layout     Layout            `toml:"layout"`
	Visibility visibility.Policy `toml:"visibility"`
	Cache      Cache             `toml:"cache"`
}

// Merge holds the [merge] section.
type Merge struct {
	MaxBreak int `toml:"max_break"`
}

// Layout holds the [layout] section.
type Layout struct {
	Mode     engine.Mode     `toml:"mode"`
	DayStart timetable.Clock `toml:"day_start"`
	DayEnd   timetable.Clock `toml:"day_end"`
	Width    int             `toml:"width"`
}

// Cache holds the [cache] section.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Duration decodes Go duration strings such as "36h" or "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Merge:      Merge{MaxBreak: merge.DefaultMaxBreak},
		Layout:     Layout{Mode: engine.ModeWide, Width: DefaultWidth},
		Visibility: visibility.DefaultPolicy(),
		Cache:      Cache{Backend: cache.BackendFile, TTL: Duration{cache.TTLLayout}},
	}
}

// =============================================================================
// Loading
// =============================================================================

// Paths returns the locations searched when no explicit file is given.
func Paths() []string {
	var paths []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, "daygrid", "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "daygrid", "config.toml")
		if len(paths) == 0 || paths[0] != p {
			paths = append(paths, p)
		}
	}
	return paths
}

// Load reads the config at path. With an empty path the first existing
// file of [Paths] is used, and the defaults when none exists. It returns
// the file actually read, or "" for the defaults.
func Load(path string) (Config, string, error) {
	if path != "" {
		cfg, err := LoadFile(path)
		return cfg, path, err
	}
	for _, p := range Paths() {
		if _, err := os.Stat(p); err == nil {
			cfg, err := LoadFile(p)
			return cfg, p, err
		}
	}
	return Default(), "", nil
}

// LoadFile reads and validates one config file.
func LoadFile(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// =============================================================================
// Derived Settings
// =============================================================================

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.EngineOptions().Validate(); err != nil {
		return err
	}
	if c.Layout.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout width must be positive, got %d", c.Layout.Width)
	}
	switch strings.ToLower(c.Cache.Backend) {
	case cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if err := errors.ValidateURL(c.Cache.RedisURL); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// EngineOptions converts the layout-related sections.
func (c Config) EngineOptions() engine.Options {
	return engine.Options{
		Merge:      merge.Options{MaxBreak: c.Merge.MaxBreak},
		Mode:       c.Layout.Mode,
		DayStart:   c.Layout.DayStart,
		DayEnd:     c.Layout.DayEnd,
		Visibility: c.Visibility,
	}
}

// CacheConfig converts the [cache] section.
func (c Config) CacheConfig() cache.Config {
	return cache.Config{Backend: c.Cache.Backend, Dir: c.Cache.Dir, RedisURL: c.Cache.RedisURL}
}
