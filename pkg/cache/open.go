package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/daygrid/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string
	Dir      string // file backend; empty means DefaultDir
	RedisURL string
}

// Open builds the configured backend. An empty backend name means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendRedis:
		if err := errors.ValidateURL(cfg.RedisURL); err != nil {
			return nil, err
		}
		return NewRedisCache(ctx, cfg.RedisURL)
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig,
		"unknown cache backend: %q (must be one of: file, redis, none)", cfg.Backend)
}

// Describe returns a short human description of where cfg stores entries.
func Describe(cfg Config) string {
	switch strings.ToLower(cfg.Backend) {
	case BackendRedis:
		return "redis " + cfg.RedisURL
	case BackendNone:
		return "disabled"
	}
	if cfg.Dir != "" {
		return cfg.Dir
	}
	if d, err := DefaultDir(); err == nil {
		return d
	}
	return fmt.Sprintf("%s (unavailable)", BackendFile)
}
