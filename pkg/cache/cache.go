// Package cache stores computed day layouts keyed by content hash.
//
// Laying out a single day is fast, but the CLI re-runs over whole terms and
// several processes may share one timetable export. Keys are derived from a
// hash of the day's records and every option that influences the result, so
// an entry never needs invalidation: changed input yields a new key.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for several machines
//   - [NullCache]: caching disabled
//
// [Open] selects a backend by name, as configured in the [cache] section of
// the config file.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A miss is reported through
// the boolean, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs.
const (
	TTLLayout = 7 * 24 * time.Hour
	TTLGraph  = 7 * 24 * time.Hour
)
