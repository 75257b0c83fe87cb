// Package cache stores rendered artifacts and decoded patterns.
//
// A [Cache] is a byte store with per-entry TTL. Three backends exist:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries as JSON files, for the CLI
//   - [RedisCache] keeps entries in Redis, for the HTTP service
//
// Keys come from a [Keyer], which hashes every input that affects the
// cached bytes. [Instrument] reports hits, misses and writes to the
// observability hooks.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Default lifetimes per entry type.
const (
	TTLRender  = 7 * 24 * time.Hour
	TTLPattern = 24 * time.Hour
)

// Backend names accepted by [New].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Dir       string // file backend; empty uses DefaultDir
	RedisAddr string // redis backend
}

// New opens the backend named by opts.Backend. An empty name means none.
func New(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		rc, err := NewRedisCache(ctx, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return nil, stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "unknown cache backend %q", opts.Backend)
}

// DefaultDir returns $XDG_CACHE_HOME/stitchkit, falling back to
// ~/.cache/stitchkit.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "stitchkit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "locate home directory")
	}
	return filepath.Join(home, ".cache", "stitchkit"), nil
}
