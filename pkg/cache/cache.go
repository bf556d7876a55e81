// Package cache provides a small TTL key-value cache with in-memory
// and Redis backends. It backs short-lived editing state such as
// session drafts, where losing an entry is acceptable and expiry is the
// point.
package cache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache stores values of one type under string keys with per-entry
// TTL. A zero TTL falls back to the backend's default; a negative TTL
// keeps the entry until deleted.
type Cache[V any] interface {
	// Get retrieves a value. A missing or expired key yields ErrNotFound.
	Get(ctx context.Context, key string) (V, error)
	// Set stores a value under the key with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

var (
	// ErrNotFound is returned for missing or expired keys.
	ErrNotFound = errors.New("cache: key not found")

	// ErrClosed is returned when using a cache after Close.
	ErrClosed = errors.New("cache: closed")

	// ErrCodec wraps serialization failures of byte-oriented backends.
	ErrCodec = errors.New("cache: value codec failed")
)

var flight singleflight.Group

// GetOrSet returns the cached value for key, or computes it with fn on
// a miss. Concurrent misses for the same key share one fn call. The
// computed value is cached best-effort with the given TTL; a failed Set
// does not fail the call.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, ttl time.Duration, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := flight.Do(key, func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero V
		return zero, err
	}

	val := v.(V)
	_ = c.Set(ctx, key, val, ttl)
	return val, nil
}
