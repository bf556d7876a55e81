package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores JSON-encoded values in Redis, so drafts survive process
// restarts and are shared between replicas. The client's lifecycle
// belongs to the caller.
type Redis[V any] struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// RedisOption tunes a Redis cache.
type RedisOption func(*redisSettings)

type redisSettings struct {
	prefix     string
	defaultTTL time.Duration
}

// WithPrefix namespaces every key as "<prefix>:<key>".
func WithPrefix(prefix string) RedisOption {
	return func(s *redisSettings) { s.prefix = prefix }
}

// WithRedisDefaultTTL sets the TTL applied when Set receives zero.
func WithRedisDefaultTTL(ttl time.Duration) RedisOption {
	return func(s *redisSettings) { s.defaultTTL = ttl }
}

// NewRedis wraps an existing client. Without options entries live one
// hour and keys are unprefixed.
func NewRedis[V any](client redis.UniversalClient, opts ...RedisOption) *Redis[V] {
	settings := redisSettings{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&settings)
	}
	return &Redis[V]{
		client:     client,
		prefix:     settings.prefix,
		defaultTTL: settings.defaultTTL,
	}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, errors.Join(ErrCodec, err)
	}
	return v, nil
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrCodec, err)
	}
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	// Redis treats 0 as "keep forever", which matches our negative-TTL
	// semantics.
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op; the Redis client is owned by the caller.
func (r *Redis[V]) Close() error { return nil }

func (r *Redis[V]) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)
