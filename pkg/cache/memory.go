package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is a process-local cache. Expired entries are dropped lazily
// on read and periodically by a janitor goroutine.
type Memory[V any] struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry[V]
	defaultTTL time.Duration
	done       chan struct{}
	closed     bool
}

// MemoryOption tunes a Memory cache.
type MemoryOption func(*memorySettings)

type memorySettings struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
}

// WithDefaultTTL sets the TTL applied when Set receives zero.
func WithDefaultTTL(ttl time.Duration) MemoryOption {
	return func(s *memorySettings) { s.defaultTTL = ttl }
}

// WithCleanupInterval sets how often expired entries are swept. Zero
// disables the janitor; entries then expire lazily on read.
func WithCleanupInterval(interval time.Duration) MemoryOption {
	return func(s *memorySettings) { s.cleanupInterval = interval }
}

// NewMemory returns a Memory cache. Without options entries live one
// hour and the janitor sweeps every minute.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	settings := memorySettings{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	m := &Memory[V]{
		entries:    make(map[string]memoryEntry[V]),
		defaultTTL: settings.defaultTTL,
		done:       make(chan struct{}),
	}
	if settings.cleanupInterval > 0 {
		go m.janitor(settings.cleanupInterval)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	e, ok := m.entries[key]
	if !ok {
		return zero, ErrNotFound
	}
	if e.expired(time.Now()) {
		delete(m.entries, key)
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = memoryEntry[V]{value: value, expiresAt: expiresAt}
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.entries, key)
	return nil
}

// Close stops the janitor. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory[V]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, e := range m.entries {
				if e.expired(now) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

var _ Cache[any] = (*Memory[any])(nil)
