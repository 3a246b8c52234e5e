package cache

import (
	"sync"
	"time"
)

// DefaultMaxSize is the entry ceiling used when no explicit size is given.
const DefaultMaxSize = 10_000

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a concurrency-safe in-memory key/value store where every entry
// expires a fixed duration after it was written.
//
// Eviction is driven by expiry only. When the cache is full, expired entries
// are swept; if it is still full the write is dropped so live entries are
// never displaced.
type TTLCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	data    map[string]entry[V]
	now     func() time.Time
}

// Option configures a TTLCache.
type Option[V any] func(*TTLCache[V])

// WithClock overrides the time source. Times returned by time.Now carry a
// monotonic reading, so the default clock is immune to wall-clock jumps.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *TTLCache[V]) {
		c.now = now
	}
}

// New creates a cache whose entries live for ttl and which holds at most
// maxSize entries. A non-positive maxSize falls back to DefaultMaxSize.
func New[V any](ttl time.Duration, maxSize int, opts ...Option[V]) *TTLCache[V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	c := &TTLCache[V]{
		ttl:     ttl,
		maxSize: maxSize,
		data:    make(map[string]entry[V]),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key. Expired entries are deleted on
// the way out and reported as absent. Reads never extend an entry's life.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.data, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. It is a no-op on a disabled cache (ttl <= 0)
// and silently drops the write when the cache is full of live entries.
func (c *TTLCache[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.data) >= c.maxSize {
		c.evictExpiredLocked()
	}
	if len(c.data) >= c.maxSize {
		return
	}
	c.data[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Len reports the number of stored entries, including any that have expired
// but not yet been swept.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// evictExpiredLocked removes every entry whose expiry has passed.
// Caller must hold c.mu.
func (c *TTLCache[V]) evictExpiredLocked() {
	now := c.now()
	for k, e := range c.data {
		if !now.Before(e.expiresAt) {
			delete(c.data, k)
		}
	}
}
