// Package cache is the process-local TTL store shared by the orchestrator and
// the filings directory lookup. Expired entries are evicted lazily on read and
// by Sweep, which the service scheduler calls on an interval. The cache owns
// no goroutines.
package cache

import (
	"sync"
	"time"
)

// Key namespaces and their default lifetimes.
const (
	NamespaceReport    = "report:"
	NamespaceSearch    = "search:"
	NamespaceDirectory = "directory:"

	DefaultReportTTL    = 30 * time.Minute
	DefaultSearchTTL    = 60 * time.Minute
	DefaultDirectoryTTL = 24 * time.Hour
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key. An expired entry is removed and reported absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Before(e.expiresAt) {
		return e.value, true
	}

	c.mu.Lock()
	// Re-check: a concurrent Set may have refreshed the entry.
	if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil, false
}

// Set stores value under key for ttl. A non-positive ttl stores nothing.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes expired entries and returns how many it removed. It snapshots
// the keys first and then takes the write lock once per key, so concurrent
// readers and writers wait for at most one entry check.
func (c *Cache) Sweep() int {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	removed := 0
	for _, k := range keys {
		c.mu.Lock()
		if e, ok := c.entries[k]; ok && !c.now().Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
		c.mu.Unlock()
	}
	return removed
}

// GetAs returns the value for key when it holds a T.
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
