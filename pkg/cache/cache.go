// Package cache is a generic in-memory key-value store with optional
// per-entry expiry. Expired entries are evicted lazily on the next Get;
// there is no background sweep.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value  V
	expiry time.Time // zero value means the entry never expires
}

type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time
}

func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Set inserts or overwrites the entry for key. A ttl of 0 means the
// entry never expires on its own.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiry = c.now().Add(ttl)
	}
	c.entries[key] = e
}

// Get returns the value stored under key. An entry whose expiry has
// passed is deleted and reported as absent.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}

	if !e.expiry.IsZero() && c.now().After(e.expiry) {
		delete(c.entries, key)
		return zero, false
	}

	return e.value, true
}

// Delete removes the entry for key if present; a no-op otherwise.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[V])
}

// Len reports the number of entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
