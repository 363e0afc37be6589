// Package cache provides a small thread-safe cache for rendered frames.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache is a thread-safe cache with per-entry expiration and a bounded
// number of entries. When full, the oldest entry is evicted.
type TTLCache[K comparable, V any] struct {
	mu       sync.RWMutex
	data     map[K]entry[V]
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// New creates a TTLCache holding at most capacity entries, each valid for ttl.
// A capacity below one is treated as one. A zero ttl means entries never expire.
func New[K comparable, V any](ttl time.Duration, capacity int) *TTLCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &TTLCache[K, V]{
		data:     make(map[K]entry[V], capacity),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get retrieves a value from the cache.
// Returns zero value and ok=false if the key doesn't exist or has expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || c.expiredLocked(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value in the cache, evicting the oldest entry when full.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data == nil {
		c.data = make(map[K]entry[V], c.capacity)
	}
	if _, exists := c.data[key]; !exists && len(c.data) >= c.capacity {
		c.evictLocked()
	}
	c.data[key] = entry[V]{value: value, storedAt: c.now()}
}

// Invalidate drops every cached entry.
func (c *TTLCache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[K]entry[V], c.capacity)
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// MUST be called with at least a read lock held.
func (c *TTLCache[K, V]) expiredLocked(e entry[V]) bool {
	return c.ttl > 0 && c.now().Sub(e.storedAt) >= c.ttl
}

// MUST be called with the write lock held.
func (c *TTLCache[K, V]) evictLocked() {
	var (
		oldestKey K
		oldest    time.Time
		found     bool
	)
	for k, e := range c.data {
		if c.expiredLocked(e) {
			delete(c.data, k)
			continue
		}
		if !found || e.storedAt.Before(oldest) {
			oldestKey, oldest, found = k, e.storedAt, true
		}
	}
	if found && len(c.data) >= c.capacity {
		delete(c.data, oldestKey)
	}
}
