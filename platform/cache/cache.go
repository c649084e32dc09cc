// Package cache provides a time-bounded, size-bounded in-memory cache.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"sync"
	"time"
)

// Clock abstracts time.Now so expiry behavior can be tested deterministically.
type Clock func() time.Time

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a generic key/value store with per-entry TTL and a hard size bound.
// When the cache is full and a new key arrives, the oldest-inserted entry is
// evicted (insertion order, not LRU; a read never extends an entry's life).
// Safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	order   []K
	ttl     time.Duration
	maxSize int
	now     Clock
}

// New creates a cache with the given TTL and maximum entry count.
// A maxSize of 0 or less means unbounded.
func New[K comparable, V any](ttl time.Duration, maxSize int) *Cache[K, V] {
	return NewWithClock[K, V](ttl, maxSize, time.Now)
}

// NewWithClock creates a cache with an injectable clock for tests.
func NewWithClock[K comparable, V any](ttl time.Duration, maxSize int, now Clock) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		maxSize: maxSize,
		now:     now,
	}
}

// Set inserts or overwrites the value for key with a fresh expiry.
// If the cache is at capacity and the key is new, the oldest-inserted
// entry is evicted first.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if c.maxSize > 0 && len(c.entries) >= c.maxSize {
			c.evictOldestLocked()
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Get returns the value for key if present and unexpired.
// An expired entry is removed and reported as absent. Reading does not
// refresh the expiry.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		c.removeLocked(key)
		return zero, false
	}
	return e.value, true
}

// Clear removes all entries unconditionally.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
	c.order = c.order[:0]
}

// Len reports the number of stored entries, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[K, V]) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *Cache[K, V]) removeLocked(key K) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
