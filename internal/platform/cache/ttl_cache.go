// Package cache provides bounded in-memory caches with per-entry expiry.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a size-bounded LRU where every entry carries its own expiry.
// Expired entries are dropped on the next access or by CleanExpired.
// It is safe for concurrent use.
type TTLCache[K comparable, V any] struct {
	mu     sync.Mutex
	lru    *simplelru.LRU[K, item[V]]
	now    func() time.Time
	closed bool
}

// NewTTLCache creates a cache holding at most size entries. now may be nil.
func NewTTLCache[K comparable, V any](size int, now func() time.Time) (*TTLCache[K, V], error) {
	l, err := simplelru.NewLRU[K, item[V]](size, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &TTLCache[K, V]{lru: l, now: now}, nil
}

// Get returns the value for key if present and unexpired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	it, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if !c.now().Before(it.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return it.value, true
}

// Set stores value under key for ttl. Non-positive ttl and closed caches store nothing.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.lru.Add(key, item[V]{value: value, expiresAt: c.now().Add(ttl)})
}

// Delete removes key.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// CleanExpired drops every expired entry and returns how many were removed.
func (c *TTLCache[K, V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for _, k := range c.lru.Keys() {
		it, ok := c.lru.Peek(k)
		if ok && !now.Before(it.expiresAt) {
			c.lru.Remove(k)
			removed++
		}
	}
	return removed
}

// Purge empties the cache.
func (c *TTLCache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Close purges the cache and rejects further writes.
func (c *TTLCache[K, V]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.closed = true
}
