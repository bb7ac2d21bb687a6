// Package resultcache memoizes expensive computed results by a
// caller-supplied canonical key. The interactive browser recomputes a
// strategy on every parameter toggle, and toggling back and forth
// should not pay the enumeration twice.
package resultcache

import "sync"

// Cache is a concurrency-safe memo table. The zero value is not
// usable; construct with New.
type Cache[V any] struct {
	mu sync.RWMutex
	m  map[string]V
}

// New returns an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{m: make(map[string]V)}
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// Put stores a value under key, replacing any previous entry.
func (c *Cache[V]) Put(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v
}

// GetOrCompute returns the cached value for key, computing and storing
// it on a miss. A compute error is returned without caching, so a
// later call retries. Concurrent misses on the same key may compute
// more than once; the results are identical so the last write wins.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(key, v)
	return v, nil
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
