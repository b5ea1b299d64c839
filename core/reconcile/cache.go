package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry[V any] struct {
	value V
	built time.Time
}

// Cache is a TTL cache with stampede protection: concurrent misses for the
// same key share one load.
type Cache[V any] struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	sf      singleflight.Group
}

// NewCache creates a cache. A zero ttl disables caching entirely.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry[V]),
	}
}

// Enabled reports whether values are retained between calls.
func (c *Cache[V]) Enabled() bool {
	return c != nil && c.ttl > 0
}

// GetOrLoad returns the cached value for key, or calls load and stores the
// result when the entry is missing or expired. Load errors are not cached.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if !c.Enabled() {
		return load(ctx)
	}

	if v, ok := c.get(key); ok {
		return v, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := c.get(key); ok {
			return v, nil
		}

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry[V]{value: v, built: c.now()}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Invalidate removes key from the cache.
func (c *Cache[V]) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Cache[V]) get(key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.built) > c.ttl {
		var zero V
		return zero, false
	}
	return entry.value, true
}
