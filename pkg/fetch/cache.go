// Package fetch layers resilience over backend reads: an in-memory
// stale-while-revalidate cache for request coalescing, a persistent
// response cache that survives restarts, and a fetcher that degrades
// from live data to cached data to caller-supplied fallback instead of
// failing outright.
package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CacheOptions tunes the in-memory response cache.
type CacheOptions struct {
	// TTL is how long a loaded value is served without reloading.
	TTL time.Duration
	// StaleWhileRevalidate extends the window past TTL during which the
	// stale value is served while a single background reload runs.
	StaleWhileRevalidate time.Duration
	// MaxEntries bounds the cache; the least recently used entry is
	// evicted past it. Zero means unbounded.
	MaxEntries int
}

type record struct {
	value      interface{}
	freshUntil time.Time
	staleUntil time.Time
	lastUsed   time.Time
}

// Cache is an in-memory read-through cache with request coalescing:
// concurrent loads of the same key collapse into one backend call, and
// values within the stale window are served immediately while one
// background refresh runs.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*record
	opts  CacheOptions
	sf    singleflight.Group
}

// NewCache creates an empty cache.
func NewCache(opts CacheOptions) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = 15 * time.Second
	}
	return &Cache{items: make(map[string]*record), opts: opts}
}

// LoadFunc loads a value from the backend.
type LoadFunc func(ctx context.Context) (interface{}, error)

// Get returns the cached value for key, loading it through load when
// missing or expired. The second return is false when no value could be
// produced, in which case the error describes the failed load.
func (c *Cache) Get(ctx context.Context, key string, load LoadFunc) (interface{}, bool, error) {
	now := time.Now()

	c.mu.Lock()
	rec, exists := c.items[key]
	if exists {
		switch {
		case now.Before(rec.freshUntil):
			rec.lastUsed = now
			value := rec.value
			c.mu.Unlock()
			return value, true, nil
		case now.Before(rec.staleUntil):
			rec.lastUsed = now
			value := rec.value
			c.mu.Unlock()
			go c.refresh(key, load)
			return value, true, nil
		}
	}
	c.mu.Unlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, value)
		return value, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// refresh reloads a stale key once, regardless of how many readers saw
// it stale.
func (c *Cache) refresh(key string, load LoadFunc) {
	c.sf.Do("refresh:"+key, func() (interface{}, error) { //nolint:errcheck
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		value, err := load(ctx)
		if err == nil {
			c.put(key, value)
		}
		return nil, nil
	})
}

func (c *Cache) put(key string, value interface{}) {
	now := time.Now()
	rec := &record{
		value:      value,
		freshUntil: now.Add(c.opts.TTL),
		staleUntil: now.Add(c.opts.TTL + c.opts.StaleWhileRevalidate),
		lastUsed:   now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = rec
	if c.opts.MaxEntries > 0 && len(c.items) > c.opts.MaxEntries {
		c.evictOldest()
	}
}

// evictOldest removes the least recently used entry. Caller holds the lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, rec := range c.items {
		if oldestKey == "" || rec.lastUsed.Before(oldest) {
			oldestKey = k
			oldest = rec.lastUsed
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// Invalidate drops a key so the next Get reloads.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
