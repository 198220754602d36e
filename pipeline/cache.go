package pipeline

import (
	"sync"
	"time"
)

// CacheStats counts cache activity.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

type cacheEntry struct {
	outcome   Outcome
	expiresAt time.Time
}

// Cache is a bounded in-process TTL cache of calculation outcomes keyed by
// (normalized input, price, settlement).
//
// It is strictly a performance optimization: a hit returns the identical
// outcome the cold path would produce. A nil *Cache is a disabled cache, which
// is how tests run the engine deterministically.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	capacity int
	ttl      time.Duration
	stats    CacheStats
}

// NewCache returns a cache holding up to capacity entries for ttl each.
func NewCache(capacity int, ttl time.Duration) *Cache {
	return &Cache{
		entries:  make(map[string]cacheEntry, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

func (c *Cache) Get(key string) (Outcome, bool) {
	if c == nil {
		return Outcome{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		if ok {
			delete(c.entries, key)
		}
		c.stats.Misses++
		return Outcome{}, false
	}
	c.stats.Hits++
	return e.outcome, true
}

func (c *Cache) Put(key string, o Outcome) {
	if c == nil || c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[key] = cacheEntry{outcome: o, expiresAt: time.Now().Add(c.ttl)}
}

// evictLocked drops expired entries, then the oldest entry if still full.
func (c *Cache) evictLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			c.stats.Evictions++
		}
	}
	if len(c.entries) < c.capacity {
		return
	}
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	delete(c.entries, oldestKey)
	c.stats.Evictions++
}

// Purge empties the cache. Called at snapshot reload boundaries.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry, c.capacity)
}

func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
