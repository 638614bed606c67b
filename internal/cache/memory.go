package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps provider query results in process memory. Entries
// expire individually, so a long-lived server never serves stale search
// results past their TTL.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache builds a cache whose expired entries are swept every
// cleanupInterval. A zero interval disables the sweeper, which suits
// short-lived CLI runs.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached bytes for key, if present and unexpired
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores value under key for ttl, replacing any earlier entry
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete evicts a single key
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear drops every cached entry
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
