// Package cache wraps github.com/segmentio/datastructures/v2/cache's
// generic LRU cache with a fixed capacity, giving the storage layer a page
// read-cache with hit/miss/eviction counters for free. It generalizes the
// hand-rolled LRU chirst-cdb keeps in its own pager/cache package into a
// bounded cache backed by a maintained library, while keeping the same
// capacity-based eviction policy.
package cache

import sdcache "github.com/segmentio/datastructures/v2/cache"

// PageCache caches raw page bytes keyed by page ID, evicting the least
// recently used entry once maxSize is exceeded.
type PageCache struct {
	backend sdcache.Cache[uint32, []byte]
	maxSize int
}

// New creates a PageCache holding at most maxSize entries.
func New(maxSize int) *PageCache {
	c := &PageCache{maxSize: maxSize}
	c.backend.Init(new(sdcache.LRU[uint32, []byte]))
	return c
}

// Get returns the cached bytes for id, if present.
func (c *PageCache) Get(id uint32) ([]byte, bool) {
	return c.backend.Lookup(id)
}

// Add inserts or updates the cached bytes for id, evicting the least
// recently used entry first if the cache is already at capacity.
func (c *PageCache) Add(id uint32, content []byte) {
	if _, replaced := c.backend.Insert(id, content); !replaced && c.backend.Len() > c.maxSize {
		c.backend.Evict()
	}
}

// Remove drops id from the cache, if present. Called whenever a page is
// rewritten so stale bytes are never served back to a caller.
func (c *PageCache) Remove(id uint32) {
	c.backend.Delete(id)
}

// Stats reports cache usage, surfaced by the stats CLI.
func (c *PageCache) Stats() sdcache.Stats {
	return c.backend.Stats()
}
