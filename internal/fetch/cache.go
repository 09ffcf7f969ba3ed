package fetch

import (
	"sync"
	"time"
)

// Cache is an in-memory page cache with TTL. It keeps the all-meets
// crawl from refetching the same date pages within one run.
type Cache struct {
	mu       sync.Mutex
	pages    map[string][]byte
	cachedAt map[string]time.Time
	ttl      time.Duration
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		pages:    make(map[string][]byte),
		cachedAt: make(map[string]time.Time),
		ttl:      ttl,
	}
}

// Get retrieves a cached page if present and not expired.
func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	body, exists := c.pages[url]
	if !exists {
		return nil, false
	}

	if time.Since(c.cachedAt[url]) > c.ttl {
		delete(c.pages, url)
		delete(c.cachedAt, url)
		return nil, false
	}

	return body, true
}

// Set stores a page body.
func (c *Cache) Set(url string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages[url] = body
	c.cachedAt[url] = time.Now()
}

// CleanExpired removes expired entries and reports how many were removed.
func (c *Cache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := time.Now()
	for url, cachedTime := range c.cachedAt {
		if now.Sub(cachedTime) > c.ttl {
			delete(c.pages, url)
			delete(c.cachedAt, url)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached pages.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}
