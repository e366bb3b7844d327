package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched page is reused
const DefaultCacheTTL = 15 * time.Minute

type cacheEntry struct {
	result  *Result
	expires time.Time
}

// Cache wraps URL with an in-memory, TTL-bounded page cache so repeated
// job description lookups for the same posting hit the network once.
// Only successful fetches are cached.
type Cache struct {
	ttl     time.Duration
	options *Options
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache creates a cache. A non-positive ttl uses DefaultCacheTTL.
func NewCache(ttl time.Duration, opts *Options) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		options: opts,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch returns a cached copy of urlStr when fresh, otherwise fetches and stores it.
// The bool reports a cache hit.
func (c *Cache) Fetch(ctx context.Context, urlStr string) (*Result, bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[urlStr]
	if ok && c.now().Before(entry.expires) {
		c.mu.Unlock()
		copied := *entry.result
		return &copied, true, nil
	}
	c.mu.Unlock()

	result, err := URL(ctx, urlStr, c.options)
	if err != nil {
		return result, false, err
	}

	c.mu.Lock()
	c.entries[urlStr] = cacheEntry{result: result, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()

	copied := *result
	return &copied, false, nil
}

// Invalidate drops a cached page
func (c *Cache) Invalidate(urlStr string) {
	c.mu.Lock()
	delete(c.entries, urlStr)
	c.mu.Unlock()
}

// Len returns the number of cached pages, expired ones included
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
