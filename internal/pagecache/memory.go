package pagecache

import "sync"

// MemoryCache is an in-memory implementation of the Cache interface.
// It uses a map for storage and provides thread-safe operations via RWMutex.
//
// The cache is unbounded and lives only as long as its owner; nothing is
// persisted and nothing expires.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryCache creates a new in-memory cache instance.
// The cache is initialized empty and ready for use.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]string),
	}
}

// Get retrieves a page from the cache by URL.
// This method is thread-safe for concurrent reads.
func (c *MemoryCache) Get(url string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	html, exists := c.data[url]
	return html, exists
}

// Put stores a page in the cache.
// This method is thread-safe for concurrent writes.
// If the URL already exists, the page is overwritten.
func (c *MemoryCache) Put(url string, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[url] = html
}

// Dump returns a copy of every cached entry.
// Mutating the returned map does not affect the cache.
func (c *MemoryCache) Dump() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.data))
	for url, html := range c.data {
		out[url] = html
	}
	return out
}

// Clear removes all entries from the cache.
// This method is primarily useful for testing.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]string)
}

// Size returns the number of entries in the cache.
// This method is primarily useful for testing and diagnostics.
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}

var (
	_ Cache     = (*MemoryCache)(nil)
	_ Inspector = (*MemoryCache)(nil)
)
