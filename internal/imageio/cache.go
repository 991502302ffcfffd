package imageio

import (
	"sync"

	"affine-warp/internal/raster"
)

// Cache is a concurrency-safe cache of decoded images keyed by path. Cached
// buffers are shared; callers must not modify them.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	opts  LoadOptions
}

type cacheEntry struct {
	buf *raster.PixelBuffer
	err error
}

// NewCache creates an empty cache that decodes with opts.
func NewCache(opts LoadOptions) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		opts:  opts,
	}
}

// Load returns the decoded image at path, decoding it on first use. Decode
// failures are cached too.
func (c *Cache) Load(path string) (*raster.PixelBuffer, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.buf, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	buf, err := Load(path, c.opts)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.buf, entry.err
	}
	c.items[path] = &cacheEntry{buf: buf, err: err}
	return buf, err
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
