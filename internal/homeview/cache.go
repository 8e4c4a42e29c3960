// cache.go provides an in-memory cache for composed anonymous home views.
// Anonymous traffic dominates the landing page and always sees the same
// payload for a given page/size, so the composed result is kept until a
// category or nav mutation invalidates it. Authenticated views bypass the
// cache entirely.
package homeview

import (
	"log/slog"
	"sync"
)

type viewKey struct {
	page int
	size int
}

// Cache is a concurrency-safe cache of anonymous home payloads keyed by
// pagination parameters.
type Cache struct {
	mu      sync.RWMutex
	entries map[viewKey][]Root
}

// NewCache creates an empty home-view cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[viewKey][]Root)}
}

// Get retrieves a cached payload. The second return is false on miss.
func (c *Cache) Get(page, size int) ([]Root, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roots, ok := c.entries[viewKey{page: page, size: size}]
	return roots, ok
}

// Put stores a composed payload.
func (c *Cache) Put(page, size int, roots []Root) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[viewKey{page: page, size: size}] = roots
	slog.Debug("home view cached", "page", page, "size", size, "size_total", len(c.entries))
}

// Invalidate drops every cached payload. Called after any category or nav
// mutation, since either can change what the home view shows.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return
	}
	c.entries = make(map[viewKey][]Root)
	slog.Debug("home view cache invalidated")
}
