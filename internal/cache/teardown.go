package cache

// Close releases every cached value and prevents further writes.
//
// After Close, Set returns ErrClosed, Get misses and Size is 0. Close is
// safe to call multiple times. It takes the cache lock, but callers should
// still make sure no other goroutine is using the cache when it is closed.
func (c *Cache[K, V]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.evictAllLocked()
	return nil
}

// evictAllLocked drops every entry without counting evictions.
func (c *Cache[K, V]) evictAllLocked() {
	clear(c.items)
	c.lru.reset()
	c.weight = 0
}
