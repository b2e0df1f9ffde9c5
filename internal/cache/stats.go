package cache

// Stats is a point-in-time snapshot of the cache counters.
type Stats struct {
	Hits      uint64 // Get found the key
	Misses    uint64 // Get did not find the key
	Evictions uint64 // entries dropped to make room
	Rejected  uint64 // Set calls refused as oversized or as a duplicate insert
}

// Stats returns the counters accumulated since New.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
