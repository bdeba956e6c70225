package cache

// Stats tracks cache effectiveness. Counters are protected by the cache
// mutex and returned by value as a snapshot.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Expired   uint64
}

func (c *ImageCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
