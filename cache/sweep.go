package cache

import "time"

// startSweeper launches the background goroutine that reclaims idle
// entries. It is a no-op when the sweep interval is disabled; the cache
// then relies on the count bound alone.
func (c *ImageCache) startSweeper() {
	if c.sweepInterval <= 0 {
		return
	}

	ticker := time.NewTicker(c.sweepInterval)

	go func() {
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
}

// sweep evicts every entry that has gone unaccessed past the idle TTL.
// It takes the same mutex as the request path, so a pass is atomic with
// respect to concurrent probes and inserts.
func (c *ImageCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}

	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.lastAccessed) > c.idleTTL {
			delete(c.entries, key)
			c.release(e.frame)
			c.stats.Expired++
			c.log.WithField("path", key.Path).WithField("kind", key.Kind.String()).
				Debug("Swept idle cache entry")
		}
	}
}
