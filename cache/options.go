package cache

import "time"

// Option configures an ImageCache at construction time.
type Option func(*ImageCache)

// WithIdleTTL sets how long an entry may go unaccessed before the sweep
// may evict it.
func WithIdleTTL(d time.Duration) Option {
	return func(c *ImageCache) {
		if d > 0 {
			c.idleTTL = d
		}
	}
}

// WithMaxFullImages bounds the number of retained full-resolution entries.
// Thumbnails are small and bounded by TTL alone.
func WithMaxFullImages(n int) Option {
	return func(c *ImageCache) {
		if n > 0 {
			c.maxFullImages = n
		}
	}
}

// WithSweepInterval sets how often the background sweep runs. A zero or
// negative interval disables the sweep entirely.
func WithSweepInterval(d time.Duration) Option {
	return func(c *ImageCache) {
		c.sweepInterval = d
	}
}

// WithThumbnailWidth sets the pixel width thumbnail decodes are bounded to.
func WithThumbnailWidth(w int) Option {
	return func(c *ImageCache) {
		if w > 0 {
			c.thumbWidth = w
		}
	}
}
