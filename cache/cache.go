package cache

import (
	"image"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AndrewEC/ImageViewer/imaging"
)

const (
	// DefaultIdleTTL is how long an unaccessed entry survives.
	DefaultIdleTTL = 5 * time.Minute
	// DefaultSweepInterval is how often idle entries are reclaimed.
	DefaultSweepInterval = 2 * time.Minute
	// DefaultMaxFullImages bounds the count of full-resolution entries.
	DefaultMaxFullImages = 30
)

// ImageCache retains decoded images keyed by (kind, path) so that repeated
// requests for the same file do not decode it again. Entries expire after
// going unaccessed for the idle TTL; full-resolution entries are
// additionally count-bounded, with the least recently accessed one evicted
// to make room. A single mutex guards the whole map: probe, insert, evict
// and sweep all serialize on it, while decoding always happens outside it.
//
// The cache exclusively owns every frame it retains. Callers get the
// decoded image for the duration of a single use and must re-request it on
// each redraw rather than hold on to it.
type ImageCache struct {
	mu      sync.Mutex
	entries map[Key]*entry

	idleTTL       time.Duration
	sweepInterval time.Duration
	maxFullImages int
	thumbWidth    int

	decodeFull      func(path string) (*imaging.Frame, error)
	decodeThumbnail func(path string, targetWidth int) (*imaging.Frame, error)

	now      func() time.Time
	stopChan chan struct{}
	disposed bool
	stats    Stats
	log      *logrus.Entry
}

type entry struct {
	frame        *imaging.Frame
	lastAccessed time.Time
	createdAt    time.Time
}

// New creates an image cache and starts its background sweep. The caller
// owns the cache for the life of the process and must Close it on shutdown.
func New(opts ...Option) *ImageCache {
	c := &ImageCache{
		entries:         make(map[Key]*entry),
		idleTTL:         DefaultIdleTTL,
		sweepInterval:   DefaultSweepInterval,
		maxFullImages:   DefaultMaxFullImages,
		thumbWidth:      imaging.DefaultThumbnailWidth,
		decodeFull:      imaging.DecodeFull,
		decodeThumbnail: imaging.DecodeThumbnail,
		now:             time.Now,
		stopChan:        make(chan struct{}),
		log:             logrus.WithField("component", "cache"),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.startSweeper()

	return c
}

// LoadThumbnail returns a width-bounded decode of the image at path,
// decoding and caching it on first request. A nil result means no image is
// available (empty path or failed decode) and the caller should render its
// placeholder instead.
func (c *ImageCache) LoadThumbnail(path string) image.Image {
	return c.load(Thumbnail, path)
}

// LoadFullImage is LoadThumbnail at native resolution.
func (c *ImageCache) LoadFullImage(path string) image.Image {
	return c.load(FullImage, path)
}

func (c *ImageCache) load(kind Kind, path string) image.Image {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	key := NewKey(kind, path)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.lastAccessed = c.now()
		c.stats.Hits++
		img := e.frame.Image()
		c.mu.Unlock()
		return img
	}
	c.stats.Misses++
	c.mu.Unlock()

	// Decode outside the lock; disk I/O and decompression must never
	// hold up other callers probing the map.
	frame, err := c.decode(kind, key.Path)
	if err != nil {
		// Failures are never cached, so the next request retries.
		c.log.WithField("path", key.Path).WithField("kind", kind.String()).
			WithError(err).Warn("Image decode failed")
		return nil
	}

	return c.insert(key, frame)
}

func (c *ImageCache) decode(kind Kind, path string) (*imaging.Frame, error) {
	if kind == Thumbnail {
		return c.decodeThumbnail(path, c.thumbWidth)
	}
	return c.decodeFull(path)
}

// insert retains a freshly decoded frame, unless a concurrent request for
// the same key got there first, in which case the new frame is redundant
// and released on the spot. At most one entry per key survives.
func (c *ImageCache) insert(key Key, frame *imaging.Frame) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		c.release(frame)
		return nil
	}

	if winner, ok := c.entries[key]; ok {
		//lost the decode race; keep the first entry
		c.release(frame)
		winner.lastAccessed = c.now()
		return winner.frame.Image()
	}

	if key.Kind == FullImage && c.maxFullImages > 0 && c.countLocked(FullImage) >= c.maxFullImages {
		c.evictOldestLocked(FullImage)
	}

	now := c.now()
	c.entries[key] = &entry{frame: frame, lastAccessed: now, createdAt: now}
	return frame.Image()
}

func (c *ImageCache) countLocked(kind Kind) int {
	n := 0
	for key := range c.entries {
		if key.Kind == kind {
			n++
		}
	}
	return n
}

// evictOldestLocked removes the entry of the given kind with the smallest
// lastAccessed timestamp, releasing its frame. Ties go to whichever the
// map iteration finds first.
func (c *ImageCache) evictOldestLocked(kind Kind) {
	var oldestKey Key
	var oldest *entry

	for key, e := range c.entries {
		if key.Kind != kind {
			continue
		}
		if oldest == nil || e.lastAccessed.Before(oldest.lastAccessed) {
			oldestKey = key
			oldest = e
		}
	}

	if oldest == nil {
		return
	}

	delete(c.entries, oldestKey)
	c.release(oldest.frame)
	c.stats.Evictions++
	c.log.WithField("path", oldestKey.Path).Debug("Evicted oldest full image")
}

// release frees a frame's pixel data. A release failure is diagnostic
// only; it must never abort the eviction or shutdown that triggered it.
func (c *ImageCache) release(frame *imaging.Frame) {
	if err := frame.Release(); err != nil {
		c.log.WithError(err).Warn("Failed to release decoded image")
	}
}

// Len reports the number of live entries.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Invalidate drops the entries for a path, both kinds, releasing their
// frames. Used when a file changes on disk mid-session.
func (c *ImageCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, kind := range []Kind{FullImage, Thumbnail} {
		key := NewKey(kind, path)
		if e, ok := c.entries[key]; ok {
			delete(c.entries, key)
			c.release(e.frame)
		}
	}
}

// Close stops the background sweep and releases every retained frame.
// Closing twice is a no-op, and an insert racing with Close will find the
// disposed flag set and release its own frame instead of retaining it.
func (c *ImageCache) Close() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true

	for key, e := range c.entries {
		delete(c.entries, key)
		c.release(e.frame)
	}
	c.mu.Unlock()

	close(c.stopChan)
}
