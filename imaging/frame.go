package imaging

import (
	"fmt"
	"image"
	"sync"
)

// Frame owns the pixel data produced by a single decode. The owner must
// call Release exactly once when the frame is no longer needed; the image
// must not be used after that.
type Frame struct {
	mu       sync.Mutex
	img      image.Image
	format   string
	path     string
	released bool
}

type ReleaseError struct {
	Path string
}

func (e *ReleaseError) Error() string {
	return fmt.Sprintf("frame for %s already released", e.Path)
}

func newFrame(img image.Image, format, path string) *Frame {
	return &Frame{img: img, format: format, path: path}
}

// Image returns the decoded image, or nil if the frame has been released.
func (f *Frame) Image() image.Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.released {
		return nil
	}
	return f.img
}

func (f *Frame) Format() string {
	return f.format
}

func (f *Frame) Path() string {
	return f.path
}

// Bounds returns the image dimensions, or the zero rectangle after release.
func (f *Frame) Bounds() image.Rectangle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.released {
		return image.Rectangle{}
	}
	return f.img.Bounds()
}

// Release drops the pixel data. Releasing twice returns a ReleaseError.
func (f *Frame) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.released {
		return &ReleaseError{Path: f.path}
	}
	f.released = true
	f.img = nil
	return nil
}

// Released reports whether Release has been called.
func (f *Frame) Released() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}
