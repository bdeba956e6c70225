package cache

import "github.com/AndrewEC/ImageViewer/utils"

// Kind distinguishes full-resolution entries from thumbnail entries.
// The two kinds of decode for the same file are cached independently.
type Kind int

const (
	FullImage Kind = iota
	Thumbnail
)

func (k Kind) String() string {
	switch k {
	case FullImage:
		return "full"
	case Thumbnail:
		return "thumbnail"
	default:
		return "unknown"
	}
}

// Key identifies one cached decode result. Keys are comparable and used
// directly as map keys; two keys are equal iff kind and path both match.
type Key struct {
	Kind Kind
	Path string
}

// NewKey builds a key from a raw path, normalizing it so that different
// spellings of the same file collapse to one entry.
func NewKey(kind Kind, path string) Key {
	return Key{Kind: kind, Path: utils.NormalizePath(path)}
}
