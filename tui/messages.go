package tui

import "image"

type Mode int

const (
	FileBrowserMode Mode = iota
	ViewerMode
	SlideshowMode
	HelpMode
)

type ImageLoadedMsg struct {
	FilePath string
	Image    image.Image
}

type ThumbnailLoadedMsg struct {
	FilePath string
	Image    image.Image
}

type ImageRenderedMsg struct {
	FilePath string
	Content  string
	IsKitty  bool
	Error    error
}

type SlideshowTickMsg struct{}

type StatusTickMsg struct{}
