package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// DefaultThumbnailWidth bounds thumbnail decodes when no width is configured.
const DefaultThumbnailWidth = 200

type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeFull reads and decodes the image at path at native resolution.
// It is stateless and safe to call from any number of goroutines.
func DecodeFull(path string) (*Frame, error) {
	img, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return newFrame(img, format, path), nil
}

// DecodeThumbnail reads and decodes the image at path, downscaling so its
// width does not exceed targetWidth while preserving aspect ratio.
// Thumbnails favor speed over fidelity, so scaling uses a cheap filter.
func DecodeThumbnail(path string, targetWidth int) (*Frame, error) {
	if targetWidth <= 0 {
		targetWidth = DefaultThumbnailWidth
	}

	img, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() <= targetWidth {
		return newFrame(img, format, path), nil
	}

	height := bounds.Dy() * targetWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, targetWidth, height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)

	return newFrame(scaled, format, path), nil
}

func decodeFile(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}

	return img, format, nil
}
