package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, width, height int, encode func(*os.File, image.Image) error) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, encode(file, img))
}

func encodePNG(f *os.File, img image.Image) error {
	return png.Encode(f, img)
}

func encodeJPEG(f *os.File, img image.Image) error {
	return jpeg.Encode(f, img, nil)
}

func TestDecodeFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.png")
	writeImage(t, path, 320, 240, encodePNG)

	frame, err := DecodeFull(path)
	require.NoError(t, err)

	assert.Equal(t, 320, frame.Bounds().Dx())
	assert.Equal(t, 240, frame.Bounds().Dy())
	assert.Equal(t, "png", frame.Format())
	assert.Equal(t, path, frame.Path())
	require.NotNil(t, frame.Image())
}

func TestDecodeFullJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.jpg")
	writeImage(t, path, 64, 48, encodeJPEG)

	frame, err := DecodeFull(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", frame.Format())
	assert.Equal(t, 64, frame.Bounds().Dx())
}

func TestDecodeThumbnailDownscales(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writeImage(t, path, 800, 600, encodePNG)

	frame, err := DecodeThumbnail(path, 200)
	require.NoError(t, err)

	bounds := frame.Bounds()
	assert.Equal(t, 200, bounds.Dx())
	assert.Equal(t, 150, bounds.Dy(), "aspect ratio preserved")
}

func TestDecodeThumbnailKeepsSmallImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.png")
	writeImage(t, path, 120, 90, encodePNG)

	frame, err := DecodeThumbnail(path, 200)
	require.NoError(t, err)
	assert.Equal(t, 120, frame.Bounds().Dx(), "no upscaling")
}

func TestDecodeThumbnailDefaultsWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writeImage(t, path, 600, 300, encodePNG)

	frame, err := DecodeThumbnail(path, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultThumbnailWidth, frame.Bounds().Dx())
}

func TestDecodeMissingFile(t *testing.T) {
	frame, err := DecodeFull(filepath.Join(t.TempDir(), "nope.png"))
	assert.Nil(t, frame)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeCorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := DecodeFull(path)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)

	_, err = DecodeThumbnail(path, 200)
	require.ErrorAs(t, err, &decodeErr)
}

func TestFrameRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writeImage(t, path, 10, 10, encodePNG)

	frame, err := DecodeFull(path)
	require.NoError(t, err)
	require.False(t, frame.Released())

	require.NoError(t, frame.Release())
	assert.True(t, frame.Released())
	assert.Nil(t, frame.Image(), "pixel data is gone after release")
	assert.Equal(t, image.Rectangle{}, frame.Bounds())

	// A second release fails but is reportable, not fatal.
	err = frame.Release()
	var releaseErr *ReleaseError
	require.ErrorAs(t, err, &releaseErr)
}
