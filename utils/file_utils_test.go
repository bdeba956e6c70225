package utils

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("photo.jpg"))
	assert.True(t, IsImageFile("photo.JPEG"))
	assert.True(t, IsImageFile("/some/dir/pic.png"))
	assert.True(t, IsImageFile("anim.gif"))
	assert.False(t, IsImageFile("song.mp3"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("noextension"))
}

func TestValidateImageFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "real.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	file.Close()

	assert.NoError(t, ValidateImageFile(path))
	assert.Error(t, ValidateImageFile(filepath.Join(dir, "missing.png")))

	// Right extension, wrong content.
	fake := filepath.Join(dir, "fake.png")
	require.NoError(t, os.WriteFile(fake, []byte("plain text"), 0644))
	assert.Error(t, ValidateImageFile(fake))
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	images, err := ListImages(dir)
	require.NoError(t, err)

	require.Len(t, images, 2)
	assert.Equal(t, filepath.Join(dir, "a.jpg"), images[0])
	assert.Equal(t, filepath.Join(dir, "b.png"), images[1])
}

func TestNormalizePath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "a.png"), NormalizePath(filepath.Join(dir, "sub", "..", "a.png")))
	assert.True(t, filepath.IsAbs(NormalizePath("relative.png")))
}
