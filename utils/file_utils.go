package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func IsImageFile(filePath string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filePath))]
}

func ValidateImageFile(filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}

	if !IsImageFile(filePath) {
		return fmt.Errorf("file is not a supported image: %s", filePath)
	}

	// Extensions lie; sniff the leading bytes too.
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	head := make([]byte, 261)
	n, _ := file.Read(head)
	if !filetype.IsImage(head[:n]) {
		return fmt.Errorf("file content is not an image: %s", filePath)
	}

	return nil
}

func NormalizePath(filePath string) string {
	if abs, err := filepath.Abs(filePath); err == nil {
		filePath = abs
	}
	return filepath.Clean(filePath)
}

func ListImages(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	images := make([]string, 0)
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		if IsImageFile(item.Name()) {
			images = append(images, filepath.Join(dir, item.Name()))
		}
	}

	sort.Strings(images)
	return images, nil
}
