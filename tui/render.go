package tui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Renderer draws decoded images into the terminal using the kitty graphics
// protocol. When the protocol is unavailable it falls back to a text
// summary of the image.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderAsync encodes and displays the image off the update loop, emitting
// an ImageRenderedMsg when done or when rendering times out.
func (r *Renderer) RenderAsync(filePath string, img image.Image) tea.Cmd {
	return func() tea.Msg {
		result := make(chan ImageRenderedMsg, 1)

		go func() {
			defer func() {
				if rec := recover(); rec != nil {
					result <- ImageRenderedMsg{
						FilePath: filePath,
						Content:  fmt.Sprintf("Image rendering panicked: %v", rec),
						Error:    fmt.Errorf("panic: %v", rec),
					}
				}
			}()

			result <- r.render(filePath, img)
		}()

		select {
		case msg := <-result:
			return msg
		case <-time.After(3 * time.Second):
			return ImageRenderedMsg{
				FilePath: filePath,
				Content:  describeImage(filePath, img) + " (rendering timed out)",
				Error:    fmt.Errorf("rendering timed out"),
			}
		}
	}
}

func (r *Renderer) render(filePath string, img image.Image) ImageRenderedMsg {
	if img == nil {
		return ImageRenderedMsg{
			FilePath: filePath,
			Content:  CreatePlaceholder(filePath),
		}
	}

	if !isKittySupported() {
		return ImageRenderedMsg{
			FilePath: filePath,
			Content:  describeImage(filePath, img) + " (Kitty protocol not supported)",
		}
	}

	return r.renderWithKittyIcat(filePath, img)
}

func (r *Renderer) renderWithKittyIcat(filePath string, img image.Image) ImageRenderedMsg {
	if err := clearKittyImages(); err != nil {
		logrus.Debugf("Failed to clear kitty images: %v", err)
	}

	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("imageviewer-%d.png", time.Now().UnixNano()))

	file, err := os.Create(tmpFile)
	if err != nil {
		return ImageRenderedMsg{FilePath: filePath, Content: "Failed to create temp file", Error: err}
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return ImageRenderedMsg{FilePath: filePath, Content: "Failed to encode image", Error: err}
	}
	file.Close()
	defer os.Remove(tmpFile)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "kitty", "+kitten", "icat",
		"--transfer-mode=file",
		"--scale-up",
		tmpFile)

	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return ImageRenderedMsg{
			FilePath: filePath,
			Content:  fmt.Sprintf("Failed to open /dev/tty: %v", err),
			Error:    err,
		}
	}
	defer tty.Close()

	var stderr bytes.Buffer
	cmd.Stdout = tty
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return ImageRenderedMsg{
				FilePath: filePath,
				Content:  "Image rendering timed out",
				Error:    fmt.Errorf("kitty +kitten icat timed out"),
			}
		}

		errMsg := stderr.String()
		if errMsg == "" {
			errMsg = err.Error()
		}
		return ImageRenderedMsg{
			FilePath: filePath,
			Content:  fmt.Sprintf("kitty +kitten icat failed: %s", errMsg),
			Error:    err,
		}
	}

	return ImageRenderedMsg{
		FilePath: filePath,
		Content:  describeImage(filePath, img),
		IsKitty:  true,
	}
}

func describeImage(filePath string, img image.Image) string {
	if img == nil {
		return filepath.Base(filePath)
	}
	bounds := img.Bounds()
	return fmt.Sprintf("%s  %dx%d", filepath.Base(filePath), bounds.Dx(), bounds.Dy())
}

func clearKittyImages() error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open /dev/tty: %w", err)
	}
	defer tty.Close()

	deleteCmd := "\x1b_Ga=d,d=A\x1b\\"

	if _, err = tty.Write([]byte(deleteCmd)); err != nil {
		return fmt.Errorf("failed to write delete command: %w", err)
	}

	return nil
}

func isKittySupported() bool {
	if os.Getenv("IMAGEVIEWER_DISABLE_KITTY") == "1" {
		return false
	}

	if os.Getenv("IMAGEVIEWER_FORCE_KITTY") == "1" {
		return true
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "kitty") || term == "xterm-kitty" {
		return true
	}

	termProgram := os.Getenv("TERM_PROGRAM")
	if termProgram == "kitty" || termProgram == "WezTerm" {
		return true
	}

	return os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("KITTY_PID") != ""
}

func CreatePlaceholder(filePath string) string {
	if filePath == "" {
		return "No image selected"
	}
	return fmt.Sprintf("Unable to display %s", filepath.Base(filePath))
}
