package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/AndrewEC/ImageViewer/cache"
	"github.com/AndrewEC/ImageViewer/config"
)

type App struct {
	fileBrowser *FileBrowser
	renderer    *Renderer
	images      *cache.ImageCache
	theme       *Theme
	config      *config.Config

	currentMode  Mode
	previousMode Mode

	viewerImages  []FileEntry
	viewerIndex   int
	viewerContent string
	viewerPath    string

	slideshowOn   bool
	statusMessage string
	isLoading     bool

	width  int
	height int
}

func NewApp(cfg *config.Config, images *cache.ImageCache) *App {
	return &App{
		fileBrowser: NewFileBrowser(cfg.DefaultDirectory, cfg.ShowHiddenFiles),
		renderer:    NewRenderer(),
		images:      images,
		theme:       DefaultTheme(),
		config:      cfg,
		currentMode: FileBrowserMode,
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if cmd := a.handleKeyPress(msg.String()); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ImageLoadedMsg:
		a.isLoading = false
		if msg.FilePath != a.viewerPath {
			// stale load from a previous selection; drop it
			break
		}
		if msg.Image == nil {
			a.viewerContent = CreatePlaceholder(msg.FilePath)
			break
		}
		cmds = append(cmds, a.renderer.RenderAsync(msg.FilePath, msg.Image))

	case ThumbnailLoadedMsg:
		a.isLoading = false
		if msg.Image == nil {
			a.statusMessage = CreatePlaceholder(msg.FilePath)
		} else {
			a.statusMessage = describeImage(msg.FilePath, msg.Image)
		}

	case ImageRenderedMsg:
		if msg.Error != nil {
			logrus.Debugf("Render failed for %s: %v", msg.FilePath, msg.Error)
		}
		if msg.FilePath == a.viewerPath {
			a.viewerContent = msg.Content
		}

	case SlideshowTickMsg:
		if a.currentMode == SlideshowMode && a.slideshowOn {
			a.advanceViewer(1)
			cmds = append(cmds, a.loadCurrentImage(), a.slideshowTick())
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKeyPress(key string) tea.Cmd {
	switch a.currentMode {
	case FileBrowserMode:
		return a.handleBrowserKey(key)
	case ViewerMode, SlideshowMode:
		return a.handleViewerKey(key)
	case HelpMode:
		a.currentMode = a.previousMode
		return nil
	}
	return nil
}

func (a *App) handleBrowserKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit

	case "up", "k":
		a.fileBrowser.MoveUp()
		return a.previewSelection()

	case "down", "j":
		a.fileBrowser.MoveDown()
		return a.previewSelection()

	case "pgup":
		a.fileBrowser.PageUp(a.pageSize())
		return a.previewSelection()

	case "pgdown":
		a.fileBrowser.PageDown(a.pageSize())
		return a.previewSelection()

	case "enter":
		if selected := a.fileBrowser.GetSelectedFile(); selected != nil {
			return a.openViewer(selected.Path)
		}
		if err := a.fileBrowser.Navigate(); err != nil {
			a.statusMessage = "Failed to open directory: " + err.Error()
		}
		return nil

	case "s":
		return a.startSlideshow()

	case "h":
		a.fileBrowser.ToggleHidden()
		return nil

	case "?":
		a.previousMode = a.currentMode
		a.currentMode = HelpMode
		return nil
	}
	return nil
}

func (a *App) handleViewerKey(key string) tea.Cmd {
	switch key {
	case "q", "esc":
		a.slideshowOn = false
		a.currentMode = FileBrowserMode
		a.viewerContent = ""
		a.viewerPath = ""
		return nil

	case "ctrl+c":
		return tea.Quit

	case "right", "l", "down", "j":
		a.advanceViewer(1)
		return a.loadCurrentImage()

	case "left", "h", "up", "k":
		a.advanceViewer(-1)
		return a.loadCurrentImage()

	case "s":
		if a.currentMode == SlideshowMode {
			a.slideshowOn = false
			a.currentMode = ViewerMode
			return nil
		}
		a.currentMode = SlideshowMode
		a.slideshowOn = true
		return a.slideshowTick()

	case "?":
		a.previousMode = a.currentMode
		a.currentMode = HelpMode
		return nil
	}
	return nil
}

// openViewer enters viewer mode on the selected image, remembering the
// directory's image list so the arrow keys can step through it.
func (a *App) openViewer(path string) tea.Cmd {
	a.viewerImages = a.fileBrowser.GetImages()
	a.viewerIndex = 0
	for i, entry := range a.viewerImages {
		if entry.Path == path {
			a.viewerIndex = i
			break
		}
	}

	a.currentMode = ViewerMode
	return a.loadCurrentImage()
}

func (a *App) startSlideshow() tea.Cmd {
	images := a.fileBrowser.GetImages()
	if len(images) == 0 {
		a.statusMessage = "No images in this directory"
		return nil
	}

	a.viewerImages = images
	a.viewerIndex = 0
	a.currentMode = SlideshowMode
	a.slideshowOn = true
	return tea.Batch(a.loadCurrentImage(), a.slideshowTick())
}

func (a *App) advanceViewer(delta int) {
	if len(a.viewerImages) == 0 {
		return
	}
	a.viewerIndex = (a.viewerIndex + delta + len(a.viewerImages)) % len(a.viewerImages)
}

// loadCurrentImage requests the full-resolution image from the cache on a
// background goroutine; the update loop stays responsive while the decode
// (if any) runs.
func (a *App) loadCurrentImage() tea.Cmd {
	if len(a.viewerImages) == 0 {
		return nil
	}

	path := a.viewerImages[a.viewerIndex].Path
	a.viewerPath = path
	a.viewerContent = ""
	a.isLoading = true

	return func() tea.Msg {
		return ImageLoadedMsg{FilePath: path, Image: a.images.LoadFullImage(path)}
	}
}

// previewSelection warms the thumbnail for the highlighted image so that
// opening it, or showing it in the status line, is instant.
func (a *App) previewSelection() tea.Cmd {
	selected := a.fileBrowser.GetSelectedFile()
	if selected == nil {
		a.statusMessage = ""
		return nil
	}

	path := selected.Path
	return func() tea.Msg {
		return ThumbnailLoadedMsg{FilePath: path, Image: a.images.LoadThumbnail(path)}
	}
}

func (a *App) slideshowTick() tea.Cmd {
	interval := time.Duration(a.config.SlideshowIntervalSeconds) * time.Second
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return SlideshowTickMsg{}
	})
}

func (a *App) pageSize() int {
	if a.height > 8 {
		return a.height - 8
	}
	return 10
}

func (a *App) View() string {
	if a.width < 40 || a.height < 10 {
		return "Terminal too small. Minimum size: 40x10"
	}

	switch a.currentMode {
	case FileBrowserMode:
		return a.browserView()
	case ViewerMode, SlideshowMode:
		return a.viewerView()
	case HelpMode:
		return a.helpView()
	}
	return ""
}

func (a *App) browserView() string {
	var b strings.Builder

	b.WriteString(a.theme.HeaderStyle.Render(" ImageViewer ") + " " +
		a.theme.MutedTextStyle.Render(a.fileBrowser.GetCurrentDir()))
	b.WriteString("\n\n")

	entries := a.fileBrowser.GetEntries()
	selectedIndex := a.fileBrowser.GetSelectedIndex()

	start, end := visibleWindow(len(entries), selectedIndex, a.pageSize())
	for i := start; i < end; i++ {
		entry := entries[i]

		icon := IconImage
		if entry.IsDir {
			icon = IconFolder
		}

		line := fmt.Sprintf("%s %s", icon, entry.Name)
		if entry.IsImage && a.config.ShowFileSize {
			line += "  " + a.theme.MutedTextStyle.Render(formatFileSize(entry.Size))
		}

		if i == selectedIndex {
			b.WriteString(a.theme.SelectedItemStyle.Render(IconArrowRight + " " + line))
		} else {
			b.WriteString("  " + a.theme.NormalTextStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.statusMessage != "" {
		b.WriteString(a.theme.StatusBarStyle.Render(a.statusMessage) + "\n")
	}
	b.WriteString(a.theme.HelpStyle.Render("enter: open  s: slideshow  h: hidden  ?: help  q: quit"))

	return b.String()
}

func (a *App) viewerView() string {
	var b strings.Builder

	title := " Viewing "
	if a.currentMode == SlideshowMode {
		title = " Slideshow "
	}

	position := fmt.Sprintf("%d/%d", a.viewerIndex+1, len(a.viewerImages))
	b.WriteString(a.theme.HeaderStyle.Render(title) + " " +
		a.theme.MutedTextStyle.Render(filepath.Base(a.viewerPath)+"  "+position))
	b.WriteString("\n\n")

	content := a.viewerContent
	if a.isLoading && content == "" {
		content = "Loading..."
	}
	b.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(content))

	b.WriteString("\n\n")
	b.WriteString(a.theme.HelpStyle.Render("←/→: prev/next  s: slideshow  esc: back  ctrl+c: quit"))

	return b.String()
}

func (a *App) helpView() string {
	lines := []string{
		a.theme.TitleStyle.Render("ImageViewer Help"),
		"",
		KeyHelp("↑/↓", "move selection", a.theme),
		KeyHelp("enter", "open directory or view image", a.theme),
		KeyHelp("←/→", "previous/next image while viewing", a.theme),
		KeyHelp("s", "toggle slideshow", a.theme),
		KeyHelp("h", "toggle hidden files", a.theme),
		KeyHelp("esc", "return to browser", a.theme),
		KeyHelp("q", "quit", a.theme),
		"",
		a.theme.HelpStyle.Render("Press any key to return"),
	}
	return strings.Join(lines, "\n")
}

func visibleWindow(total, selected, size int) (int, int) {
	if total <= size {
		return 0, total
	}

	start := selected - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}

// Run starts the TUI, blocking until the user exits.
func Run(cfg *config.Config, images *cache.ImageCache) error {
	app := NewApp(cfg, images)

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
