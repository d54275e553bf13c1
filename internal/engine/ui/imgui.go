// Package ui provides ImGui-based tooling windows.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
)

// fontPaths are tried in order; the first readable one replaces the
// built-in ImGui font.
var fontPaths = []string{
	"/System/Library/Fonts/SFNS.ttf",                    // macOS
	"/Library/Fonts/Arial Unicode.ttf",                  // macOS (symlink)
	"C:\\Windows\\Fonts\\segoeui.ttf",                   // Windows
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",   // Debian/Ubuntu
	"/usr/share/fonts/dejavu-sans-fonts/DejaVuSans.ttf", // Fedora
}

// Backend wraps the cimgui-go SDL backend and its GL context.
type Backend struct {
	backend  backend.Backend[sdlbackend.SDLWindowFlags]
	FontSize float32
}

// NewBackend creates the ImGui window and initializes GL.
func NewBackend(title string, width, height int, clear [3]float32) (*Backend, error) {
	b := &Backend{FontSize: 16}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(b.loadFont)
	b.backend.SetBgColor(imgui.NewVec4(clear[0], clear[1], clear[2], 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

func (b *Backend) loadFont() {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fontCfg := imgui.NewFontConfig()
		defer fontCfg.Destroy()
		if imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, b.FontSize, fontCfg, nil) != nil {
			logger.Debug("ui font loaded", zap.String("path", path))
		}
		return
	}
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area, excluding the menu bar.
func Viewport() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// FramebufferSize returns the display size in pixels.
func FramebufferSize() (int, int) {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	return int(size.X * scale.X), int(size.Y * scale.Y)
}

// Image draws a GL texture, optionally flipped vertically for render targets.
func Image(texID uint32, size imgui.Vec2, flipV bool) {
	uv0, uv1 := imgui.NewVec2(0, 0), imgui.NewVec2(1, 1)
	if flipV {
		uv0, uv1 = imgui.NewVec2(0, 1), imgui.NewVec2(1, 0)
	}
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texID))
	imgui.ImageWithBgV(*texRef, size, uv0, uv1,
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1))
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}
