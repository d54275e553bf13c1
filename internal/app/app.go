// Package app runs the interactive demos: it owns the window, the main loop
// and the active scene.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
)

// App is the main application instance.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *debug.Screenshotter
	scene    Scene
	frames   *debug.FrameTimer
}

// New opens the window and loads the configured scene.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing app",
		zap.String("scene", cfg.Scene),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		cfg:    cfg,
		input:  input.New(),
		shots:  debug.NewScreenshotter(cfg.Screenshots.Dir, "meshview"),
		frames: debug.NewFrameTimer(1),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	scene, err := newScene(cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load %s scene: %w", cfg.Scene, err)
	}
	a.scene = scene

	logger.Info("app initialized successfully")
	return a, nil
}

// Run starts the main loop and returns when the window closes or ESC is
// pressed.
func (a *App) Run() error {
	a.running = true

	start := time.Now()
	lastTime := start

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		capture := a.handleEvents()

		// 2. Update
		a.scene.Update(Frame{
			DT:      dt,
			Elapsed: now.Sub(start).Seconds(),
			Input:   a.input,
			Aspect:  a.renderer.Aspect(),
		})

		// 3. Render
		a.scene.Render(a.renderer)
		if capture {
			a.screenshot()
		}

		// 4. Present
		a.window.SwapBuffers()

		if a.frames.Tick(dt) && a.cfg.Window.ShowFPS {
			a.window.SetTitle(fmt.Sprintf("%s - %.0f fps", a.cfg.Window.Title, a.frames.FPS()))
			logger.Debug("fps", zap.Float64("fps", a.frames.FPS()), zap.Float64("frame_ms", a.frames.FrameMS()))
		}
	}

	return nil
}

// handleEvents applies app-level keys and window events. It reports whether
// a screenshot was requested this frame.
func (a *App) handleEvents() (capture bool) {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			// Event sizes are in screen coordinates; the viewport needs pixels.
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_F11:
				a.window.ToggleFullscreen()
			case sdl.SCANCODE_F12:
				capture = true
			}
		}
	}
	return capture
}

func (a *App) screenshot() {
	w, h := a.renderer.Size()
	path, err := a.shots.Capture(w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, renderer and window.
func (a *App) Close() {
	logger.Info("closing app")

	if a.scene != nil {
		a.scene.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
