package app

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/pkg/math"
)

// Frame is what a scene sees of the current frame.
type Frame struct {
	DT      float64 // seconds since the previous frame
	Elapsed float64 // seconds since the loop started
	Input   *input.Input
	Aspect  float32
}

// Scene is one of the interactive demos.
type Scene interface {
	// Update applies input and advances animation.
	Update(f Frame)

	// Render draws the frame. The renderer has the viewport set.
	Render(r *renderer.Renderer)

	// Close releases GPU resources.
	Close()
}

// newScene builds the scene selected by cfg.Scene. A GL context must be
// current.
func newScene(cfg *config.Config) (Scene, error) {
	switch cfg.Scene {
	case config.SceneViewer:
		return newViewerScene(cfg.Viewer)
	case config.SceneTextured:
		return newTexturedScene(cfg.Textured)
	case config.SceneFlythrough:
		return newFlythroughScene(cfg.Flythrough)
	}
	return nil, fmt.Errorf("%w %q", config.ErrUnknownScene, cfg.Scene)
}

// projection builds the perspective matrix for a configured field of view
// in degrees.
func projection(p config.ProjectionConfig, aspect float32) math.Mat4 {
	return math.Perspective(p.FOV*degToRad, aspect, p.Near, p.Far)
}

const degToRad = gomath.Pi / 180
