package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/campath"
	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// Playback controls.
const (
	skipSeconds = 5.0
	minSpeed    = 0.125
	maxSpeed    = 8.0
)

// flythroughScene flies a camera along a looping path through a textured
// scene lit by an orbiting sun.
type flythroughScene struct {
	cfg    config.FlythroughConfig
	model  *texturedModel
	player *campath.Player
	camera camera.LookCamera
	sun    lighting.Sun
	path   *debug.Lines

	showPath bool
	toLight  math.Vec3
	proj     math.Mat4
	lastSeg  int
	log      *zap.Logger
}

func newFlythroughScene(cfg config.FlythroughConfig) (*flythroughScene, error) {
	tl, err := cfg.Timeline()
	if err != nil {
		return nil, fmt.Errorf("camera path: %w", err)
	}

	model, err := loadTexturedModel(cfg.Model, texturedOptions{
		Mesh: mesh.Options{
			Normalize: cfg.Normalize,
			Mode:      mesh.NormalsPerSlot,
		},
		FlipTextures: cfg.FlipTextures,
	})
	if err != nil {
		return nil, err
	}

	s := &flythroughScene{
		cfg:     cfg,
		model:   model,
		player:  campath.NewPlayer(tl),
		sun:     lighting.Sun{DegreesPerSecond: float64(cfg.SunDegreesPerSecond)},
		lastSeg: -1,
		log:     logger.Named(config.SceneFlythrough),
	}
	if cfg.Speed != 0 {
		s.player.SetSpeed(cfg.Speed)
	}

	if s.path, err = debug.NewLines([3]float32{1, 0.3, 0.2}); err != nil {
		model.close()
		return nil, err
	}
	s.path.Set(debug.PathPolyline(tl, 64))

	s.log.Info("camera path ready",
		zap.Int("segments", tl.Len()),
		zap.Float64("duration", tl.TotalDuration()),
		zap.Stringer("look_mode", mustLookMode(cfg.LookMode)))
	return s, nil
}

func mustLookMode(s string) campath.LookMode {
	m, _ := campath.ParseLookMode(s)
	return m
}

// Update implements Scene. Space pauses, Left/Right skip, +/- change speed,
// Home restarts and P toggles the path overlay.
func (s *flythroughScene) Update(f Frame) {
	in := f.Input
	switch {
	case in.IsKeyPressed(sdl.SCANCODE_SPACE):
		paused := s.player.TogglePause()
		s.log.Debug("playback", zap.Bool("paused", paused))
	case in.IsKeyPressed(sdl.SCANCODE_LEFT):
		s.player.Skip(-skipSeconds)
	case in.IsKeyPressed(sdl.SCANCODE_RIGHT):
		s.player.Skip(skipSeconds)
	case in.IsKeyPressed(sdl.SCANCODE_EQUALS), in.IsKeyPressed(sdl.SCANCODE_KP_PLUS):
		s.player.SetSpeed(stepSpeed(s.player.Speed(), true))
		s.log.Debug("playback speed", zap.Float64("speed", s.player.Speed()))
	case in.IsKeyPressed(sdl.SCANCODE_MINUS), in.IsKeyPressed(sdl.SCANCODE_KP_MINUS):
		s.player.SetSpeed(stepSpeed(s.player.Speed(), false))
		s.log.Debug("playback speed", zap.Float64("speed", s.player.Speed()))
	case in.IsKeyPressed(sdl.SCANCODE_HOME):
		s.player.Seek(0)
	case in.IsKeyPressed(sdl.SCANCODE_P):
		s.showPath = !s.showPath
	}

	s.player.Advance(f.DT)
	state := s.player.State()
	s.camera.Follow(state)
	if state.Segment != s.lastSeg {
		s.log.Debug("segment", zap.Int("index", state.Segment), zap.Float64("elapsed", s.player.Elapsed()))
		s.lastSeg = state.Segment
	}

	s.toLight = s.sun.ToLight(f.Elapsed)
	s.proj = projection(s.cfg.Projection, f.Aspect)
}

// stepSpeed doubles or halves a playback speed within [minSpeed, maxSpeed],
// keeping its sign.
func stepSpeed(speed float64, faster bool) float64 {
	sign := 1.0
	if speed < 0 {
		sign, speed = -1, -speed
	}
	if faster {
		speed *= 2
	} else {
		speed /= 2
	}
	return sign * min(max(speed, minSpeed), maxSpeed)
}

// Render implements Scene.
func (s *flythroughScene) Render(r *renderer.Renderer) {
	r.Begin(s.cfg.ClearColor)
	view := s.camera.ViewMatrix()
	s.model.draw(math.Identity(), view, s.proj, s.toLight)
	if s.showPath {
		s.path.Draw(s.proj.Mul(view))
	}
}

// Close implements Scene.
func (s *flythroughScene) Close() {
	s.path.Delete()
	s.model.close()
}
