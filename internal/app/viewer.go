package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/engine/shaders"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// viewerScene draws one untextured mesh, lit by a fixed key light, over a
// gradient background.
type viewerScene struct {
	cfg      config.ViewerConfig
	mesh     *mesh.Mesh
	program  *shader.Program
	controls orbitControls
	light    math.Vec3
	bounds   *debug.Lines

	showBounds bool
	proj       math.Mat4
	log        *zap.Logger
}

func newViewerScene(cfg config.ViewerConfig) (*viewerScene, error) {
	presence, err := config.ParseNormalPolicy(cfg.Normals)
	if err != nil {
		return nil, err
	}
	_, data, err := mesh.Load(cfg.Model, mesh.Options{
		Normalize: cfg.Normalize,
		Presence:  presence,
		Mode:      mesh.NormalsPerSlot,
	})
	if err != nil {
		return nil, err
	}

	s := &viewerScene{
		cfg:      cfg,
		controls: orbitControls{camera: newOrbit(cfg.Camera, data.Bounds, cfg.Normalize)},
		light:    lighting.Fixed(cfg.LightDir),
		log:      logger.Named(config.SceneViewer),
	}

	s.program, err = shader.New("lit", shaders.LitVertexShader, shaders.LitFragmentShader)
	if err != nil {
		return nil, err
	}
	if s.mesh, err = mesh.Upload(data); err != nil {
		s.program.Delete()
		return nil, err
	}
	if s.bounds, err = debug.NewLines([3]float32{1, 0.85, 0.2}); err != nil {
		s.Close()
		return nil, err
	}
	s.bounds.Set(debug.BoundsWireframe(data.Bounds, 0.01))

	return s, nil
}

// Update implements Scene. Left-drag orbits, Q/E zoom while held, R resets
// the camera and B toggles the bounding box.
func (s *viewerScene) Update(f Frame) {
	st := f.Input.State()
	s.controls.update(st)

	cam := s.controls.camera
	if zoom := keyZoom(st.KeyDown(sdl.SCANCODE_Q), st.KeyDown(sdl.SCANCODE_E), s.cfg.Camera.ZoomStep); zoom != 1 {
		cam.ZoomBy(zoom)
	}
	if f.Input.IsKeyPressed(sdl.SCANCODE_R) {
		cam.Reset()
		s.log.Debug("camera reset")
	}
	if f.Input.IsKeyPressed(sdl.SCANCODE_B) {
		s.showBounds = !s.showBounds
	}

	s.proj = projection(s.cfg.Projection, f.Aspect)
}

// Render implements Scene.
func (s *viewerScene) Render(r *renderer.Renderer) {
	r.Begin(s.cfg.SkyBottom)
	r.DrawGradient(s.cfg.SkyTop, s.cfg.SkyBottom)

	cam := s.controls.camera
	view := cam.ViewMatrix()

	s.program.Use()
	s.program.SetMat4("uModel", math.Identity())
	s.program.SetMat4("uView", view)
	s.program.SetMat4("uProj", s.proj)
	s.program.SetVec3("uCameraPos", cam.Position())
	s.program.SetVec3("uLightDir", s.light)
	s.program.SetColor("uBaseColor", s.cfg.BaseColor)
	s.program.SetFloat("uAmbient", 0.08)
	s.program.SetFloat("uDiffuse", 0.85)
	s.program.SetFloat("uSpecular", 0.35)
	s.program.SetFloat("uShininess", 32)
	s.mesh.Draw()

	if s.showBounds {
		s.bounds.Draw(s.proj.Mul(view))
	}
}

// Close implements Scene.
func (s *viewerScene) Close() {
	if s.bounds != nil {
		s.bounds.Delete()
	}
	if s.mesh != nil {
		s.mesh.Delete()
	}
	s.program.Delete()
}
