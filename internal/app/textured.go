package app

import (
	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/pkg/math"
)

// texturedScene draws a multi-material textured mesh. Normals are always
// regenerated per indexed vertex. Left-drag orbits, the wheel zooms and
// right-drag spins the model about +Y.
type texturedScene struct {
	cfg      config.TexturedConfig
	model    *texturedModel
	controls orbitControls
	spin     camera.DragState
	modelYaw float32 // degrees
	light    math.Vec3
	proj     math.Mat4
}

func newTexturedScene(cfg config.TexturedConfig) (*texturedScene, error) {
	model, err := loadTexturedModel(cfg.Model, texturedOptions{
		Mesh: mesh.Options{
			Normalize: cfg.Normalize,
			Mode:      mesh.NormalsIndexed,
		},
		FlipTextures:   cfg.FlipTextures,
		DefaultTexture: cfg.DefaultTexture,
	})
	if err != nil {
		return nil, err
	}
	return &texturedScene{
		cfg:      cfg,
		model:    model,
		controls: orbitControls{camera: newOrbit(cfg.Camera, model.data.Bounds, cfg.Normalize)},
		light:    lighting.Fixed(cfg.LightDir),
	}, nil
}

// Update implements Scene. R resets both the camera and the model yaw.
func (s *texturedScene) Update(f Frame) {
	st := f.Input.State()
	s.controls.update(st)

	var dx float32
	s.spin, dx, _ = s.spin.Update(st.ButtonDown(input.ButtonRight), float32(st.MouseX), float32(st.MouseY))
	s.modelYaw = spinYaw(s.modelYaw, dx, s.cfg.ModelYawSpeed)

	if f.Input.IsKeyPressed(sdl.SCANCODE_R) {
		s.controls.camera.Reset()
		s.modelYaw = 0
	}

	s.proj = projection(s.cfg.Projection, f.Aspect)
}

// spinYaw adds a horizontal drag to the model yaw, kept in [0, 360).
func spinYaw(yaw, dx, degreesPerPixel float32) float32 {
	yaw = math32.Mod(yaw+dx*degreesPerPixel, 360)
	if yaw < 0 {
		yaw += 360
	}
	return yaw
}

// Render implements Scene.
func (s *texturedScene) Render(r *renderer.Renderer) {
	r.Begin(s.cfg.ClearColor)
	model := math.RotateY(s.modelYaw * degToRad)
	s.model.draw(model, s.controls.camera.ViewMatrix(), s.proj, s.light)
}

// Close implements Scene.
func (s *texturedScene) Close() {
	s.model.close()
}
