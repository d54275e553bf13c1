package main

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/framebuffer"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/engine/shaders"
	"github.com/Faultbox/meshview/pkg/math"
)

// MeshViewer renders a mesh into an offscreen framebuffer for display in an
// ImGui image.
type MeshViewer struct {
	fb      *framebuffer.Framebuffer
	program *shader.Program
	bounds  *debug.Lines
	mesh    *mesh.Mesh
	camera  *camera.OrbitCamera

	BaseColor  [3]float32
	Background [3]float32
	LightDir   [3]float32
	ShowBounds bool
}

// NewMeshViewer creates a viewer with an empty scene.
func NewMeshViewer(width, height int) (*MeshViewer, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	mv := &MeshViewer{
		fb:         fb,
		camera:     camera.NewOrbitCamera(),
		BaseColor:  [3]float32{0.75, 0.80, 1.0},
		Background: [3]float32{0.15, 0.15, 0.2},
		LightDir:   [3]float32{0.7, 1.0, 0.5},
	}
	mv.camera.YawSpeed = 0.01
	mv.camera.PitchSpeed = 0.01

	if mv.program, err = shader.New("lit", shaders.LitVertexShader, shaders.LitFragmentShader); err != nil {
		fb.Destroy()
		return nil, err
	}
	if mv.bounds, err = debug.NewLines([3]float32{1, 0.85, 0.2}); err != nil {
		mv.Destroy()
		return nil, err
	}
	return mv, nil
}

// SetMesh replaces the displayed mesh and frames it.
func (mv *MeshViewer) SetMesh(d *mesh.Data) error {
	m, err := mesh.Upload(d)
	if err != nil {
		return err
	}
	if mv.mesh != nil {
		mv.mesh.Delete()
	}
	mv.mesh = m
	mv.bounds.Set(debug.BoundsWireframe(d.Bounds, 0.01))

	if d.Bounds.Valid() {
		mv.camera.FitToBounds(d.Bounds.Min, d.Bounds.Max)
	}
	mv.camera.SetHome()
	return nil
}

// Resize matches the framebuffer to the display area.
func (mv *MeshViewer) Resize(width, height int) {
	mv.fb.Resize(width, height)
}

// Render draws the mesh and returns the color texture.
func (mv *MeshViewer) Render() uint32 {
	restore := mv.fb.Begin()
	defer restore()

	gl.ClearColor(mv.Background[0], mv.Background[1], mv.Background[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if mv.mesh == nil {
		return mv.fb.ColorTexture()
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	view := mv.camera.ViewMatrix()
	far := mv.camera.Distance * 4
	proj := math.Perspective(0.785398, mv.fb.Aspect(), far/1000, far) // 45 degrees FOV

	mv.program.Use()
	mv.program.SetMat4("uModel", math.Identity())
	mv.program.SetMat4("uView", view)
	mv.program.SetMat4("uProj", proj)
	mv.program.SetVec3("uCameraPos", mv.camera.Position())
	mv.program.SetVec3("uLightDir", lighting.Fixed(mv.LightDir))
	mv.program.SetColor("uBaseColor", mv.BaseColor)
	mv.program.SetFloat("uAmbient", 0.08)
	mv.program.SetFloat("uDiffuse", 0.85)
	mv.program.SetFloat("uSpecular", 0.35)
	mv.program.SetFloat("uShininess", 32)
	mv.mesh.Draw()

	if mv.ShowBounds {
		mv.bounds.Draw(proj.Mul(view))
	}
	return mv.fb.ColorTexture()
}

// Size returns the framebuffer size.
func (mv *MeshViewer) Size() (int, int) {
	return mv.fb.Size()
}

// Snapshot reads back the last rendered frame.
func (mv *MeshViewer) Snapshot() (*image.RGBA, error) {
	return mv.fb.Snapshot()
}

// HandleMouseDrag orbits the camera.
func (mv *MeshViewer) HandleMouseDrag(deltaX, deltaY float32) {
	mv.camera.HandleDrag(deltaX, deltaY)
}

// HandleMouseWheel zooms the camera.
func (mv *MeshViewer) HandleMouseWheel(delta float32) {
	mv.camera.HandleZoom(delta)
}

// Reset returns the camera to the framed pose.
func (mv *MeshViewer) Reset() {
	mv.camera.Reset()
}

// Destroy releases all GPU resources.
func (mv *MeshViewer) Destroy() {
	if mv.mesh != nil {
		mv.mesh.Delete()
	}
	if mv.bounds != nil {
		mv.bounds.Delete()
	}
	if mv.program != nil {
		mv.program.Delete()
	}
	mv.fb.Destroy()
}
