package app

import (
	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/geometry"
)

// newOrbit creates an orbit camera from its settings. When the model was
// not normalized the camera is refit to its bounds. The resulting pose is
// recorded as home.
func newOrbit(oc config.OrbitConfig, bounds geometry.Bounds, normalized bool) *camera.OrbitCamera {
	c := &camera.OrbitCamera{
		Distance:    oc.Distance,
		Yaw:         oc.Yaw,
		Pitch:       oc.Pitch,
		MinDistance: oc.MinDistance,
		MaxDistance: oc.MaxDistance,
		PitchLimit:  oc.PitchLimit,
		YawSpeed:    oc.YawSpeed,
		PitchSpeed:  oc.PitchSpeed,
		ZoomStep:    oc.ZoomStep,
	}
	if !normalized && bounds.Valid() {
		c.FitToBounds(bounds.Min, bounds.Max)
	}
	c.SetHome()
	return c
}

// keyZoom returns the per-frame distance factor for held zoom keys. Holding
// both cancels out.
func keyZoom(in, out bool, step float32) float32 {
	factor := float32(1)
	if in {
		factor *= 1 - step
	}
	if out {
		factor *= 1 + step
	}
	return factor
}

// orbitControls drives an orbit camera from mouse input: left-drag
// rotates, the wheel zooms.
type orbitControls struct {
	camera *camera.OrbitCamera
	rotate camera.DragState
}

func (o *orbitControls) update(st *input.State) {
	var dx, dy float32
	o.rotate, dx, dy = o.rotate.Update(st.ButtonDown(input.ButtonLeft), float32(st.MouseX), float32(st.MouseY))
	if dx != 0 || dy != 0 {
		o.camera.HandleDrag(dx, dy)
	}
	if st.WheelY != 0 {
		o.camera.HandleZoom(st.WheelY)
	}
}
