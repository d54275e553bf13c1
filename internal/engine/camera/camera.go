// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshview/pkg/math"
)

// OrbitCamera orbits around a target point and always looks at it.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32
	Yaw      float32 // radians, around +Y
	Pitch    float32 // radians, positive looks down from above

	// Constraints
	MinDistance float32
	MaxDistance float32
	PitchLimit  float32 // |Pitch| <= PitchLimit

	// Sensitivity. A negative speed inverts the drag direction.
	YawSpeed   float32 // radians per pixel
	PitchSpeed float32 // radians per pixel
	ZoomStep   float32 // fraction of Distance per wheel notch

	home orbitPose
}

type orbitPose struct {
	target   math.Vec3
	distance float32
	yaw      float32
	pitch    float32
}

// NewOrbitCamera creates an orbit camera framing the unit cube.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		Distance:    2.5,
		Pitch:       0.3,
		MinDistance: 0.3,
		MaxDistance: 20,
		PitchLimit:  1.5,
		YawSpeed:    0.003,
		PitchSpeed:  0.003,
		ZoomStep:    0.1,
	}
	c.SetHome()
	return c
}

// Position returns the camera position in world space:
// Target + Distance * (cos p cos y, sin p, cos p sin y).
func (c *OrbitCamera) Position() math.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return c.Target.Add(math.Vec3{X: cp * cy, Y: sp, Z: cp * sy}.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Up)
}

// HandleDrag updates yaw and pitch from a mouse delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.YawSpeed
	c.Pitch += deltaY * c.PitchSpeed
	c.clampPitch()
}

// HandleZoom scales distance by one wheel step per notch. Positive delta
// moves closer.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.ZoomBy(1 - delta*c.ZoomStep)
}

// ZoomBy multiplies the distance by factor, then clamps it.
func (c *OrbitCamera) ZoomBy(factor float32) {
	c.Distance *= factor
	c.clampDistance()
}

func (c *OrbitCamera) clampPitch() {
	if c.PitchLimit > 0 {
		c.Pitch = math32.Max(-c.PitchLimit, math32.Min(c.PitchLimit, c.Pitch))
	}
}

func (c *OrbitCamera) clampDistance() {
	if c.MinDistance > 0 && c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.MaxDistance > 0 && c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds centers the camera on a box and backs off far enough to see
// all of it. The distance limits grow if the box would not fit inside them.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Target = lo.Add(hi).Scale(0.5)

	size := hi.Sub(lo).Length()
	if !(size > 0) {
		return
	}
	c.Distance = size * 1.2
	if c.MaxDistance > 0 && c.MaxDistance < c.Distance*4 {
		c.MaxDistance = c.Distance * 4
	}
	if c.MinDistance > c.Distance/10 {
		c.MinDistance = c.Distance / 10
	}
}

// SetHome records the current pose as the one Reset returns to.
func (c *OrbitCamera) SetHome() {
	c.home = orbitPose{target: c.Target, distance: c.Distance, yaw: c.Yaw, pitch: c.Pitch}
}

// Reset restores the pose recorded by SetHome.
func (c *OrbitCamera) Reset() {
	c.Target = c.home.target
	c.Distance = c.home.distance
	c.Yaw = c.home.yaw
	c.Pitch = c.home.pitch
}
