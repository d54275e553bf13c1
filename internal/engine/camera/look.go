package camera

import (
	"github.com/Faultbox/meshview/internal/campath"
	"github.com/Faultbox/meshview/pkg/math"
)

// LookCamera is placed directly: a position and a point to look at.
type LookCamera struct {
	Position math.Vec3
	Target   math.Vec3
}

// Follow copies the pose of a camera path sample.
func (c *LookCamera) Follow(s campath.State) {
	c.Position = s.Position
	c.Target = s.Target
}

// ViewMatrix returns the view matrix for this camera. If the target
// coincides with the position the previous forward direction is unknown, so
// the camera looks down -Z.
func (c *LookCamera) ViewMatrix() math.Mat4 {
	target := c.Target
	if target == c.Position {
		target = c.Position.Add(math.Vec3{Z: -1})
	}
	return math.LookAt(c.Position, target, math.Up)
}

// Forward returns the unit view direction, or -Z when undefined.
func (c *LookCamera) Forward() math.Vec3 {
	d := c.Target.Sub(c.Position).Normalize()
	if d.IsZero() {
		return math.Vec3{Z: -1}
	}
	return d
}
