// Package lighting provides the directional lights used by the scenes.
package lighting

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshview/pkg/math"
)

// Sun is a directional light that circles the vertical axis at a fixed
// 45 degree elevation.
type Sun struct {
	DegreesPerSecond float64
}

// Angle returns the azimuth in radians after elapsed seconds.
func (s Sun) Angle(elapsed float64) float32 {
	return float32(gomath.Mod(elapsed*s.DegreesPerSecond, 360) * gomath.Pi / 180)
}

// Direction returns the unit direction the light travels:
// normalize(sin a, -1, cos a).
func (s Sun) Direction(elapsed float64) math.Vec3 {
	sin, cos := math32.Sincos(s.Angle(elapsed))
	return math.V3(sin, -1, cos).Normalize()
}

// ToLight returns the unit vector from a surface towards the sun.
func (s Sun) ToLight(elapsed float64) math.Vec3 {
	return s.Direction(elapsed).Scale(-1)
}

// Fixed normalizes a configured light vector. A zero vector falls back to
// straight up.
func Fixed(dir [3]float32) math.Vec3 {
	v := math.FromArray(dir).Normalize()
	if v.IsZero() {
		return math.Up
	}
	return v
}
