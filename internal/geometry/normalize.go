package geometry

import "github.com/Faultbox/meshview/pkg/math"

// Fit describes the transform NormalizeCenter applied.
type Fit struct {
	Bounds Bounds    // bounds before normalization
	Center math.Vec3 // subtracted from every point
	Scale  float32   // applied after centering
	// Applied is false when the input was degenerate and left untouched.
	Applied bool
}

// Apply maps a point through the same transform. It is the identity when the
// fit was not applied.
func (f Fit) Apply(p math.Vec3) math.Vec3 {
	if !f.Applied {
		return p
	}
	return p.Sub(f.Center).Scale(f.Scale)
}

// NormalizeCenter remaps positions in place so their bounding box is centered
// at the origin and its longest axis has length 1.
//
// If the longest axis is not positive (no points, or all points coincide)
// positions are left exactly as they were.
func NormalizeCenter(positions []math.Vec3) Fit {
	b := ComputeBounds(positions)
	maxDim := b.MaxDim()
	if !(maxDim > 0) {
		return Fit{Bounds: b}
	}

	fit := Fit{
		Bounds:  b,
		Center:  b.Center(),
		Scale:   1 / maxDim,
		Applied: true,
	}
	for i, p := range positions {
		positions[i] = fit.Apply(p)
	}
	return fit
}
