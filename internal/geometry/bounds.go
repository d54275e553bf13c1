// Package geometry fits triangle soups into the unit cube and synthesizes
// vertex normals for meshes that ship without them.
package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshview/pkg/math"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns an inverted box that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: math.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
}

// ComputeBounds returns the bounding box of positions. An empty slice yields
// EmptyBounds.
func ComputeBounds(positions []math.Vec3) Bounds {
	b := EmptyBounds()
	for _, p := range positions {
		b.Extend(p)
	}
	return b
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Size returns max - min.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// MaxDim returns the longest edge of the box. It is negative for an empty box
// and zero when every point coincides.
func (b Bounds) MaxDim() float32 {
	return b.Size().MaxComponent()
}

// Valid reports whether the box contains at least one point.
func (b Bounds) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}
