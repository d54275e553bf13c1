package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshview/pkg/math"
)

// FallbackNormal replaces any normal that cannot be normalized.
var FallbackNormal = math.Vec3{X: 0, Y: 1, Z: 0}

// ErrIndexOutOfRange is returned when a triangle index does not address a
// vertex.
var ErrIndexOutOfRange = errors.New("triangle index out of range")

// NormalPresence says whether a normal buffer carries caller-supplied data.
type NormalPresence int

const (
	// NormalsUnknown scans the buffer: any non-zero component counts as
	// supplied. A buffer of legitimate all-zero normals is indistinguishable
	// from an absent one in this mode.
	NormalsUnknown NormalPresence = iota
	// NormalsAbsent always regenerates.
	NormalsAbsent
	// NormalsSupplied always passes the buffer through, even if partially
	// populated.
	NormalsSupplied
)

// String returns the presence name.
func (p NormalPresence) String() string {
	switch p {
	case NormalsAbsent:
		return "absent"
	case NormalsSupplied:
		return "supplied"
	default:
		return "unknown"
	}
}

// DetectNormals resolves NormalsUnknown by scanning for a non-zero component.
func DetectNormals(normals []math.Vec3) NormalPresence {
	for _, n := range normals {
		if !n.IsZero() {
			return NormalsSupplied
		}
	}
	return NormalsAbsent
}

// SynthesizeNormals returns per-vertex normals for an unindexed triangle list.
//
// Supplied normals are returned unchanged (the same slice). Otherwise every
// triangle (positions[3k], positions[3k+1], positions[3k+2]) adds its unit
// face normal cross(p1-p0, p2-p0) to its own three slots and each slot is
// normalized independently. Slots are never merged with other slots holding
// the same coordinates, so each face vertex ends up with its face normal.
// Non-finite results, from zero-area triangles or trailing vertices that do
// not complete a triangle, become FallbackNormal.
func SynthesizeNormals(positions, normals []math.Vec3, presence NormalPresence) []math.Vec3 {
	if presence == NormalsUnknown {
		presence = DetectNormals(normals)
	}
	if presence == NormalsSupplied {
		return normals
	}

	out := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(positions); i += 3 {
		fn := faceNormal(positions[i], positions[i+1], positions[i+2])
		out[i] = out[i].Add(fn)
		out[i+1] = out[i+1].Add(fn)
		out[i+2] = out[i+2].Add(fn)
	}
	for i := range out {
		out[i] = unitOrFallback(out[i])
	}
	return out
}

// SynthesizeIndexedNormals computes smooth normals for an indexed triangle
// list: faces sharing a vertex index average their face normals. Vertices
// referenced by no triangle get FallbackNormal.
func SynthesizeIndexedNormals(vertices []math.Vec3, indices []uint32) ([]math.Vec3, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	out := make([]math.Vec3, len(vertices))
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		for _, idx := range [3]uint32{i0, i1, i2} {
			if int(idx) >= len(vertices) {
				return nil, fmt.Errorf("triangle %d: index %d of %d vertices: %w", i/3, idx, len(vertices), ErrIndexOutOfRange)
			}
		}
		fn := faceNormal(vertices[i0], vertices[i1], vertices[i2])
		out[i0] = out[i0].Add(fn)
		out[i1] = out[i1].Add(fn)
		out[i2] = out[i2].Add(fn)
	}
	for i := range out {
		out[i] = unitOrFallback(out[i])
	}
	return out, nil
}

// faceNormal may return NaN components for a zero-area triangle; the NaN
// poisons the accumulated slot, which then falls back.
func faceNormal(p0, p1, p2 math.Vec3) math.Vec3 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Unit()
}

func unitOrFallback(v math.Vec3) math.Vec3 {
	n := v.Unit()
	if !n.IsFinite() {
		return FallbackNormal
	}
	return n
}
