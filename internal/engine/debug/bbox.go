package debug

import (
	"github.com/Faultbox/meshview/internal/campath"
	"github.com/Faultbox/meshview/internal/geometry"
)

// BoxVertexCount is the number of line vertices BoundsWireframe produces
// (12 edges, 2 endpoints each).
const BoxVertexCount = 24

// BoundsWireframe returns GL_LINES vertices (x, y, z per vertex) outlining
// b grown by padding on every side. An invalid box yields nil.
func BoundsWireframe(b geometry.Bounds, padding float32) []float32 {
	if !b.Valid() {
		return nil
	}
	minX, minY, minZ := b.Min.X-padding, b.Min.Y-padding, b.Min.Z-padding
	maxX, maxY, maxZ := b.Max.X+padding, b.Max.Y+padding, b.Max.Z+padding

	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// PathPolyline samples the camera position of every timeline segment
// samplesPerSegment+1 times and returns GL_LINES vertices, so segments are
// drawn separately with no bridge between them.
func PathPolyline(tl *campath.Timeline, samplesPerSegment int) []float32 {
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}
	var out []float32
	start := 0.0
	for i := 0; i < tl.Len(); i++ {
		seg := tl.Segment(i)
		d := seg.Duration()
		prev := tl.Evaluate(start).Position
		for k := 1; k <= samplesPerSegment; k++ {
			t := start + d*float64(k)/float64(samplesPerSegment)
			if k == samplesPerSegment {
				// The segment end belongs to the next segment; stay just inside.
				t = start + d*0.9999
			}
			p := tl.Evaluate(t).Position
			out = append(out, prev.X, prev.Y, prev.Z, p.X, p.Y, p.Z)
			prev = p
		}
		start += d
	}
	return out
}
