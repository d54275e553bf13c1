package campath

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshview/pkg/math"
)

// MinPoints is the smallest control polygon that spans one Catmull-Rom window.
const MinPoints = 4

var (
	// ErrTooFewPoints is returned for a segment with fewer than MinPoints points.
	ErrTooFewPoints = errors.New("path segment needs at least 4 control points")
	// ErrInvalidDuration is returned for a zero, negative or non-finite duration.
	ErrInvalidDuration = errors.New("path segment duration must be positive")
)

// Segment is one leg of a camera path. It is immutable once built.
type Segment struct {
	points     []math.Vec3
	duration   float64
	lookCenter math.Vec3
}

// NewSegment validates and copies a control polygon.
func NewSegment(points []math.Vec3, duration float64, lookCenter math.Vec3) (Segment, error) {
	if len(points) < MinPoints {
		return Segment{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	if !(duration > 0) || gomath.IsInf(duration, 0) {
		return Segment{}, fmt.Errorf("%w: got %v", ErrInvalidDuration, duration)
	}

	return Segment{
		points:     append([]math.Vec3(nil), points...),
		duration:   duration,
		lookCenter: lookCenter,
	}, nil
}

// Points returns a copy of the control polygon.
func (s Segment) Points() []math.Vec3 {
	return append([]math.Vec3(nil), s.points...)
}

// Duration returns the playback time of the segment in seconds.
func (s Segment) Duration() float64 { return s.duration }

// LookCenter returns the point of interest configured for the segment.
func (s Segment) LookCenter() math.Vec3 { return s.lookCenter }

// Spans returns the number of Catmull-Rom spans, len(points)-3.
func (s Segment) Spans() int { return len(s.points) - 3 }

// window maps localT in [0,1) onto a 4-point window start and the fraction
// within it. The start is clamped to [0, n-4] so rounding at localT close to
// 1 cannot run past the polygon.
func (s Segment) window(localT float64) (int, float32) {
	pos := localT * float64(s.Spans())
	i := int(gomath.Floor(pos))
	if i < 0 {
		i = 0
	}
	if last := len(s.points) - MinPoints; i > last {
		i = last
	}
	return i, float32(pos - float64(i))
}

// at evaluates the window starting at i.
func (s Segment) at(i int, frac float32) math.Vec3 {
	p := s.points[i : i+MinPoints]
	return CatmullRom(p[0], p[1], p[2], p[3], frac)
}
