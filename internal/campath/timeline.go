package campath

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshview/pkg/math"
)

// DefaultLookAhead is the spline parameter offset used for the look target.
const DefaultLookAhead float32 = 0.02

// ErrEmptyTimeline is returned when a timeline has no segments.
var ErrEmptyTimeline = errors.New("camera timeline has no segments")

// LookMode selects how the look target is derived.
type LookMode int

const (
	// LookAhead aims at the spline a little further along the path, so the
	// camera faces its direction of travel.
	LookAhead LookMode = iota
	// LookCenter aims at the segment's configured look center.
	LookCenter
)

// String returns the config name of the mode.
func (m LookMode) String() string {
	if m == LookCenter {
		return "center"
	}
	return "ahead"
}

// ParseLookMode accepts "ahead" or "center". The empty string means ahead.
func ParseLookMode(s string) (LookMode, error) {
	switch s {
	case "", "ahead":
		return LookAhead, nil
	case "center":
		return LookCenter, nil
	}
	return LookAhead, fmt.Errorf("unknown look mode %q", s)
}

// State is the camera pose at one instant.
type State struct {
	Position math.Vec3
	Target   math.Vec3
	Segment  int     // index of the active segment
	LocalT   float64 // progress through the active segment, [0,1)
}

// Option configures a Timeline.
type Option func(*Timeline)

// WithLookAhead sets the spline offset of the look target.
func WithLookAhead(eps float32) Option {
	return func(t *Timeline) { t.lookAhead = eps }
}

// WithLookMode selects the look target policy.
func WithLookMode(m LookMode) Option {
	return func(t *Timeline) { t.lookMode = m }
}

// WithGroundClamp enables or disables keeping the camera at y >= 0.
// Enabled by default.
func WithGroundClamp(on bool) Option {
	return func(t *Timeline) { t.groundClamp = on }
}

// Timeline is a looping sequence of segments.
type Timeline struct {
	segments []Segment
	starts   []float64
	total    float64

	lookAhead   float32
	lookMode    LookMode
	groundClamp bool
}

// NewTimeline builds a timeline. Segments are expected to come from
// NewSegment, so each already has a valid duration and polygon.
func NewTimeline(segments []Segment, opts ...Option) (*Timeline, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyTimeline
	}

	t := &Timeline{
		segments:    append([]Segment(nil), segments...),
		starts:      make([]float64, len(segments)),
		lookAhead:   DefaultLookAhead,
		groundClamp: true,
	}
	for i, s := range t.segments {
		if len(s.points) < MinPoints {
			return nil, fmt.Errorf("segment %d: %w", i, ErrTooFewPoints)
		}
		t.starts[i] = t.total
		t.total += s.duration
	}
	if !(t.total > 0) || gomath.IsInf(t.total, 0) {
		return nil, fmt.Errorf("total duration %v: %w", t.total, ErrInvalidDuration)
	}

	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// TotalDuration returns the loop length in seconds.
func (t *Timeline) TotalDuration() float64 { return t.total }

// Len returns the number of segments.
func (t *Timeline) Len() int { return len(t.segments) }

// Segment returns segment i.
func (t *Timeline) Segment(i int) Segment { return t.segments[i] }

// Wrap maps any time onto [0, TotalDuration). Negative times wrap backwards.
// Non-finite input maps to 0.
func (t *Timeline) Wrap(seconds float64) float64 {
	if gomath.IsNaN(seconds) || gomath.IsInf(seconds, 0) {
		return 0
	}
	w := gomath.Mod(seconds, t.total)
	if w < 0 {
		w += t.total
	}
	// -tiny + total can round up to total.
	if w >= t.total {
		w = 0
	}
	return w
}

// ActiveSegment returns the segment playing at the given global time and the
// progress through it. Segment intervals are half open, so a time exactly on
// a boundary belongs to the later segment.
func (t *Timeline) ActiveSegment(seconds float64) (int, float64) {
	w := t.Wrap(seconds)

	idx := len(t.segments) - 1
	for i, s := range t.segments {
		if w < t.starts[i]+s.duration {
			idx = i
			break
		}
	}

	s := t.segments[idx]
	local := (w - t.starts[idx]) / s.duration
	if local < 0 {
		local = 0
	}
	return idx, local
}

// Evaluate returns the camera pose at the given global time.
func (t *Timeline) Evaluate(seconds float64) State {
	idx, local := t.ActiveSegment(seconds)
	s := t.segments[idx]
	i, frac := s.window(local)

	pos := s.at(i, frac)
	if t.groundClamp {
		pos.Y = math32.Max(pos.Y, 0)
	}

	var target math.Vec3
	switch t.lookMode {
	case LookCenter:
		target = s.lookCenter
	default:
		target = s.at(i, frac+t.lookAhead)
	}

	return State{
		Position: pos,
		Target:   target,
		Segment:  idx,
		LocalT:   local,
	}
}
