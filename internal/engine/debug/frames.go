package debug

// FrameTimer averages frame rate over a fixed reporting interval.
type FrameTimer struct {
	Interval float64 // seconds between FPS updates

	frames  int
	accum   float64
	fps     float64
	frameMS float64
}

// NewFrameTimer creates a timer that reports every interval seconds.
func NewFrameTimer(interval float64) *FrameTimer {
	return &FrameTimer{Interval: interval}
}

// Tick records one frame of dt seconds. It reports true when the interval
// elapsed and FPS was recomputed.
func (t *FrameTimer) Tick(dt float64) bool {
	t.frames++
	t.frameMS = dt * 1000
	t.accum += dt
	if t.accum < t.Interval || t.accum <= 0 {
		return false
	}
	t.fps = float64(t.frames) / t.accum
	t.frames = 0
	t.accum = 0
	return true
}

// FPS returns the frame rate of the last completed interval.
func (t *FrameTimer) FPS() float64 { return t.fps }

// FrameMS returns the duration of the most recent frame in milliseconds.
func (t *FrameTimer) FrameMS() float64 { return t.frameMS }
