package campath

// Player advances a timeline with the frame clock. It owns the only mutable
// playback state; the timeline itself is never modified.
type Player struct {
	timeline *Timeline
	elapsed  float64
	speed    float64
	paused   bool
}

// NewPlayer starts playback at time zero at normal speed.
func NewPlayer(tl *Timeline) *Player {
	return &Player{timeline: tl, speed: 1}
}

// Advance moves playback forward by dt seconds scaled by the speed. It does
// nothing while paused.
func (p *Player) Advance(dt float64) {
	if p.paused {
		return
	}
	p.elapsed = p.timeline.Wrap(p.elapsed + dt*p.speed)
}

// Seek jumps to an absolute time. Any value is accepted and wrapped.
func (p *Player) Seek(seconds float64) {
	p.elapsed = p.timeline.Wrap(seconds)
}

// Skip jumps relative to the current time; negative values rewind.
func (p *Player) Skip(seconds float64) {
	p.Seek(p.elapsed + seconds)
}

// SetSpeed sets the playback rate. Negative rates play backwards.
func (p *Player) SetSpeed(speed float64) { p.speed = speed }

// Speed returns the playback rate.
func (p *Player) Speed() float64 { return p.speed }

// TogglePause flips the paused flag and returns the new value.
func (p *Player) TogglePause() bool {
	p.paused = !p.paused
	return p.paused
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.paused }

// Elapsed returns the wrapped playback time.
func (p *Player) Elapsed() float64 { return p.elapsed }

// State evaluates the timeline at the current playback time.
func (p *Player) State() State {
	return p.timeline.Evaluate(p.elapsed)
}

// Timeline returns the timeline being played.
func (p *Player) Timeline() *Timeline { return p.timeline }
