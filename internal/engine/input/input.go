// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Mouse buttons, matching SDL's numbering.
const (
	ButtonLeft   uint8 = sdl.BUTTON_LEFT
	ButtonMiddle uint8 = sdl.BUTTON_MIDDLE
	ButtonRight  uint8 = sdl.BUTTON_RIGHT
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY float32
}

// State is the input snapshot after a frame's events have been applied.
// Keys and buttons stay down until their release event arrives.
type State struct {
	MouseX, MouseY int
	WheelY         float32 // accumulated this frame
	buttons        map[uint8]bool
	keys           map[sdl.Scancode]bool
}

// NewState creates an empty state.
func NewState() State {
	return State{buttons: make(map[uint8]bool), keys: make(map[sdl.Scancode]bool)}
}

// BeginFrame resets per-frame accumulators.
func (s *State) BeginFrame() {
	s.WheelY = 0
}

// Apply folds one event into the state.
func (s *State) Apply(e Event) {
	switch e.Type {
	case EventKeyDown:
		s.keys[e.Key] = true
	case EventKeyUp:
		delete(s.keys, e.Key)
	case EventMouseMove:
		s.MouseX, s.MouseY = e.MouseX, e.MouseY
	case EventMouseDown:
		s.MouseX, s.MouseY = e.MouseX, e.MouseY
		s.buttons[e.Button] = true
	case EventMouseUp:
		s.MouseX, s.MouseY = e.MouseX, e.MouseY
		delete(s.buttons, e.Button)
	case EventMouseWheel:
		s.WheelY += e.WheelY
	}
}

// ButtonDown reports whether a mouse button is held.
func (s *State) ButtonDown(b uint8) bool {
	return s.buttons[b]
}

// KeyDown reports whether a key is held.
func (s *State) KeyDown(k sdl.Scancode) bool {
	return s.keys[k]
}

// Input polls SDL and maintains State.
type Input struct {
	events []Event
	state  State
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		state:  NewState(),
	}
}

// Update polls SDL events and converts them to engine events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.state.BeginFrame()

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		i.state.Apply(e)
		if e.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		t := EventKeyUp
		if e.Type == sdl.KEYDOWN {
			t = EventKeyDown
		}
		return Event{Type: t, Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}, true

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return Event{Type: EventMouseWheel, WheelY: y}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// State returns the current snapshot.
func (i *Input) State() *State {
	return &i.state
}

// IsKeyPressed reports whether a key went down this frame, ignoring
// auto-repeat.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}
