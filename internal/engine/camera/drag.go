package camera

// DragState tracks one mouse button across frames. It is a plain value: the
// render loop owns it and passes it through Update every frame.
type DragState struct {
	Active       bool
	LastX, LastY float32
}

// Update advances the drag by one frame and returns the next state along
// with the cursor movement since the previous frame. The frame the button
// goes down only anchors the drag and reports zero movement; releasing the
// button resets the state.
func (s DragState) Update(pressed bool, x, y float32) (next DragState, dx, dy float32) {
	if !pressed {
		return DragState{}, 0, 0
	}
	next = DragState{Active: true, LastX: x, LastY: y}
	if !s.Active {
		return next, 0, 0
	}
	return next, x - s.LastX, y - s.LastY
}
