package debug

import "testing"

func TestFrameTimer(t *testing.T) {
	ft := NewFrameTimer(0.5)
	for i := 0; i < 3; i++ {
		if ft.Tick(0.125) {
			t.Fatalf("tick %d reported before the interval elapsed", i)
		}
	}
	if !ft.Tick(0.125) {
		t.Fatal("fourth tick should complete the interval")
	}
	if got := ft.FPS(); got != 8 {
		t.Errorf("FPS() = %v, want 8", got)
	}
	if got := ft.FrameMS(); got != 125 {
		t.Errorf("FrameMS() = %v, want 125", got)
	}

	// The next interval starts from zero.
	if ft.Tick(0.25) {
		t.Error("counter was not reset")
	}
	if ft.FPS() != 8 {
		t.Error("FPS should hold the previous value until the next report")
	}
}

func TestFrameTimerZeroDelta(t *testing.T) {
	ft := NewFrameTimer(0)
	if ft.Tick(0) {
		t.Error("zero elapsed time must not produce a report")
	}
	if ft.FPS() != 0 {
		t.Errorf("FPS() = %v, want 0", ft.FPS())
	}
}
