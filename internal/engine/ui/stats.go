package ui

import (
	"fmt"
	"runtime"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/meshview/internal/engine/debug"
)

// StatsOverlay renders frame timing, mesh and memory figures in a corner.
type StatsOverlay struct {
	frames *debug.FrameTimer

	memStats      runtime.MemStats
	memUpdateTime float64

	// Mesh stats
	Triangles int
	Vertices  int
	DrawCalls int
	Materials int

	// Display toggles
	ShowMesh   bool
	ShowMemory bool
	Enabled    bool
}

// NewStatsOverlay creates an overlay with FPS and mesh figures shown.
func NewStatsOverlay() *StatsOverlay {
	return &StatsOverlay{
		frames:   debug.NewFrameTimer(0.5),
		ShowMesh: true,
		Enabled:  true,
	}
}

// Update records one frame of dt seconds.
func (s *StatsOverlay) Update(dt float64) {
	s.frames.Tick(dt)

	// Memory stats every 2 seconds
	s.memUpdateTime += dt
	if s.memUpdateTime >= 2.0 {
		runtime.ReadMemStats(&s.memStats)
		s.memUpdateTime = 0
	}
}

// Render draws the overlay at pos.
func (s *StatsOverlay) Render(pos imgui.Vec2) {
	if !s.Enabled {
		return
	}

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(imgui.NewVec2(220, 0))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)

	if imgui.BeginV("##StatsOverlay", nil, flags) {
		s.renderFPS()
		if s.ShowMesh {
			s.renderMesh()
		}
		if s.ShowMemory {
			s.renderMemory()
		}
	}
	imgui.End()

	imgui.PopStyleVar()
}

func (s *StatsOverlay) renderFPS() {
	fps := s.frames.FPS()
	imgui.TextColored(fpsColor(fps), fmt.Sprintf("FPS: %.1f", fps))
	imgui.SameLine()
	imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", s.frames.FrameMS()))
}

func (s *StatsOverlay) renderMesh() {
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Triangles: %d", s.Triangles))
	imgui.Text(fmt.Sprintf("Vertices: %d", s.Vertices))
	imgui.Text(fmt.Sprintf("Materials: %d", s.Materials))
	imgui.Text(fmt.Sprintf("Draw Calls: %d", s.DrawCalls))
}

func (s *StatsOverlay) renderMemory() {
	imgui.Separator()
	imgui.Text("Memory")
	imgui.Text(fmt.Sprintf("  Alloc: %s", FormatBytes(int64(s.memStats.Alloc))))
	imgui.Text(fmt.Sprintf("  Sys: %s", FormatBytes(int64(s.memStats.Sys))))
	imgui.Text(fmt.Sprintf("  GC: %d", s.memStats.NumGC))
}

// RenderSettings renders the overlay toggles.
func (s *StatsOverlay) RenderSettings() {
	if imgui.CollapsingHeaderTreeNodeFlagsV("Stats Overlay", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.Checkbox("Enabled", &s.Enabled)
		imgui.Checkbox("Show Mesh", &s.ShowMesh)
		imgui.Checkbox("Show Memory", &s.ShowMemory)
	}
}

// fpsColor is green at 60 and above, yellow from 30 and red below.
func fpsColor(fps float64) imgui.Vec4 {
	switch {
	case fps < 30:
		return imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
	case fps < 60:
		return imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
	default:
		return imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
	}
}

// FormatBytes formats a byte count as a human readable string.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
