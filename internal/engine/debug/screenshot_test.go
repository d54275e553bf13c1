package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/meshview/internal/campath"
	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/pkg/math"
)

func TestFlipRows(t *testing.T) {
	// 1x2 bottom-up: row 0 red (bottom), row 1 blue (top).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRows(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRows: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom = %v, want red", got)
	}
}

func TestFlipRowsErrors(t *testing.T) {
	if _, err := FlipRows(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := FlipRows(nil, 0, 2); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshotter(dir, "meshview")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 250e6, time.UTC) }

	path, err := s.SavePixels([]byte{1, 2, 3, 255, 4, 5, 6, 255}, 2, 1)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}
	if want := filepath.Join(dir, "meshview_2024-05-01_12-30-00.250.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	r, g, b, _ := img.At(1, 0).RGBA()
	if r>>8 != 4 || g>>8 != 5 || b>>8 != 6 {
		t.Errorf("pixel = %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestFilenameWithoutDir(t *testing.T) {
	s := NewScreenshotter("", "shot")
	if name := s.Filename(); strings.Contains(name, string(filepath.Separator)) || !strings.HasPrefix(name, "shot_") {
		t.Errorf("Filename = %q", name)
	}
}

func TestBoundsWireframe(t *testing.T) {
	b := geometry.ComputeBounds([]math.Vec3{{X: -1, Y: 0, Z: 2}, {X: 1, Y: 3, Z: 4}})
	v := BoundsWireframe(b, 0.5)
	if len(v) != BoxVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BoxVertexCount*3)
	}
	// First vertex is the padded min corner.
	if v[0] != -1.5 || v[1] != -0.5 || v[2] != 1.5 {
		t.Errorf("min corner = %v", v[:3])
	}
	for i := 0; i < len(v); i += 3 {
		if v[i] != -1.5 && v[i] != 1.5 {
			t.Errorf("x %v not on a face", v[i])
		}
	}
	if BoundsWireframe(geometry.EmptyBounds(), 0) != nil {
		t.Error("empty bounds should produce no lines")
	}
}

func TestPathPolyline(t *testing.T) {
	seg, err := campath.NewSegment([]math.Vec3{
		{X: 0}, {X: 1}, {X: 2}, {X: 3},
	}, 10, math.Vec3{})
	if err != nil {
		t.Fatal(err)
	}
	tl, err := campath.NewTimeline([]campath.Segment{seg, seg})
	if err != nil {
		t.Fatal(err)
	}
	v := PathPolyline(tl, 4)
	// 2 segments * 4 lines * 2 endpoints * 3 floats.
	if len(v) != 48 {
		t.Fatalf("len = %d, want 48", len(v))
	}
	if v[0] != 1 {
		t.Errorf("path starts at x=%v, want 1", v[0])
	}
	for i := 0; i < len(v); i += 3 {
		if v[i] < 1-1e-4 || v[i] > 2+1e-4 {
			t.Errorf("x = %v outside the spline span", v[i])
		}
	}
}
