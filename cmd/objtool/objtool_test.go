package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/pkg/formats"
)

// quad is a 2x2 square in the XZ plane at y=4, written as one polygon.
const quad = `mtllib scene.mtl
v 0 4 0
v 2 4 0
v 2 4 2
v 0 4 2
usemtl floor
f 1 2 3 4
`

func parse(t *testing.T, src string) *formats.OBJ {
	t.Helper()
	o, err := formats.ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	return o
}

func TestNormalizeOBJGeneratesNormals(t *testing.T) {
	o := parse(t, quad)

	fit, presence, err := normalizeOBJ(o, geometry.NormalsUnknown, true)
	if err != nil {
		t.Fatalf("normalizeOBJ: %v", err)
	}
	if !fit.Applied || fit.Scale != 0.5 {
		t.Errorf("fit = %+v, want applied with scale 0.5", fit)
	}
	if presence != geometry.NormalsAbsent {
		t.Errorf("presence = %v, want absent", presence)
	}

	b := geometry.ComputeBounds(o.Positions)
	if b.Min.X != -0.5 || b.Max.X != 0.5 || b.Min.Y != 0 || b.Max.Y != 0 {
		t.Errorf("bounds = %+v, want x in [-0.5,0.5] and flat y=0", b)
	}

	if len(o.Normals) != len(o.Positions) {
		t.Fatalf("normals = %d, want one per position", len(o.Normals))
	}
	for i, n := range o.Normals {
		// Counter-clockwise seen from -Y, so the face points down.
		if n.X != 0 || n.Y != -1 || n.Z != 0 {
			t.Errorf("normal %d = %v, want (0,-1,0)", i, n)
		}
	}
	for _, c := range o.Objects[0].Faces[0].Corners {
		if c.Normal != c.Position {
			t.Errorf("corner %+v does not reference its position's normal", c)
		}
	}
}

func TestNormalizeOBJKeepsSuppliedNormals(t *testing.T) {
	o := parse(t, quad+"vn 0 1 0\nf 1//1 2//1 3//1\n")

	_, presence, err := normalizeOBJ(o, geometry.NormalsUnknown, false)
	if err != nil {
		t.Fatal(err)
	}
	if presence != geometry.NormalsSupplied {
		t.Errorf("presence = %v, want supplied", presence)
	}
	if len(o.Normals) != 1 {
		t.Errorf("normals replaced: %d", len(o.Normals))
	}
	if o.Positions[1].X != 2 {
		t.Error("positions moved without fit")
	}
}

func TestNormalizeOBJRejectsBadIndex(t *testing.T) {
	o := parse(t, "v 0 0 0\nv 1 0 0\nf 1 2 9\n")
	if _, _, err := normalizeOBJ(o, geometry.NormalsAbsent, true); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	o := parse(t, quad)
	if _, _, err := normalizeOBJ(o, geometry.NormalsAbsent, true); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := formats.WriteOBJ(&buf, o); err != nil {
		t.Fatal(err)
	}
	back := parse(t, buf.String())
	if !back.HasNormals() || len(back.Normals) != 4 {
		t.Errorf("written file lost its normals:\n%s", buf.String())
	}
}

func TestWriteInfo(t *testing.T) {
	o := parse(t, quad)
	mtl := &formats.MTL{Materials: map[string]*formats.Material{}}

	var buf bytes.Buffer
	if err := writeInfo(&buf, "quad.obj", o, mtl); err != nil {
		t.Fatalf("writeInfo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Positions:  4",
		"Normals:    0 (absent)",
		"Faces:      1",
		"Triangles:  2",
		"Max dim:    2",
		"floor",
		"missing",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSamplePath(t *testing.T) {
	tl, err := config.Default().Flythrough.Timeline()
	if err != nil {
		t.Fatal(err)
	}

	samples := samplePath(tl, 11)
	if len(samples) != 11 {
		t.Fatalf("len = %d, want 11", len(samples))
	}
	if samples[0].Time != 0 || samples[0].Segment != 0 || samples[0].LocalT != 0 {
		t.Errorf("first sample = %+v, want start of segment 0", samples[0])
	}
	if last := samples[len(samples)-1]; last.Segment != 1 {
		t.Errorf("last sample segment = %d, want 1", last.Segment)
	}
	for i, s := range samples {
		if s.Position[1] < 0 {
			t.Errorf("sample %d below ground: %v", i, s.Position)
		}
	}

	if got := samplePath(tl, 0); len(got) != 1 {
		t.Errorf("samplePath(0) = %d samples, want 1", len(got))
	}
}

func TestWriteSamples(t *testing.T) {
	samples := []pathSample{{Time: 1.5, Segment: 1, LocalT: 0.25, Position: [3]float32{1, 2, 3}, Target: [3]float32{4, 5, 6}}}

	var csv bytes.Buffer
	if err := writeSamples(&csv, samples, "csv"); err != nil {
		t.Fatal(err)
	}
	if want := "t,segment,local_t,px,py,pz,tx,ty,tz\n1.5000,1,0.2500,1,2,3,4,5,6\n"; csv.String() != want {
		t.Errorf("csv = %q, want %q", csv.String(), want)
	}

	var y bytes.Buffer
	if err := writeSamples(&y, samples, "yaml"); err != nil {
		t.Fatal(err)
	}
	var back []pathSample
	if err := yaml.Unmarshal(y.Bytes(), &back); err != nil {
		t.Fatalf("yaml output does not parse: %v", err)
	}
	if len(back) != 1 || back[0] != samples[0] {
		t.Errorf("yaml = %+v, want %+v", back, samples)
	}

	if err := writeSamples(&y, samples, "xml"); err == nil {
		t.Error("expected unknown format error")
	}
}

func TestCmdConfigWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshview.yaml")
	if err := cmdConfig([]string{"-o", path, "-scene", "textured", "-model", "room.obj"}); err != nil {
		t.Fatalf("cmdConfig: %v", err)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Scene != config.SceneTextured {
		t.Errorf("Scene = %q", cfg.Scene)
	}
	if cfg.Textured.Model != "room.obj" {
		t.Errorf("Textured.Model = %q", cfg.Textured.Model)
	}
}

func TestCmdConfigRejectsUnknownScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshview.yaml")
	if err := cmdConfig([]string{"-o", path, "-scene", "cinema"}); err == nil {
		t.Error("expected an error for an unknown scene")
	}
}
