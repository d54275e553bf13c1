package formats

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/meshview/pkg/math"
)

const quadOBJ = `# unit quad
mtllib quad.mtl
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl Brick
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ_Quad(t *testing.T) {
	obj, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(obj.Positions) != 4 || len(obj.TexCoords) != 4 || len(obj.Normals) != 1 {
		t.Fatalf("counts = %d/%d/%d, want 4/4/1", len(obj.Positions), len(obj.TexCoords), len(obj.Normals))
	}
	if len(obj.Objects) != 1 || obj.Objects[0].Name != "Quad" {
		t.Fatalf("objects = %+v", obj.Objects)
	}
	if len(obj.MaterialLibs) != 1 || obj.MaterialLibs[0] != "quad.mtl" {
		t.Errorf("MaterialLibs = %v", obj.MaterialLibs)
	}

	face := obj.Objects[0].Faces[0]
	if face.Material != "Brick" {
		t.Errorf("Material = %q, want Brick", face.Material)
	}
	want := OBJCorner{Position: 2, TexCoord: 2, Normal: 0}
	if face.Corners[2] != want {
		t.Errorf("corner 2 = %+v, want %+v", face.Corners[2], want)
	}
	if !obj.HasNormals() {
		t.Error("HasNormals() = false, want true")
	}
	if err := obj.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParseOBJ_FanTriangulation(t *testing.T) {
	obj, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	tris := obj.Triangles()
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	wantPos := [][3]int{{0, 1, 2}, {0, 2, 3}}
	for i, tri := range tris {
		for k := 0; k < 3; k++ {
			if tri.Corners[k].Position != wantPos[i][k] {
				t.Errorf("triangle %d corner %d = %d, want %d", i, k, tri.Corners[k].Position, wantPos[i][k])
			}
		}
		if tri.Material != "Brick" {
			t.Errorf("triangle %d material = %q", i, tri.Material)
		}
	}
}

func TestParseOBJ_CornerForms(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1 2/1 3//1\n"
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	c := obj.Objects[0].Faces[0].Corners
	tests := []OBJCorner{
		{Position: 0, TexCoord: NoIndex, Normal: NoIndex},
		{Position: 1, TexCoord: 0, Normal: NoIndex},
		{Position: 2, TexCoord: NoIndex, Normal: 0},
	}
	for i, want := range tests {
		if c[i] != want {
			t.Errorf("corner %d = %+v, want %+v", i, c[i], want)
		}
	}
	if obj.Objects[0].Name != "default" {
		t.Errorf("implicit object name = %q, want default", obj.Objects[0].Name)
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\nv 5 5 5\nf -4 -1 -2\n"
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	faces := obj.Objects[0].Faces
	if got := faces[0].Corners[0].Position; got != 0 {
		t.Errorf("first face corner 0 = %d, want 0", got)
	}
	if got := faces[1].Corners[1].Position; got != 3 {
		t.Errorf("second face corner 1 = %d, want 3", got)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrZeroIndex},
		{"bad float", "v 0 x 0\n", ErrMalformedOBJ},
		{"short vertex", "v 1 2\n", ErrMalformedOBJ},
		{"bad index", "f a b c\n", ErrMalformedOBJ},
		{"too many slashes", "f 1/1/1/1 2 3\n", ErrMalformedOBJ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseOBJ() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOBJ_IndexOutOfRange(t *testing.T) {
	obj, err := ParseOBJ([]byte("v 0 0 0\nv 1 0 0\nf 1 2 7\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if err := obj.Validate(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Validate() = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := obj.Position(6); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Position(6) = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := obj.Position(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Position(-1) = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := obj.Normal(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Normal(0) = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := obj.TexCoord(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("TexCoord(0) = %v, want ErrIndexOutOfRange", err)
	}
}

func TestParseOBJ_Warnings(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nl 1 2\nl 2 3\nf 1 2\ncstype bspline\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	// l is reported once, the two-corner face once, cstype once.
	if len(obj.Warnings) != 3 {
		t.Errorf("got %d warnings, want 3: %v", len(obj.Warnings), obj.Warnings)
	}
	if obj.FaceCount() != 1 {
		t.Errorf("FaceCount() = %d, want 1", obj.FaceCount())
	}
}

func TestParseOBJ_SmoothGroups(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\ns 1\nf 1 2 3\ns off\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	faces := obj.Objects[0].Faces
	if !faces[0].Smooth || faces[1].Smooth {
		t.Errorf("smooth = %v,%v, want true,false", faces[0].Smooth, faces[1].Smooth)
	}
}

func TestParseOBJ_TexCoordSingleComponent(t *testing.T) {
	obj, err := ParseOBJ([]byte("vt 0.25\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.TexCoords[0] != (math.Vec2{X: 0.25}) {
		t.Errorf("vt = %v, want {0.25 0}", obj.TexCoords[0])
	}
}

func TestMaterialNames(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nusemtl A\nf 1 2 3\nusemtl B\nf 1 2 3\nusemtl A\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	got := strings.Join(obj.MaterialNames(), ",")
	if got != ",A,B" {
		t.Errorf("MaterialNames() = %q, want \",A,B\"", got)
	}
}

func TestWriteOBJ_RoundTrip(t *testing.T) {
	obj, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, obj); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	if !strings.Contains(buf.String(), "f 1/1/1 2/2/1 3/3/1 4/4/1\n") {
		t.Errorf("face line missing from output:\n%s", buf.String())
	}

	again, err := ParseOBJ(buf.Bytes())
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if len(again.Positions) != 4 || again.FaceCount() != 1 {
		t.Errorf("re-parse counts = %d positions, %d faces", len(again.Positions), again.FaceCount())
	}
	if again.Objects[0].Faces[0].Material != "Brick" {
		t.Errorf("material lost: %q", again.Objects[0].Faces[0].Material)
	}
}

func TestParseOBJFile_LoadMaterials(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(objPath, []byte(quadOBJ), 0644); err != nil {
		t.Fatal(err)
	}
	mtlSrc := "newmtl Brick\nKd 0.8 0.2 0.1\nmap_Kd -s 1 1 1 textures/brick.png\n"
	if err := os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte(mtlSrc), 0644); err != nil {
		t.Fatal(err)
	}

	obj, err := ParseOBJFile(objPath)
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}
	if obj.Dir != dir {
		t.Errorf("Dir = %q, want %q", obj.Dir, dir)
	}

	mtl, err := obj.LoadMaterials()
	if err != nil {
		t.Fatalf("LoadMaterials failed: %v", err)
	}
	mat, ok := mtl.Lookup("Brick")
	if !ok {
		t.Fatal("Brick not found")
	}
	if mat.DiffuseMap != "textures/brick.png" {
		t.Errorf("DiffuseMap = %q", mat.DiffuseMap)
	}
}

func TestLoadMaterials_Missing(t *testing.T) {
	obj := &OBJ{MaterialLibs: []string{"nope.mtl"}, Dir: t.TempDir()}
	mtl, err := obj.LoadMaterials()
	if err != nil {
		t.Fatalf("LoadMaterials failed: %v", err)
	}
	if len(mtl.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", mtl.Warnings)
	}
}
