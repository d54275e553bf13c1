package mesh

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/pkg/formats"
)

const eps = 1e-5

func parse(t *testing.T, src string) *formats.OBJ {
	t.Helper()
	obj, err := formats.ParseOBJ([]byte(src))
	require.NoError(t, err)
	return obj
}

// Two unit triangles sharing the edge (0,0,0)-(0,1,0): one faces +Z, the
// other +X.
const hinge = `
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 2 3
f 1 3 4
`

func TestVertexStride(t *testing.T) {
	assert.Equal(t, uintptr(Stride), unsafe.Sizeof(Vertex{}))
}

func TestBuildPerSlotNormals(t *testing.T) {
	d, err := Build(parse(t, hinge), Options{})
	require.NoError(t, err)

	require.Len(t, d.Vertices, 6)
	assert.Equal(t, 2, d.TriangleCount())
	assert.Equal(t, geometry.NormalsAbsent, d.Presence)
	for i := 0; i < 3; i++ {
		assert.Equal(t, [3]float32{0, 0, 1}, d.Vertices[i].Normal, "slot %d", i)
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, [3]float32{1, 0, 0}, d.Vertices[i].Normal, "slot %d", i)
	}
	// Without Normalize positions are untouched.
	assert.Equal(t, [3]float32{1, 0, 0}, d.Vertices[1].Position)
	assert.False(t, d.Fit.Applied)
}

func TestBuildIndexedNormals(t *testing.T) {
	d, err := Build(parse(t, hinge), Options{Mode: NormalsIndexed, Normalize: true})
	require.NoError(t, err)

	const r = 0.70710677
	shared := d.Vertices[0].Normal
	assert.InDelta(t, r, shared[0], eps)
	assert.InDelta(t, 0, shared[1], eps)
	assert.InDelta(t, r, shared[2], eps)
	assert.Equal(t, shared, d.Vertices[3].Normal, "same OBJ vertex, same normal")

	// Unshared corners keep their face normal.
	assert.Equal(t, [3]float32{0, 0, 1}, d.Vertices[1].Normal)
	assert.Equal(t, [3]float32{1, 0, 0}, d.Vertices[5].Normal)
}

func TestBuildIndexedIgnoresFileNormals(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 -1 0
f 1//1 2//1 3//1
`
	d, err := Build(parse(t, src), Options{Mode: NormalsIndexed})
	require.NoError(t, err)
	assert.Equal(t, geometry.NormalsAbsent, d.Presence)
	assert.Equal(t, [3]float32{0, 0, 1}, d.Vertices[0].Normal)
}

func TestBuildNormalizes(t *testing.T) {
	d, err := Build(parse(t, hinge), Options{Normalize: true})
	require.NoError(t, err)

	assert.True(t, d.Fit.Applied)
	assert.Equal(t, [3]float32{-0.5, -0.5, -0.5}, d.Vertices[0].Position)
	assert.InDelta(t, 1, d.Bounds.MaxDim(), eps)
	c := d.Bounds.Center()
	assert.InDelta(t, 0, c.X, eps)
	assert.InDelta(t, 0, c.Y, eps)
	assert.InDelta(t, 0, c.Z, eps)
}

func TestBuildSuppliedNormalsPassThrough(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 -1 0
f 1//1 2//1 3//1
`
	d, err := Build(parse(t, src), Options{})
	require.NoError(t, err)
	assert.Equal(t, geometry.NormalsSupplied, d.Presence)
	for _, v := range d.Vertices {
		assert.Equal(t, [3]float32{0, -1, 0}, v.Normal)
	}
}

func TestBuildExplicitPresence(t *testing.T) {
	// Supplied with no file normals keeps the zero vectors.
	d, err := Build(parse(t, hinge), Options{Presence: geometry.NormalsSupplied})
	require.NoError(t, err)
	assert.Equal(t, [3]float32{}, d.Vertices[0].Normal)

	// Absent regenerates even when the file has normals.
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 -1 0
f 1//1 2//1 3//1
`
	d, err = Build(parse(t, src), Options{Presence: geometry.NormalsAbsent})
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0, 0, 1}, d.Vertices[0].Normal)
}

func TestBuildGroupsByMaterial(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0.25 0.75
usemtl brick
f 1/1 2/1 3/1
usemtl glass
f 1 3 4
usemtl brick
f 1 2 3 4
`
	d, err := Build(parse(t, src), Options{})
	require.NoError(t, err)

	require.Len(t, d.Groups, 2)
	assert.Equal(t, Group{Material: "brick", First: 0, Count: 9}, d.Groups[0])
	assert.Equal(t, Group{Material: "glass", First: 9, Count: 3}, d.Groups[1])
	assert.Len(t, d.Vertices, 12)

	assert.Equal(t, [2]float32{0.25, 0.75}, d.Vertices[0].TexCoord)
	assert.Equal(t, [2]float32{0, 0}, d.Vertices[9].TexCoord, "missing vt is zero")
}

func TestBuildIndexOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"position", "v 0 0 0\nv 1 0 0\nf 1 2 3\n"},
		{"texcoord", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/2 2/1 3/1\n"},
		{"normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(parse(t, tt.src), Options{})
			assert.ErrorIs(t, err, formats.ErrIndexOutOfRange)
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	d, err := Build(parse(t, "v 0 0 0\n"), Options{Normalize: true})
	require.NoError(t, err)
	assert.Empty(t, d.Vertices)
	assert.Empty(t, d.Groups)
	assert.False(t, d.Fit.Applied)
}

func TestPositionsCopy(t *testing.T) {
	d, err := Build(parse(t, hinge), Options{})
	require.NoError(t, err)
	p := d.Positions()
	require.Len(t, p, 6)
	p[0].X = 42
	assert.Equal(t, float32(0), d.Vertices[0].Position[0])
}
