package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshview/pkg/math"
)

const tol = 1e-5

func assertVecInDelta(t *testing.T, want, got math.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func TestComputeBounds(t *testing.T) {
	b := ComputeBounds([]math.Vec3{{X: 1, Y: 2, Z: 3}, {X: -4, Y: 5, Z: 0}, {X: 2, Y: -1, Z: 7}})
	assert.Equal(t, math.Vec3{X: -4, Y: -1, Z: 0}, b.Min)
	assert.Equal(t, math.Vec3{X: 2, Y: 5, Z: 7}, b.Max)
	assert.True(t, b.Valid())
	assert.Equal(t, float32(7), b.MaxDim())
}

func TestComputeBoundsEmpty(t *testing.T) {
	b := ComputeBounds(nil)
	assert.False(t, b.Valid())
	assert.Less(t, b.MaxDim(), float32(0))
}

func TestNormalizeCenter(t *testing.T) {
	tests := []struct {
		name   string
		points []math.Vec3
	}{
		{"cube corner", []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 4, Z: 0}, {X: 0, Y: 0, Z: 1}}},
		{"offset", []math.Vec3{{X: 100, Y: 50, Z: -20}, {X: 110, Y: 52, Z: -25}, {X: 104, Y: 51, Z: -21}}},
		{"flat in z", []math.Vec3{{X: -3, Y: -1, Z: 5}, {X: 3, Y: 1, Z: 5}, {X: 0, Y: 0, Z: 5}}},
		{"tiny", []math.Vec3{{X: 0.001, Y: 0.002, Z: 0}, {X: 0.003, Y: 0, Z: 0.001}, {X: 0, Y: 0, Z: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := append([]math.Vec3(nil), tt.points...)
			fit := NormalizeCenter(pts)
			require.True(t, fit.Applied)

			b := ComputeBounds(pts)
			assertVecInDelta(t, math.Vec3{}, b.Center(), tol)
			assert.InDelta(t, 1.0, b.MaxDim(), tol)
		})
	}
}

func TestNormalizeCenterIdempotent(t *testing.T) {
	pts := []math.Vec3{{X: 3, Y: 9, Z: 1}, {X: -7, Y: 2, Z: 4}, {X: 5, Y: 5, Z: -8}, {X: 0, Y: 1, Z: 2}}
	NormalizeCenter(pts)
	once := append([]math.Vec3(nil), pts...)

	fit := NormalizeCenter(pts)
	assert.InDelta(t, 1.0, fit.Scale, tol)
	for i := range pts {
		assertVecInDelta(t, once[i], pts[i], tol)
	}
}

func TestNormalizeCenterDegenerate(t *testing.T) {
	p := math.Vec3{X: 4, Y: -2, Z: 9}
	pts := []math.Vec3{p, p, p}

	fit := NormalizeCenter(pts)
	assert.False(t, fit.Applied)
	assert.Equal(t, []math.Vec3{p, p, p}, pts)
	assert.Equal(t, p, fit.Apply(p))
}

func TestNormalizeCenterEmpty(t *testing.T) {
	fit := NormalizeCenter(nil)
	assert.False(t, fit.Applied)
}

func TestFitApplyMatchesNormalizedPoints(t *testing.T) {
	orig := []math.Vec3{{X: 1, Y: 1, Z: 1}, {X: 3, Y: 2, Z: 1}, {X: 2, Y: 5, Z: 0}}
	pts := append([]math.Vec3(nil), orig...)
	fit := NormalizeCenter(pts)

	for i := range orig {
		assert.Equal(t, pts[i], fit.Apply(orig[i]))
	}
}
