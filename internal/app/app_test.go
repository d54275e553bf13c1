package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

func TestBindMaterials(t *testing.T) {
	mtl := &formats.MTL{
		Materials: map[string]*formats.Material{
			"brick": {Name: "brick", Diffuse: [3]float32{0.5, 0.5, 0.5}, DiffuseMap: `tex\brick.png`},
			"glass": {Name: "glass", Diffuse: [3]float32{0.2, 0.4, 0.9}},
		},
		Order: []string{"brick", "glass"},
	}
	groups := []mesh.Group{
		{Material: "brick", First: 0, Count: 3},
		{Material: "glass", First: 3, Count: 3},
		{Material: "missing", First: 6, Count: 3},
	}

	got := bindMaterials(groups, mtl, "/models", "atlas.jpg")
	require.Len(t, got, 3)

	assert.Equal(t, filepath.Join("/models", "tex", "brick.png"), got["brick"].Texture)
	assert.Equal(t, white, got["brick"].Tint, "mapped materials are untinted")

	assert.Equal(t, filepath.Join("/models", "atlas.jpg"), got["glass"].Texture)
	assert.Equal(t, [3]float32{0.2, 0.4, 0.9}, got["glass"].Tint)

	assert.Equal(t, formats.DefaultMaterial.Diffuse, got["missing"].Tint)
}

func TestBindMaterialsWithoutDefaultTexture(t *testing.T) {
	got := bindMaterials([]mesh.Group{{Material: "plain", Count: 3}}, nil, "/models", "")
	assert.Empty(t, got["plain"].Texture, "empty path selects the fallback texture")
}

func TestResolvePath(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "abs", "a.png")
	tests := []struct {
		name string
		dir  string
		in   string
		want string
	}{
		{"empty", "/m", "", ""},
		{"relative", "/m", "a.png", filepath.Join("/m", "a.png")},
		{"backslashes", "/m", `sub\a.png`, filepath.Join("/m", "sub", "a.png")},
		{"absolute", "/m", abs, abs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolvePath(tt.dir, tt.in))
		})
	}
}

func TestKeyZoom(t *testing.T) {
	assert.Equal(t, float32(1), keyZoom(false, false, 0.02))
	assert.InDelta(t, 0.98, keyZoom(true, false, 0.02), 1e-6)
	assert.InDelta(t, 1.02, keyZoom(false, true, 0.02), 1e-6)
	assert.InDelta(t, 0.98*1.02, keyZoom(true, true, 0.02), 1e-6)
}

func TestSpinYaw(t *testing.T) {
	tests := []struct {
		yaw, dx, speed, want float32
	}{
		{0, 10, 0.3, 3},
		{359, 10, 0.3, 2},
		{1, -10, 0.3, 358},
		{0, 0, 0.3, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, spinYaw(tt.yaw, tt.dx, tt.speed), 1e-4,
			"spinYaw(%v, %v, %v)", tt.yaw, tt.dx, tt.speed)
	}
}

func TestStepSpeed(t *testing.T) {
	tests := []struct {
		name   string
		speed  float64
		faster bool
		want   float64
	}{
		{"double", 1, true, 2},
		{"halve", 1, false, 0.5},
		{"max clamp", 8, true, maxSpeed},
		{"min clamp", minSpeed, false, minSpeed},
		{"reverse keeps sign", -2, true, -4},
		{"zero recovers", 0, true, minSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stepSpeed(tt.speed, tt.faster))
		})
	}
}

func TestNewOrbit(t *testing.T) {
	oc := config.Default().Viewer.Camera
	bounds := geometry.Bounds{Min: math.V3(10, 0, 0), Max: math.V3(12, 2, 2)}

	c := newOrbit(oc, bounds, true)
	assert.Equal(t, oc.Distance, c.Distance, "normalized models keep the configured pose")
	assert.True(t, c.Target.IsZero())

	c = newOrbit(oc, bounds, false)
	assert.Equal(t, math.V3(11, 1, 1), c.Target)
	assert.Greater(t, c.Distance, float32(2))

	c.HandleDrag(100, 0)
	c.Reset()
	assert.Equal(t, math.V3(11, 1, 1), c.Target, "home is the fitted pose")
	assert.Equal(t, oc.Yaw, c.Yaw)
}

func TestOrbitControls(t *testing.T) {
	oc := config.Default().Textured.Camera
	ctl := orbitControls{camera: newOrbit(oc, geometry.EmptyBounds(), true)}
	st := input.NewState()

	st.Apply(input.Event{Type: input.EventMouseDown, Button: input.ButtonLeft, MouseX: 100, MouseY: 100})
	ctl.update(&st)
	assert.Equal(t, oc.Yaw, ctl.camera.Yaw, "first frame only anchors the drag")

	st.Apply(input.Event{Type: input.EventMouseMove, MouseX: 110, MouseY: 100})
	ctl.update(&st)
	assert.InDelta(t, oc.Yaw+10*oc.YawSpeed, ctl.camera.Yaw, 1e-6)

	st.BeginFrame()
	st.Apply(input.Event{Type: input.EventMouseWheel, WheelY: 1})
	ctl.update(&st)
	assert.InDelta(t, oc.Distance*(1-oc.ZoomStep), ctl.camera.Distance, 1e-5)
}

func TestProjectionUsesDegrees(t *testing.T) {
	p := projection(config.ProjectionConfig{FOV: 90, Near: 1, Far: 10}, 1)
	// f = 1/tan(45deg) = 1
	assert.InDelta(t, 1, p[0], 1e-5)
	assert.InDelta(t, 1, p[5], 1e-5)
}
