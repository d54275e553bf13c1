package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshview/internal/campath"
	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/pkg/math"
)

// ErrUnknownScene is returned for a scene name other than the three demos.
var ErrUnknownScene = errors.New("unknown scene")

// Validate checks settings that would otherwise fail late, after the window
// is open. The flythrough timeline is built eagerly so a bad path is
// reported at startup.
func (c *Config) Validate() error {
	switch c.Scene {
	case SceneViewer, SceneTextured, SceneFlythrough:
	default:
		return fmt.Errorf("%w %q", ErrUnknownScene, c.Scene)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseNormalPolicy(c.Viewer.Normals); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	for name, p := range map[string]ProjectionConfig{
		SceneViewer:     c.Viewer.Projection,
		SceneTextured:   c.Textured.Projection,
		SceneFlythrough: c.Flythrough.Projection,
	} {
		if err := p.validate(); err != nil {
			return fmt.Errorf("%s projection: %w", name, err)
		}
	}

	if c.Scene == SceneFlythrough {
		if _, err := c.Flythrough.Timeline(); err != nil {
			return fmt.Errorf("flythrough: %w", err)
		}
	}
	return nil
}

func (p ProjectionConfig) validate() error {
	if !(p.FOV > 0 && p.FOV < 180) {
		return fmt.Errorf("fov %v must be in (0, 180)", p.FOV)
	}
	if !(p.Near > 0 && p.Far > p.Near) {
		return fmt.Errorf("near %v and far %v must satisfy 0 < near < far", p.Near, p.Far)
	}
	return nil
}

// SetModel overrides the model path of the selected scene.
func (c *Config) SetModel(path string) {
	switch c.Scene {
	case SceneTextured:
		c.Textured.Model = path
	case SceneFlythrough:
		c.Flythrough.Model = path
	default:
		c.Viewer.Model = path
	}
}

// ParseNormalPolicy maps the viewer "normals" setting onto a presence
// signal. "auto" scans the file's normals, "file" trusts them as given and
// "generate" always synthesizes.
func ParseNormalPolicy(s string) (geometry.NormalPresence, error) {
	switch s {
	case "", "auto":
		return geometry.NormalsUnknown, nil
	case "file":
		return geometry.NormalsSupplied, nil
	case "generate":
		return geometry.NormalsAbsent, nil
	}
	return geometry.NormalsUnknown, fmt.Errorf("unknown normals policy %q", s)
}

// Timeline builds the camera path described by the flythrough settings.
func (f FlythroughConfig) Timeline() (*campath.Timeline, error) {
	segs := make([]campath.Segment, 0, len(f.Segments))
	for i, sc := range f.Segments {
		pts := make([]math.Vec3, len(sc.Points))
		for j, p := range sc.Points {
			pts[j] = math.FromArray(p)
		}
		seg, err := campath.NewSegment(pts, sc.Duration, math.FromArray(sc.LookCenter))
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segs = append(segs, seg)
	}

	mode, err := campath.ParseLookMode(f.LookMode)
	if err != nil {
		return nil, err
	}
	opts := []campath.Option{
		campath.WithLookMode(mode),
		campath.WithGroundClamp(f.GroundClamp),
	}
	if f.LookAhead != 0 {
		opts = append(opts, campath.WithLookAhead(f.LookAhead))
	}

	return campath.NewTimeline(segs, opts...)
}
