// Package config handles viewer configuration loading and management.
package config

// Scene names accepted by Config.Scene.
const (
	SceneViewer     = "viewer"
	SceneTextured   = "textured"
	SceneFlythrough = "flythrough"
)

// Config holds all application settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Scene       string           `yaml:"scene"`
	Viewer      ViewerConfig     `yaml:"viewer"`
	Textured    TexturedConfig   `yaml:"textured"`
	Flythrough  FlythroughConfig `yaml:"flythrough"`
	Logging     LoggingConfig    `yaml:"logging"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	ShowFPS    bool   `yaml:"show_fps"`
}

// ProjectionConfig holds perspective projection parameters.
type ProjectionConfig struct {
	FOV  float32 `yaml:"fov"` // vertical, degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// OrbitConfig holds the initial pose and limits of an orbit camera.
type OrbitConfig struct {
	Distance    float32 `yaml:"distance"`
	Yaw         float32 `yaml:"yaw"`   // radians
	Pitch       float32 `yaml:"pitch"` // radians
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	PitchLimit  float32 `yaml:"pitch_limit"` // radians, symmetric
	YawSpeed    float32 `yaml:"yaw_speed"`   // radians per pixel, sign sets direction
	PitchSpeed  float32 `yaml:"pitch_speed"` // radians per pixel
	ZoomStep    float32 `yaml:"zoom_step"`   // fraction of distance per wheel notch or key frame
}

// ViewerConfig configures the untextured viewer scene.
type ViewerConfig struct {
	Model      string           `yaml:"model"`
	Normalize  bool             `yaml:"normalize"`
	Normals    string           `yaml:"normals"` // auto, file or generate
	Projection ProjectionConfig `yaml:"projection"`
	Camera     OrbitConfig      `yaml:"camera"`
	BaseColor  [3]float32       `yaml:"base_color"`
	LightDir   [3]float32       `yaml:"light_dir"`
	SkyTop     [3]float32       `yaml:"sky_top"`
	SkyBottom  [3]float32       `yaml:"sky_bottom"`
}

// TexturedConfig configures the textured multi-material scene.
type TexturedConfig struct {
	Model         string           `yaml:"model"`
	Normalize     bool             `yaml:"normalize"`
	Projection    ProjectionConfig `yaml:"projection"`
	Camera        OrbitConfig      `yaml:"camera"`
	ModelYawSpeed float32          `yaml:"model_yaw_speed"` // degrees per pixel
	ClearColor    [3]float32       `yaml:"clear_color"`
	LightDir      [3]float32       `yaml:"light_dir"`
	FlipTextures  bool             `yaml:"flip_textures"`
	// DefaultTexture is bound for materials without map_Kd, resolved
	// relative to the model. Empty means the gray fallback.
	DefaultTexture string `yaml:"default_texture"`
}

// SegmentConfig is one camera path segment.
type SegmentConfig struct {
	Points     [][3]float32 `yaml:"points"`
	Duration   float64      `yaml:"duration"` // seconds
	LookCenter [3]float32   `yaml:"look_center"`
}

// FlythroughConfig configures the camera path scene.
type FlythroughConfig struct {
	Model               string           `yaml:"model"`
	Normalize           bool             `yaml:"normalize"`
	Projection          ProjectionConfig `yaml:"projection"`
	ClearColor          [3]float32       `yaml:"clear_color"`
	FlipTextures        bool             `yaml:"flip_textures"`
	Segments            []SegmentConfig  `yaml:"segments"`
	LookAhead           float32          `yaml:"look_ahead"`
	LookMode            string           `yaml:"look_mode"` // ahead or center
	GroundClamp         bool             `yaml:"ground_clamp"`
	Speed               float64          `yaml:"speed"`
	SunDegreesPerSecond float32          `yaml:"sun_degrees_per_second"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScreenshotConfig holds screenshot capture settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "meshview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneViewer,
		Viewer: ViewerConfig{
			Model:     "assets/model.obj",
			Normalize: true,
			Normals:   "auto",
			Projection: ProjectionConfig{
				FOV:  50,
				Near: 0.01,
				Far:  100,
			},
			Camera: OrbitConfig{
				Distance:    2.2,
				Yaw:         2.4416, // pi - 0.7
				Pitch:       0.3,
				MinDistance: 0.05,
				MaxDistance: 50,
				PitchLimit:  1.3,
				YawSpeed:    -0.005,
				PitchSpeed:  0.005,
				ZoomStep:    0.02,
			},
			BaseColor: [3]float32{0.75, 0.80, 1.0},
			LightDir:  [3]float32{0.7, 1.0, 0.5},
			SkyTop:    [3]float32{0.5, 0.75, 1.0},
			SkyBottom: [3]float32{1.0, 0.85, 0.6},
		},
		Textured: TexturedConfig{
			Model:     "assets/textured/model.obj",
			Normalize: true,
			Projection: ProjectionConfig{
				FOV:  50,
				Near: 0.01,
				Far:  50,
			},
			Camera: OrbitConfig{
				Distance:    2.5,
				Yaw:         0,
				Pitch:       0.3,
				MinDistance: 0.3,
				MaxDistance: 20,
				PitchLimit:  1.5,
				YawSpeed:    0.003,
				PitchSpeed:  0.003,
				ZoomStep:    0.1,
			},
			ModelYawSpeed: 0.3,
			ClearColor:    [3]float32{0.15, 0.18, 0.22},
			LightDir:      [3]float32{0.5, 1.0, 0.3},
			FlipTextures:  true,
		},
		Flythrough: FlythroughConfig{
			Model:     "assets/SchoolSceneDay/SchoolSceneDay.obj",
			Normalize: false,
			Projection: ProjectionConfig{
				FOV:  45,
				Near: 1,
				Far:  500,
			},
			ClearColor:          [3]float32{0.7, 0.85, 1.0},
			FlipTextures:        true,
			Segments:            CampusSegments(),
			LookAhead:           0.02,
			LookMode:            "ahead",
			GroundClamp:         true,
			Speed:               1,
			SunDegreesPerSecond: 5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
	}
}

// CampusSegments returns the default two-leg campus flythrough: an aerial
// approach that descends to walking height, then a high sweep.
func CampusSegments() []SegmentConfig {
	return []SegmentConfig{
		{
			Points: [][3]float32{
				{-100, 100, -56},
				{-60, 85, -56},
				{-20, 70, -55},
				{40, 15, -55},
				{31, 1.5, -31},
				{31, 1.6, 11},
				{31, 1.5, 27},
				{31, 1.5, 31},
				{0, 1.5, 31},
				{-21.5, 1.5, 30},
				{-21.5, 1.5, 17},
				{-15, 4, 10},
				{-15, 4, 10},
			},
			Duration:   35,
			LookCenter: [3]float32{-13, -5, 61},
		},
		{
			Points: [][3]float32{
				{-21, 30, 78},
				{-21, 20, 78},
				{79, 17, 49},
				{40, 15, -49},
				{-46, 16, 4},
				{-47, 20, 84},
				{-47, 30, -84},
			},
			Duration:   20,
			LookCenter: [3]float32{46, 30, 72},
		},
	}
}
