// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window" toml:"window"`
	Shaders     ShaderConfig     `yaml:"shaders" toml:"shaders"`
	Models      ModelsConfig     `yaml:"models" toml:"models"`
	Camera      CameraConfig     `yaml:"camera" toml:"camera"`
	Simulation  SimulationConfig `yaml:"simulation" toml:"simulation"`
	Audio       AudioConfig      `yaml:"audio" toml:"audio"`
	Screenshots ScreenshotConfig `yaml:"screenshots" toml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	FPS    int    `yaml:"fps" toml:"fps"`
}

// ShaderConfig holds shader source paths. Geometry is optional.
type ShaderConfig struct {
	Vertex    string `yaml:"vertex" toml:"vertex"`
	Geometry  string `yaml:"geometry" toml:"geometry"`
	Fragment  string `yaml:"fragment" toml:"fragment"`
	HotReload bool   `yaml:"hot_reload" toml:"hot_reload"`
}

// ModelConfig points at a mesh file and its vertex format descriptor.
type ModelConfig struct {
	Path   string  `yaml:"path" toml:"path"`
	Format string  `yaml:"format" toml:"format"`
	Scale  float32 `yaml:"scale,omitempty" toml:"scale,omitempty"`
}

// ModelsConfig holds the exploded model and the origin indicator.
type ModelsConfig struct {
	Main   ModelConfig `yaml:"main" toml:"main"`
	Origin ModelConfig `yaml:"origin" toml:"origin"`
}

// CameraConfig holds the initial first-person camera.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position" toml:"position"`
	Front       [3]float32 `yaml:"front" toml:"front"`
	Up          [3]float32 `yaml:"up" toml:"up"`
	Speed       float32    `yaml:"speed" toml:"speed"`             // units per second
	Sensitivity float32    `yaml:"sensitivity" toml:"sensitivity"` // degrees per pixel
	FOV         float32    `yaml:"fov" toml:"fov"`                 // vertical, degrees
	Near        float32    `yaml:"near" toml:"near"`
	Far         float32    `yaml:"far" toml:"far"`
}

// SimulationConfig holds the initial explosion parameters.
type SimulationConfig struct {
	TimeMultiplier  float32    `yaml:"time_multiplier" toml:"time_multiplier"`
	Magnitude       float32    `yaml:"magnitude" toml:"magnitude"`
	Stopped         bool       `yaml:"stopped" toml:"stopped"`
	ExplosionOrigin [3]float32 `yaml:"explosion_origin" toml:"explosion_origin"`
	FalloffStrength float32    `yaml:"falloff_strength" toml:"falloff_strength"`
	FalloffRadius   float32    `yaml:"falloff_radius" toml:"falloff_radius"`
	RandomStrength  float32    `yaml:"random_strength" toml:"random_strength"`
	ImpulseDecay    float32    `yaml:"impulse_decay" toml:"impulse_decay"`
	GravityPower    float32    `yaml:"gravity_power" toml:"gravity_power"`
	Seed            float32    `yaml:"seed" toml:"seed"`
}

// AudioConfig holds the detonation cue settings.
type AudioConfig struct {
	Enabled         bool    `yaml:"enabled" toml:"enabled"`
	DetonationSound string  `yaml:"detonation_sound" toml:"detonation_sound"`
	Volume          float64 `yaml:"volume" toml:"volume"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with the stock demo scene.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Geometry Shader Explosion",
			Width:  1000,
			Height: 1000,
			FPS:    60,
		},
		Shaders: ShaderConfig{
			Vertex:   "resources/shaders/vertex-shader.vert",
			Geometry: "resources/shaders/geometry-shader.geom",
			Fragment: "resources/shaders/fragment-shader.frag",
		},
		Models: ModelsConfig{
			Main: ModelConfig{
				Path:   "resources/models/cube.obj",
				Format: "N3F_V3F",
			},
			Origin: ModelConfig{
				Path:   "resources/models/marker.obj",
				Format: "N3F_V3F",
				Scale:  0.05,
			},
		},
		Camera: CameraConfig{
			Position:    [3]float32{1, 1, 1},
			Front:       [3]float32{-3, -3, -3},
			Up:          [3]float32{0, 1, 0},
			Speed:       2.5,
			Sensitivity: 0.1,
			FOV:         60,
			Near:        0.1,
			Far:         100,
		},
		Simulation: SimulationConfig{
			TimeMultiplier:  1,
			Magnitude:       2,
			FalloffStrength: 1,
			FalloffRadius:   2,
			RandomStrength:  0.5,
			ImpulseDecay:    0.1,
			GravityPower:    1,
		},
		Audio: AudioConfig{
			Volume: 0.8,
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
