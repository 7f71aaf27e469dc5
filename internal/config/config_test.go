package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Title != "Geometry Shader Explosion" {
		t.Errorf("expected default title, got %q", cfg.Window.Title)
	}
	if cfg.Window.Width != 1000 || cfg.Window.Height != 1000 {
		t.Errorf("expected 1000x1000, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Window.FPS)
	}

	if cfg.Models.Main.Format != "N3F_V3F" {
		t.Errorf("expected main format N3F_V3F, got %s", cfg.Models.Main.Format)
	}

	if cfg.Camera.Position != [3]float32{1, 1, 1} {
		t.Errorf("expected camera position (1,1,1), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Front != [3]float32{-3, -3, -3} {
		t.Errorf("expected camera front (-3,-3,-3), got %v", cfg.Camera.Front)
	}
	if cfg.Camera.Up != [3]float32{0, 1, 0} {
		t.Errorf("expected camera up (0,1,0), got %v", cfg.Camera.Up)
	}

	if cfg.Simulation.TimeMultiplier != 1 {
		t.Errorf("expected time multiplier 1, got %f", cfg.Simulation.TimeMultiplier)
	}
	if cfg.Simulation.Stopped {
		t.Error("expected simulation to run by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "Car"
  width: 1920
  height: 1080
  fps: 144

shaders:
  geometry: ""
  hot_reload: true

models:
  main:
    path: "resources/models/car.obj"
    format: "T2F_N3F_V3F"

camera:
  position: [0, 2, 5]
  fov: 75

simulation:
  time_multiplier: -0.5
  magnitude: 4
  stopped: true
  explosion_origin: [0.5, 0, 0]
  falloff_radius: 0

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "Car" {
		t.Errorf("expected title Car, got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.FPS != 144 {
		t.Errorf("expected fps 144, got %d", cfg.Window.FPS)
	}

	if cfg.Shaders.Geometry != "" {
		t.Errorf("expected geometry stage to be disabled, got %s", cfg.Shaders.Geometry)
	}
	if cfg.Shaders.Vertex != "resources/shaders/vertex-shader.vert" {
		t.Errorf("expected vertex shader default to survive merge, got %s", cfg.Shaders.Vertex)
	}
	if !cfg.Shaders.HotReload {
		t.Error("expected hot_reload to be true")
	}

	if cfg.Models.Main.Format != "T2F_N3F_V3F" {
		t.Errorf("expected format T2F_N3F_V3F, got %s", cfg.Models.Main.Format)
	}
	if cfg.Camera.Position != [3]float32{0, 2, 5} {
		t.Errorf("expected camera position (0,2,5), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.FOV != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Camera.FOV)
	}

	if cfg.Simulation.TimeMultiplier != -0.5 {
		t.Errorf("expected time multiplier -0.5, got %f", cfg.Simulation.TimeMultiplier)
	}
	if !cfg.Simulation.Stopped {
		t.Error("expected stopped to be true")
	}
	if cfg.Simulation.ExplosionOrigin != [3]float32{0.5, 0, 0} {
		t.Errorf("expected origin (0.5,0,0), got %v", cfg.Simulation.ExplosionOrigin)
	}
	// Out-of-range simulation values are accepted as-is.
	if cfg.Simulation.FalloffRadius != 0 {
		t.Errorf("expected falloff radius 0, got %f", cfg.Simulation.FalloffRadius)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected config to validate, got %v", err)
	}

	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
[window]
title = "TOML scene"
fps = 30

[models.main]
path = "scene.obj"
format = "V3F"

[simulation]
magnitude = 7.5
gravity_power = 2.0
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load toml config: %v", err)
	}

	if cfg.Window.Title != "TOML scene" {
		t.Errorf("expected title 'TOML scene', got %s", cfg.Window.Title)
	}
	if cfg.Window.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Window.FPS)
	}
	if cfg.Window.Width != 1000 {
		t.Errorf("expected default width to survive merge, got %d", cfg.Window.Width)
	}
	if cfg.Models.Main.Path != "scene.obj" || cfg.Models.Main.Format != "V3F" {
		t.Errorf("unexpected main model %+v", cfg.Models.Main)
	}
	if cfg.Simulation.Magnitude != 7.5 {
		t.Errorf("expected magnitude 7.5, got %f", cfg.Simulation.Magnitude)
	}
	if cfg.Simulation.GravityPower != 2 {
		t.Errorf("expected gravity power 2, got %f", cfg.Simulation.GravityPower)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("\n\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading empty config, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }},
		{"missing vertex shader", func(c *Config) { c.Shaders.Vertex = "" }},
		{"missing main format", func(c *Config) { c.Models.Main.Format = "" }},
		{"missing origin path", func(c *Config) { c.Models.Origin.Path = "" }},
		{"far before near", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"zero front", func(c *Config) { c.Camera.Front = [3]float32{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[window]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.toml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "model and format flags",
			setup: func() {
				*flagModel = "car.obj"
				*flagFormat = "T2F_N3F_V3F"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Models.Main.Path != "car.obj" {
					t.Errorf("expected model car.obj, got %s", cfg.Models.Main.Path)
				}
				if cfg.Models.Main.Format != "T2F_N3F_V3F" {
					t.Errorf("expected format T2F_N3F_V3F, got %s", cfg.Models.Main.Format)
				}
			},
			teardown: func() {
				*flagModel = ""
				*flagFormat = ""
			},
		},
		{
			name:  "paused flag",
			setup: func() { *flagPaused = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Simulation.Stopped {
					t.Error("expected simulation to be stopped with paused flag")
				}
			},
			teardown: func() { *flagPaused = false },
		},
		{
			name: "size and fps flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
				*flagFPS = 120
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
				if cfg.Window.FPS != 120 {
					t.Errorf("expected fps 120, got %d", cfg.Window.FPS)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
				*flagFPS = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadMissingIsConfigError(t *testing.T) {
	*flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { *flagConfig = "" }()

	_, err := Load()
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
	if cfgErr.Path != *flagConfig {
		t.Errorf("expected error path %s, got %s", *flagConfig, cfgErr.Path)
	}
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := "models:\n  main:\n    path: \"~/models/car.obj\"\n    format: \"N3F_V3F\"\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	want := filepath.Join(home, "models", "car.obj")
	if cfg.Models.Main.Path != want {
		t.Errorf("expected %s, got %s", want, cfg.Models.Main.Path)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.Simulation.Magnitude = 9

			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo failed: %v", err)
			}

			loaded := Default()
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			if loaded.Simulation.Magnitude != 9 {
				t.Errorf("expected magnitude 9 after reload, got %f", loaded.Simulation.Magnitude)
			}
		})
	}
}
