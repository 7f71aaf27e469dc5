package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no config file exists in any search location.
var ErrNotFound = errors.New("no config file found")

// Error reports a missing, malformed or invalid configuration.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load loads configuration with priority: defaults < file < flags.
// A config file is required.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath == "" {
		return nil, &Error{Err: ErrNotFound}
	}

	if err := loadFromFile(cfg, configPath); err != nil {
		return nil, &Error{Path: configPath, Err: err}
	}

	applyFlags(cfg)

	if err := cfg.expandPaths(); err != nil {
		return nil, &Error{Path: configPath, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Path: configPath, Err: err}
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.toml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	home, _ := homedir.Dir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "gsexplode")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gsexplode")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gsexplode")
		}
		return filepath.Join(home, ".config", "gsexplode")
	}
}

// loadFromFile merges a YAML or TOML file (chosen by extension) into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("empty config file")
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// expandPaths resolves a leading ~ in every file path.
func (c *Config) expandPaths() error {
	paths := []*string{
		&c.Shaders.Vertex,
		&c.Shaders.Geometry,
		&c.Shaders.Fragment,
		&c.Models.Main.Path,
		&c.Models.Origin.Path,
		&c.Audio.DetonationSound,
		&c.Screenshots.Dir,
		&c.Logging.LogFile,
	}
	for _, p := range paths {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expanding %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the settings the viewer cannot start without.
// Simulation values are not range-checked.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS <= 0 {
		errs = append(errs, fmt.Errorf("window fps must be positive, got %d", c.Window.FPS))
	}
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		errs = append(errs, errors.New("vertex and fragment shader paths are required"))
	}
	if c.Models.Main.Path == "" || c.Models.Main.Format == "" {
		errs = append(errs, errors.New("main model path and format are required"))
	}
	if c.Models.Origin.Path == "" || c.Models.Origin.Format == "" {
		errs = append(errs, errors.New("origin model path and format are required"))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera planes must satisfy 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Front == [3]float32{} {
		errs = append(errs, errors.New("camera front must be non-zero"))
	}
	return errors.Join(errs...)
}
