package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Window width")
	flagHeight = flag.Int("height", 0, "Window height")
	flagFPS    = flag.Int("fps", 0, "Target frame rate")
	flagModel  = flag.String("model", "", "Path to the OBJ model to explode")
	flagFormat = flag.String("format", "", "Vertex format descriptor of --model, e.g. T2F_N3F_V3F")
	flagPaused = flag.Bool("paused", false, "Start with the simulation stopped")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagFPS > 0 {
		cfg.Window.FPS = *flagFPS
	}
	if *flagModel != "" {
		cfg.Models.Main.Path = *flagModel
	}
	if *flagFormat != "" {
		cfg.Models.Main.Format = *flagFormat
	}
	if *flagPaused {
		cfg.Simulation.Stopped = true
	}
}
