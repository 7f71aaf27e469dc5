// Package main is the entry point for the geometry shader explosion viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gsexplode/internal/config"
	"github.com/Faultbox/gsexplode/internal/engine/audio"
	"github.com/Faultbox/gsexplode/internal/engine/debug"
	"github.com/Faultbox/gsexplode/internal/engine/renderer"
	"github.com/Faultbox/gsexplode/internal/engine/ui"
	"github.com/Faultbox/gsexplode/internal/engine/watch"
	"github.com/Faultbox/gsexplode/internal/logger"
	"github.com/Faultbox/gsexplode/internal/viewer"
	"github.com/Faultbox/gsexplode/internal/viewer/panel"
)

var clearColor = [4]float32{0.1, 0.1, 0.12, 1}

func main() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()

	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fatal("Config error", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatal("Logger error", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Geometry Shader Explosion ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	backend, err := ui.NewBackend(ui.Options{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		BgColor: clearColor,
	})
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		fatal("Window error", err)
		return 1
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	r, err := renderer.New(renderer.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		ClearColor: clearColor,
	})
	if err != nil {
		logger.Error("failed to create renderer", zap.Error(err))
		fatal("OpenGL error", err)
		return 1
	}
	defer r.Close()

	opts := []viewer.Option{
		viewer.WithPanel(panel.New()),
		viewer.WithScreenshots(debug.NewScreenshotCapture(cfg.Screenshots.Dir, "gsexplode")),
	}
	if path := config.ConfigPath(); path != "" {
		opts = append(opts, viewer.WithConfigPath(path))
	}

	if cue := newCue(cfg.Audio); cue != nil {
		defer cue.Close()
		opts = append(opts, viewer.WithCue(cue))
	}

	if cfg.Shaders.HotReload {
		w, err := watch.New(cfg.Shaders.Vertex, cfg.Shaders.Geometry, cfg.Shaders.Fragment)
		if err != nil {
			logger.Warn("shader hot reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			opts = append(opts, viewer.WithWatcher(w))
		}
	}

	v, err := viewer.New(r, cfg, opts...)
	if err != nil {
		logger.Error("failed to create scene", zap.Error(err))
		fatal("Startup error", err)
		return 1
	}
	defer v.Close()

	loop := &viewer.Loop{
		Backend:  backend,
		Renderer: r,
		Title:    cfg.Window.Title,
		FPS:      cfg.Window.FPS,
	}
	if err := loop.Run(v); err != nil {
		logger.Error("render loop failed", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}

// newCue loads the detonation sound. Audio problems never stop the viewer.
func newCue(cfg config.AudioConfig) *audio.Cue {
	if !cfg.Enabled || cfg.DetonationSound == "" {
		return nil
	}
	cue := audio.New(cfg.Volume)
	if err := cue.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return nil
	}
	if err := cue.LoadFile(cfg.DetonationSound); err != nil {
		logger.Warn("failed to load detonation sound",
			zap.String("path", cfg.DetonationSound),
			zap.Error(err),
		)
		cue.Close()
		return nil
	}
	return cue
}

// fatal reports a startup failure on stderr and, when a display is
// available, in a message box.
func fatal(title string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
	_ = sdl.ShowSimpleMessageBox(sdl.MESSAGEBOX_ERROR, title, err.Error(), nil)
}
