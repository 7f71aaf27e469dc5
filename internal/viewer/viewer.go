// Package viewer drives one explosion scene: camera, simulation clock,
// parameter commits, model and shader reloads, and the per-frame render.
package viewer

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gsexplode/internal/config"
	"github.com/Faultbox/gsexplode/internal/engine/camera"
	"github.com/Faultbox/gsexplode/internal/engine/clock"
	"github.com/Faultbox/gsexplode/internal/engine/debug"
	"github.com/Faultbox/gsexplode/internal/engine/gfx"
	"github.com/Faultbox/gsexplode/internal/engine/input"
	"github.com/Faultbox/gsexplode/internal/engine/mesh"
	"github.com/Faultbox/gsexplode/internal/engine/shader"
	"github.com/Faultbox/gsexplode/internal/logger"
	"github.com/Faultbox/gsexplode/internal/sim"
	"github.com/Faultbox/gsexplode/internal/viewer/control"
)

// ErrClosed is returned by Step after Close.
var ErrClosed = errors.New("viewer closed")

// fpsWindow is how often the displayed frame rate is refreshed, in seconds.
const fpsWindow = 0.5

// Panel draws the control UI and reports what the user clicked.
type Panel interface {
	Draw(v control.View) control.Actions
}

// Cue is played on every successful reset.
type Cue interface {
	Play()
	Volume() float64
	SetVolume(vol float64)
}

// Watcher reports edited shader files.
type Watcher interface {
	Drain() []string
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithPanel sets the control panel. Without one no UI is drawn.
func WithPanel(p Panel) Option {
	return func(v *Viewer) { v.panel = p }
}

// WithCue sets the sound played on reset.
func WithCue(c Cue) Option {
	return func(v *Viewer) { v.cue = c }
}

// WithWatcher enables shader hot reload.
func WithWatcher(w Watcher) Option {
	return func(v *Viewer) { v.watcher = w }
}

// WithScreenshots sets where screenshots are written.
func WithScreenshots(sc *debug.ScreenshotCapture) Option {
	return func(v *Viewer) { v.shots = sc }
}

// WithConfigPath sets where the Save config action writes. Without one the
// config is saved to the user's config directory.
func WithConfigPath(path string) Option {
	return func(v *Viewer) { v.cfgPath = path }
}

// WithRand sets the random source used for reseeding.
func WithRand(r *rand.Rand) Option {
	return func(v *Viewer) { v.rng = r }
}

// Viewer owns the program, the drawables and the simulation state.
type Viewer struct {
	ctx gfx.Context
	log *zap.Logger

	shaders shader.Paths
	program uint32
	locs    *shader.Locations

	model          *mesh.Drawable
	modelScale     float32
	indicator      *mesh.Drawable
	indicatorScale float32

	camera *camera.Camera
	store  *sim.Store
	clock  *clock.Clock

	panel   Panel
	cue     Cue
	watcher Watcher
	shots   *debug.ScreenshotCapture
	rng     *rand.Rand

	cfg     config.Config
	cfgPath string

	pending       control.Actions
	width, height int

	fps        float64
	frames     int
	fpsElapsed float64

	lastErr     error
	terminating bool
	closed      bool
}

// New compiles the shader program, loads both models and sets up the camera
// and simulation from cfg. Any failure is fatal and leaves nothing allocated.
func New(ctx gfx.Context, cfg *config.Config, opts ...Option) (*Viewer, error) {
	v := &Viewer{
		ctx: ctx,
		log: logger.Named("viewer"),
		cfg: *cfg,
		shaders: shader.Paths{
			Vertex:   cfg.Shaders.Vertex,
			Geometry: cfg.Shaders.Geometry,
			Fragment: cfg.Shaders.Fragment,
		},
		modelScale:     cfg.Models.Main.Scale,
		indicatorScale: cfg.Models.Origin.Scale,
		width:          cfg.Window.Width,
		height:         cfg.Window.Height,
	}
	for _, opt := range opts {
		opt(v)
	}

	program, err := shader.Build(ctx, v.shaders)
	if err != nil {
		return nil, err
	}
	v.setProgram(program)

	src := sim.ModelFromConfig(cfg.Models.Main)
	v.model, err = mesh.Load(ctx, src.Path, src.Format)
	if err != nil {
		ctx.DeleteProgram(program)
		return nil, err
	}
	v.model.Transform = scaleMatrix(v.modelScale)

	origin := sim.ModelFromConfig(cfg.Models.Origin)
	v.indicator, err = mesh.Load(ctx, origin.Path, origin.Format)
	if err != nil {
		v.model.Close(ctx)
		ctx.DeleteProgram(program)
		return nil, err
	}

	c := cfg.Camera
	v.camera = camera.New(camera.Config{
		Position:    mgl32.Vec3(c.Position),
		Front:       mgl32.Vec3(c.Front),
		Up:          mgl32.Vec3(c.Up),
		Speed:       c.Speed,
		Sensitivity: c.Sensitivity,
		FOV:         c.FOV,
		Near:        c.Near,
		Far:         c.Far,
		Width:       v.width,
		Height:      v.height,
	})

	var storeOpts []sim.Option
	if v.rng != nil {
		storeOpts = append(storeOpts, sim.WithRand(v.rng))
	}
	v.store = sim.NewStore(sim.FromConfig(cfg.Simulation), src, storeOpts...)
	v.clock = clock.New(float64(cfg.Simulation.TimeMultiplier), cfg.Simulation.Stopped)

	ctx.Viewport(int32(v.width), int32(v.height))

	v.log.Info("scene ready",
		zap.String("model", src.Path),
		zap.String("format", v.model.Format().String()),
		zap.Int("vertices", v.model.VertexCount()),
		zap.Int("materials", len(v.model.Materials())),
		zap.Bool("paused", v.clock.Paused()),
	)
	return v, nil
}

func scaleMatrix(s float32) mgl32.Mat4 {
	if s <= 0 {
		return mgl32.Ident4()
	}
	return mgl32.Scale3D(s, s, s)
}

func (v *Viewer) setProgram(program uint32) {
	v.program = program
	v.locs = shader.Bind(v.ctx, program)
	if missing := v.locs.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, u := range missing {
			names[i] = u.Name()
		}
		v.log.Debug("uniforms not active in program", zap.Strings("uniforms", names))
	}
}

// Camera returns the scene camera.
func (v *Viewer) Camera() *camera.Camera { return v.camera }

// Store returns the parameter store.
func (v *Viewer) Store() *sim.Store { return v.store }

// Clock returns the simulation clock.
func (v *Viewer) Clock() *clock.Clock { return v.clock }

// Program returns the current shader program.
func (v *Viewer) Program() uint32 { return v.program }

// Model returns the exploded drawable.
func (v *Viewer) Model() *mesh.Drawable { return v.model }

// LastError returns the most recent recoverable failure, or nil.
func (v *Viewer) LastError() error { return v.lastErr }

// Terminating reports whether a quit was requested.
func (v *Viewer) Terminating() bool { return v.terminating }

// FPS returns the smoothed frame rate.
func (v *Viewer) FPS() float64 { return v.fps }

// Quit requests termination, as if the window was closed.
func (v *Viewer) Quit() { v.terminating = true }

// Step advances one frame: input, pending actions, simulation time, the 3D
// pass and finally the panel, whose actions apply on the next Step.
func (v *Viewer) Step(in input.Frame, dt float64) error {
	if v.closed {
		return ErrClosed
	}
	if in.Quit {
		v.terminating = true
	}
	if v.terminating {
		return nil
	}

	v.resize(in.Width, in.Height)
	v.steer(in, float32(dt))

	actions := v.pending.Merge(control.Actions{
		TogglePause: in.TogglePause,
		Reset:       in.Reset,
		Reseed:      in.Reseed,
		Screenshot:  in.Screenshot,
	})
	v.pending = control.Actions{}
	v.apply(actions)

	if v.watcher != nil {
		if changed := v.watcher.Drain(); len(changed) > 0 {
			v.log.Info("shader sources changed", zap.Strings("files", changed))
			v.ReloadShaders()
		}
	}

	live := v.store.Live()
	v.clock.SetMultiplier(float64(live.TimeMultiplier))
	v.clock.Tick(dt)
	v.countFrame(dt)

	if err := v.render(live); err != nil {
		return err
	}
	if actions.Screenshot {
		v.screenshot()
	}
	v.ctx.Unbind()

	if v.panel != nil {
		v.pending = v.panel.Draw(v.view())
	}
	return nil
}

func (v *Viewer) resize(width, height int) {
	if width <= 0 || height <= 0 || (width == v.width && height == v.height) {
		return
	}
	v.width, v.height = width, height
	v.camera.SetViewport(width, height)
	v.ctx.Viewport(int32(width), int32(height))
}

func (v *Viewer) steer(in input.Frame, dt float32) {
	held := []struct {
		on  bool
		dir camera.Direction
	}{
		{in.Forward, camera.Forward},
		{in.Backward, camera.Backward},
		{in.Left, camera.Left},
		{in.Right, camera.Right},
		{in.Up, camera.Up},
		{in.Down, camera.Down},
	}
	for _, h := range held {
		if h.on {
			v.camera.Move(h.dir, dt)
		}
	}
	if in.Look && (in.MouseDX != 0 || in.MouseDY != 0) {
		v.camera.Look(in.MouseDX, in.MouseDY)
	}
	if in.Wheel != 0 {
		v.camera.Zoom(in.Wheel)
	}
}

func (v *Viewer) apply(a control.Actions) {
	if a.ChosenModel != "" {
		v.store.StagedModel().Path = a.ChosenModel
		v.log.Info("model staged", zap.String("path", a.ChosenModel))
	}
	if a.TogglePause {
		paused := v.clock.Toggle()
		v.log.Debug("simulation toggled", zap.Bool("paused", paused))
	}
	switch {
	case a.Reseed:
		v.reset(true)
	case a.Reset:
		v.reset(false)
	}
	if a.ReloadShaders {
		v.ReloadShaders()
	}
	if a.SetVolume && v.cue != nil {
		v.cue.SetVolume(a.Volume)
		v.cfg.Audio.Volume = v.cue.Volume()
	}
	if a.SaveConfig {
		v.SaveConfig()
	}
}

// SaveConfig writes the startup config with the live simulation, the live
// main model and the current camera pose in place of the initial values.
func (v *Viewer) SaveConfig() {
	cfg := v.cfg
	cfg.Simulation = v.store.Live().ToConfig(v.clock.Paused())
	live := v.store.LiveModel()
	cfg.Models.Main.Path, cfg.Models.Main.Format = live.Path, live.Format
	cfg.Camera.Position = [3]float32(v.camera.Position)
	cfg.Camera.Front = [3]float32(v.camera.Front())
	cfg.Camera.FOV = v.camera.FOV

	var err error
	target := v.cfgPath
	if target != "" {
		err = cfg.SaveTo(target)
	} else {
		target = config.ConfigDir()
		err = cfg.Save()
	}
	if err != nil {
		v.fail("save config failed", err)
		return
	}
	v.log.Info("config saved", zap.String("path", target))
}

// reset commits the staged state and restarts the explosion. A failed
// commit keeps the running simulation untouched.
func (v *Viewer) reset(reseed bool) {
	var err error
	if reseed {
		err = v.store.Reseed(v)
	} else {
		err = v.store.Commit(v)
	}
	if err != nil {
		v.fail("reset failed", err)
		return
	}

	v.clock.Reset()
	v.lastErr = nil
	if v.cue != nil {
		v.cue.Play()
	}
	v.log.Info("simulation reset",
		zap.Bool("reseed", reseed),
		zap.Float32("seed", v.store.Live().Seed),
	)
}

func (v *Viewer) fail(msg string, err error) {
	v.lastErr = err
	v.log.Error(msg, zap.Error(err))
}

// ReloadModel replaces the main drawable and rebuilds the program. On any
// failure the current drawable and program stay in use.
func (v *Viewer) ReloadModel(src sim.ModelSource) error {
	d, err := mesh.Load(v.ctx, src.Path, src.Format)
	if err != nil {
		return err
	}
	program, err := shader.Build(v.ctx, v.shaders)
	if err != nil {
		d.Close(v.ctx)
		return err
	}
	d.Transform = scaleMatrix(v.modelScale)

	v.model.Close(v.ctx)
	v.model = d
	v.ctx.DeleteProgram(v.program)
	v.setProgram(program)

	v.log.Info("model reloaded",
		zap.String("path", src.Path),
		zap.Int("vertices", d.VertexCount()),
		zap.Int("materials", len(d.Materials())),
	)
	return nil
}

// ReloadShaders recompiles the program from disk. A failure keeps the
// current program and is reported through LastError.
func (v *Viewer) ReloadShaders() {
	program, err := shader.Build(v.ctx, v.shaders)
	if err != nil {
		v.fail("shader reload failed", err)
		return
	}
	v.ctx.DeleteProgram(v.program)
	v.setProgram(program)
	v.lastErr = nil
	v.log.Info("shaders reloaded", zap.Uint32("program", program))
}

func (v *Viewer) render(live sim.Parameters) error {
	ctx, l := v.ctx, v.locs

	ctx.Clear()
	ctx.UseProgram(v.program)

	ctx.UniformMat4(l.Of(shader.ProjectionMatrix), v.camera.ProjectionMatrix())
	ctx.UniformMat4(l.Of(shader.ViewMatrix), v.camera.ViewMatrix())
	ctx.UniformVec3(l.Of(shader.CameraPosition), v.camera.Position)
	ctx.UniformFloat(l.Of(shader.Time), float32(v.clock.Time()))
	ctx.UniformFloat(l.Of(shader.Magnitude), live.Magnitude)
	ctx.UniformVec3(l.Of(shader.ExplosionOrigin), live.ExplosionOrigin)
	ctx.UniformFloat(l.Of(shader.FalloffRadius), live.FalloffRadius)
	ctx.UniformFloat(l.Of(shader.FalloffStrength), live.FalloffStrength)
	ctx.UniformFloat(l.Of(shader.RandomStrength), live.RandomStrength)
	ctx.UniformFloat(l.Of(shader.ImpulseDecay), live.RetainedImpulse())
	ctx.UniformFloat(l.Of(shader.GravityPower), live.GravityPower)
	ctx.UniformFloat(l.Of(shader.Seed), live.Seed)

	ctx.UniformBool(l.Of(shader.ShouldExplode), true)
	if err := v.model.Render(ctx, l, v.model.Transform); err != nil {
		return fmt.Errorf("render model: %w", err)
	}

	v.indicator.Transform = mgl32.Translate3D(live.ExplosionOrigin.Elem()).Mul4(scaleMatrix(v.indicatorScale))
	ctx.UniformBool(l.Of(shader.ShouldExplode), false)
	if err := v.indicator.Render(ctx, l, v.indicator.Transform); err != nil {
		return fmt.Errorf("render origin indicator: %w", err)
	}
	return nil
}

func (v *Viewer) screenshot() {
	if v.shots == nil {
		return
	}
	pixels := v.ctx.ReadPixels(int32(v.width), int32(v.height))
	path, err := v.shots.CaptureFromPixels(pixels, v.width, v.height)
	if err != nil {
		v.fail("screenshot failed", err)
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) countFrame(dt float64) {
	v.frames++
	v.fpsElapsed += dt
	if v.fpsElapsed >= fpsWindow {
		v.fps = float64(v.frames) / v.fpsElapsed
		v.frames = 0
		v.fpsElapsed = 0
	}
}

func (v *Viewer) view() control.View {
	view := control.View{
		Live:        v.store.Live(),
		Staged:      v.store.Staged(),
		LiveModel:   v.store.LiveModel(),
		StagedModel: v.store.StagedModel(),
		SimTime:     v.clock.Time(),
		Paused:      v.clock.Paused(),
		FPS:         v.fps,
		Camera:      v.camera.Position,
		HotReload:   v.watcher != nil,
		LastError:   v.lastErr,
	}
	if v.cue != nil {
		view.HasCue = true
		view.CueVolume = v.cue.Volume()
	}
	return view
}

// Close releases the program and both drawables. It is safe to call twice.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.model.Close(v.ctx)
	v.indicator.Close(v.ctx)
	v.ctx.DeleteProgram(v.program)
	v.log.Debug("viewer closed")
}
