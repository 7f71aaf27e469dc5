// Package panel draws the explosion control window.
package panel

import (
	"errors"
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/gsexplode/internal/logger"
	"github.com/Faultbox/gsexplode/internal/viewer/control"
)

const panelWidth = 340

var (
	colorError = imgui.NewVec4(1, 0.4, 0.4, 1)
	colorLive  = imgui.NewVec4(0.6, 0.9, 0.6, 1)
)

// chooser opens a native file dialog.
type chooser func() (string, error)

func openModelDialog() (string, error) {
	return dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All Files", "*").
		Title("Choose model").
		Load()
}

// Panel is the imgui control window.
type Panel struct {
	choose     chooser
	chosen     chan string
	dialogOpen bool
}

// New creates a panel using the native file dialog.
func New() *Panel {
	return &Panel{choose: openModelDialog, chosen: make(chan string, 1)}
}

// openDialog runs the blocking dialog off the render thread; the result is
// picked up by a later Draw.
func (p *Panel) openDialog() {
	if p.dialogOpen {
		return
	}
	p.dialogOpen = true
	go func() {
		path, err := p.choose()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			path = ""
		}
		p.chosen <- path
	}()
}

// pollDialog returns a finished dialog's path without blocking.
func (p *Panel) pollDialog() string {
	select {
	case path := <-p.chosen:
		p.dialogOpen = false
		return path
	default:
		return ""
	}
}

// Draw renders the panel and returns the actions the user took.
func (p *Panel) Draw(v control.View) control.Actions {
	var a control.Actions
	a.ChosenModel = p.pollDialog()

	vp := imgui.MainViewport()
	pos := vp.WorkPos()
	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+10, pos.Y+10))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, 0))
	imgui.SetNextWindowBgAlpha(0.85)

	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove | imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("Explosion", nil, flags) {
		for _, line := range statusLines(v) {
			imgui.TextUnformatted(line)
		}
		imgui.TextDisabled("WASD move, Space/Ctrl up/down, hold RMB to look")
		imgui.Separator()
		p.drawControls(v, &a)
		imgui.Separator()
		p.drawParameters(v)
		imgui.Separator()
		p.drawModel(v)
		if v.HasCue {
			imgui.Separator()
			p.drawAudio(v, &a)
		}
		if msg := errorText(v); msg != "" {
			imgui.Separator()
			imgui.TextColored(colorError, "Last error:")
			imgui.TextUnformatted(msg)
		}
	}
	imgui.End()

	return a
}

// User strings such as paths and error messages may contain '%', so every
// dynamic line is drawn unformatted.

func statusLines(v control.View) []string {
	state := "running"
	if v.Paused {
		state = "stopped"
	}
	return []string{
		fmt.Sprintf("Time: %.2fs (%s)", v.SimTime, state),
		fmt.Sprintf("FPS: %.0f", v.FPS),
		fmt.Sprintf("Camera: %.2f, %.2f, %.2f", v.Camera.X(), v.Camera.Y(), v.Camera.Z()),
	}
}

func modelText(v control.View) string {
	if *v.StagedModel != v.LiveModel {
		return "Model changes load on reset"
	}
	return v.LiveModel.Path
}

func errorText(v control.View) string {
	if v.LastError == nil {
		return ""
	}
	return v.LastError.Error()
}

func (p *Panel) drawControls(v control.View, a *control.Actions) {
	label := "Stop"
	if v.Paused {
		label = "Resume"
	}
	if imgui.ButtonV(label, imgui.NewVec2(100, 0)) {
		a.TogglePause = true
	}
	imgui.SameLine()
	if imgui.ButtonV("Reset", imgui.NewVec2(100, 0)) {
		a.Reset = true
	}
	imgui.SameLine()
	if imgui.ButtonV("Reset & Reseed", imgui.NewVec2(-1, 0)) {
		a.Reseed = true
	}

	if imgui.Button("Screenshot") {
		a.Screenshot = true
	}
	imgui.SameLine()
	if imgui.Button("Reload shaders") {
		a.ReloadShaders = true
	}
	imgui.SameLine()
	if imgui.Button("Save config") {
		a.SaveConfig = true
	}
	if v.HotReload {
		imgui.TextDisabled("Shaders reload on save")
	}
}

func (p *Panel) drawParameters(v control.View) {
	s, live := v.Staged, v.Live
	imgui.Text("Parameters (applied on reset)")

	slider := func(label string, val *float32, lo, hi, current float32) {
		imgui.SliderFloatV(label, val, lo, hi, "%.2f", imgui.SliderFlagsNone)
		if *val != current {
			imgui.SameLine()
			imgui.TextColored(colorLive, "*")
		}
	}

	slider("Magnitude", &s.Magnitude, 0, 10, live.Magnitude)
	slider("Time multiplier", &s.TimeMultiplier, -2, 4, live.TimeMultiplier)
	slider("Falloff strength", &s.FalloffStrength, 0, 5, live.FalloffStrength)
	slider("Falloff radius", &s.FalloffRadius, 0, 10, live.FalloffRadius)
	slider("Random strength", &s.RandomStrength, 0, 2, live.RandomStrength)
	slider("Impulse decay", &s.ImpulseDecay, 0, 1, live.ImpulseDecay)
	slider("Gravity", &s.GravityPower, 0, 10, live.GravityPower)
	imgui.DragFloatV("Seed", &s.Seed, 0.1, 0, 100, "%.2f", imgui.SliderFlagsNone)
	imgui.DragFloat3("Origin", (*[3]float32)(&s.ExplosionOrigin))
}

func (p *Panel) drawModel(v control.View) {
	m := v.StagedModel
	imgui.Text("Model")
	imgui.InputTextWithHint("##path", "path/to/model.obj", &m.Path, 0, nil)
	imgui.SameLine()
	imgui.BeginDisabledV(p.dialogOpen)
	if imgui.Button("Choose...") {
		p.openDialog()
	}
	imgui.EndDisabled()
	imgui.InputTextWithHint("Format", "N3F_V3F", &m.Format, 0, nil)

	if *m != v.LiveModel {
		imgui.TextColored(colorLive, "Model changes load on reset")
	} else {
		imgui.TextUnformatted(modelText(v))
	}
}

func (p *Panel) drawAudio(v control.View, a *control.Actions) {
	vol := float32(v.CueVolume)
	if imgui.SliderFloatV("Cue volume", &vol, 0, 1, "%.2f", imgui.SliderFlagsNone) {
		a.SetVolume, a.Volume = true, float64(vol)
	}
}
