// Package control holds the values exchanged between the viewer and its
// control panel.
package control

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gsexplode/internal/sim"
)

// View is what the panel shows. Staged and StagedModel are edited in place.
type View struct {
	Live        sim.Parameters
	Staged      *sim.Parameters
	LiveModel   sim.ModelSource
	StagedModel *sim.ModelSource

	SimTime   float64
	Paused    bool
	FPS       float64
	Camera    mgl32.Vec3
	HotReload bool
	LastError error

	// HasCue is set when a detonation sound is loaded; CueVolume is its level.
	HasCue    bool
	CueVolume float64
}

// Actions are the button presses of one frame, applied on the next step.
type Actions struct {
	TogglePause   bool
	Reset         bool
	Reseed        bool
	Screenshot    bool
	ReloadShaders bool
	SaveConfig    bool

	// ChosenModel is a path picked in the file dialog, empty if none.
	ChosenModel string

	// SetVolume requests a new cue level of Volume.
	SetVolume bool
	Volume    float64
}

// Merge combines two sets of actions. Later chosen models and volumes win.
func (a Actions) Merge(b Actions) Actions {
	out := Actions{
		TogglePause:   a.TogglePause || b.TogglePause,
		Reset:         a.Reset || b.Reset,
		Reseed:        a.Reseed || b.Reseed,
		Screenshot:    a.Screenshot || b.Screenshot,
		ReloadShaders: a.ReloadShaders || b.ReloadShaders,
		SaveConfig:    a.SaveConfig || b.SaveConfig,
		ChosenModel:   a.ChosenModel,
		SetVolume:     a.SetVolume,
		Volume:        a.Volume,
	}
	if b.ChosenModel != "" {
		out.ChosenModel = b.ChosenModel
	}
	if b.SetVolume {
		out.SetVolume, out.Volume = true, b.Volume
	}
	return out
}
