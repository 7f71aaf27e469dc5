// Package input turns the UI layer's keyboard and mouse state into one
// snapshot per frame.
package input

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// Frame is the input relevant to one simulation step.
type Frame struct {
	// Held movement keys.
	Forward, Backward, Left, Right, Up, Down bool

	// Look is set while the look button is held; MouseDX/DY are the pixel
	// motion since the previous frame.
	Look             bool
	MouseDX, MouseDY float32
	Wheel            float32

	// Edge-triggered hotkeys.
	TogglePause bool
	Reset       bool
	Reseed      bool
	Screenshot  bool
	Quit        bool

	// Drawable size in pixels; zero when unknown.
	Width, Height int
}

// Moving reports whether any movement key is held.
func (f Frame) Moving() bool {
	return f.Forward || f.Backward || f.Left || f.Right || f.Up || f.Down
}

// Gate drops what the UI consumed: keyboard state when a text field or
// widget has focus, mouse state when the pointer is over a window. Escape
// inside a text field is left to the field.
func (f Frame) Gate(captureMouse, captureKeyboard bool) Frame {
	if captureKeyboard {
		f.Forward, f.Backward, f.Left, f.Right, f.Up, f.Down = false, false, false, false, false, false
		f.TogglePause, f.Reset, f.Reseed, f.Screenshot, f.Quit = false, false, false, false, false
	}
	if captureMouse && !f.Look {
		f.MouseDX, f.MouseDY, f.Wheel = 0, 0, 0
	}
	return f
}

// Key bindings. Shift is reserved as the reseed modifier, so descending
// uses Ctrl.
const keyDown = imgui.KeyLeftCtrl

var (
	chordReset  = imgui.KeyChord(imgui.KeyR)
	chordReseed = imgui.KeyChord(imgui.ModShift) | imgui.KeyChord(imgui.KeyR)
)

// Poller reads input from the current imgui context.
type Poller struct {
	looking      bool
	lastX, lastY float32
}

// NewPoller creates a poller.
func NewPoller() *Poller {
	return &Poller{}
}

// Poll samples the input state. Call once per frame inside the UI loop.
func (p *Poller) Poll(width, height int32) Frame {
	io := imgui.CurrentIO()

	f := Frame{
		Forward:  imgui.IsKeyDown(imgui.KeyW),
		Backward: imgui.IsKeyDown(imgui.KeyS),
		Left:     imgui.IsKeyDown(imgui.KeyA),
		Right:    imgui.IsKeyDown(imgui.KeyD),
		Up:       imgui.IsKeyDown(imgui.KeySpace),
		Down:     imgui.IsKeyDown(keyDown),
		Wheel:    io.MouseWheel(),
		Width:    int(width),
		Height:   int(height),
	}

	f.TogglePause = pressed(imgui.KeyP)
	f.Reset = imgui.IsKeyChordPressed(chordReset)
	f.Reseed = imgui.IsKeyChordPressed(chordReseed)
	f.Screenshot = pressed(imgui.KeyF12)
	f.Quit = pressed(imgui.KeyEscape)

	// Look starts only on a right press outside UI windows and then
	// continues until release, even when the pointer crosses a window.
	pos := io.MousePos()
	down := imgui.IsMouseDown(imgui.MouseButtonRight)
	switch {
	case down && p.looking:
		f.Look = true
		f.MouseDX, f.MouseDY = pos.X-p.lastX, pos.Y-p.lastY
	case down && !io.WantCaptureMouse():
		p.looking = true
		f.Look = true
	default:
		p.looking = down && p.looking
	}
	p.lastX, p.lastY = pos.X, pos.Y

	return f.Gate(io.WantCaptureMouse(), io.WantCaptureKeyboard())
}

func pressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
