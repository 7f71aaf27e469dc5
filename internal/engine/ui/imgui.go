// Package ui wraps the cimgui-go SDL backend that owns the window, the GL
// context and the frame loop.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// Options configures the window.
type Options struct {
	Title   string
	Width   int
	Height  int
	BgColor [4]float32
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and its OpenGL context.
func NewBackend(opts Options) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	c := opts.BgColor
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], c[3]))
	b.backend.CreateWindow(opts.Title, opts.Width, opts.Height)
	return b, nil
}

// Run blocks, calling frame once per frame until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// Close asks the loop to stop after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// DisplaySize returns the current window size in pixels.
func (b *Backend) DisplaySize() (int32, int32) {
	return b.backend.DisplaySize()
}

// DrawScene shows texture behind every other window, filling the viewport.
// The texture is flipped because GL stores rows bottom first.
func DrawScene(textureID uint32) {
	if textureID == 0 {
		return
	}

	vp := imgui.MainViewport()
	pos, size := vp.WorkPos(), vp.WorkSize()
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef, size, imgui.NewVec2(0, 1), imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}
