// Package renderer implements gfx.Context on OpenGL 4.1 core.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gsexplode/internal/engine/framebuffer"
	"github.com/Faultbox/gsexplode/internal/engine/gfx"
	"github.com/Faultbox/gsexplode/internal/logger"
)

const floatSize = 4

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Renderer issues GL calls on the current context. The scene is drawn into
// an offscreen target that the UI layer presents behind its windows.
type Renderer struct {
	config Config
	target *framebuffer.Framebuffer
}

var _ gfx.Context = (*Renderer)(nil)

// New loads the GL function pointers and sets the default state.
// IMPORTANT: Must be called AFTER the OpenGL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	target, err := framebuffer.New(int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		return nil, fmt.Errorf("scene target: %w", err)
	}
	w, h := target.Size()
	return &Renderer{
		config: Config{Width: int(w), Height: int(h), ClearColor: cfg.ClearColor},
		target: target,
	}, nil
}

// Close releases the scene target.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.target.Destroy()
}

// SceneTexture returns the texture holding the last rendered scene.
func (r *Renderer) SceneTexture() uint32 {
	return r.target.ColorTexture()
}

// Size returns the last viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Viewport resizes the scene target. Non-positive sizes are ignored.
func (r *Renderer) Viewport(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	if int(width) == r.config.Width && int(height) == r.config.Height {
		return
	}
	r.config.Width = int(width)
	r.config.Height = int(height)
	r.target.Resize(width, height)
	logger.Debug("viewport resized",
		zap.Int32("width", width),
		zap.Int32("height", height),
	)
}

// Clear binds the scene target and clears colour and depth. Depth testing
// is re-enabled because the UI pass of the previous frame turns it off.
func (r *Renderer) Clear() {
	r.target.Bind()
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) CreateVertexArray(vertices []float32, stride int, attribs []gfx.Attrib) (uint32, uint32, error) {
	if len(vertices) == 0 {
		return 0, 0, fmt.Errorf("no vertex data")
	}
	if stride <= 0 || len(vertices)%stride != 0 {
		return 0, 0, fmt.Errorf("vertex data of %d floats is not a multiple of stride %d", len(vertices), stride)
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	for _, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, int32(stride*floatSize), uintptr(a.Offset*floatSize))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("vertex array created",
		zap.Uint32("vao", vao),
		zap.Uint32("vbo", vbo),
		zap.Int("vertices", len(vertices)/stride),
	)
	return vao, vbo, nil
}

func (r *Renderer) DeleteVertexArray(vao, vbo uint32) {
	if vao != 0 {
		gl.DeleteVertexArrays(1, &vao)
	}
	if vbo != 0 {
		gl.DeleteBuffers(1, &vbo)
	}
}

func (r *Renderer) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (r *Renderer) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (r *Renderer) DeleteProgram(program uint32) {
	if program != 0 {
		gl.DeleteProgram(program)
	}
}

func (r *Renderer) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (r *Renderer) UniformMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (r *Renderer) UniformVec3(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

func (r *Renderer) UniformFloat(loc int32, f float32) {
	gl.Uniform1f(loc, f)
}

func (r *Renderer) UniformBool(loc int32, b bool) {
	var v int32
	if b {
		v = 1
	}
	gl.Uniform1i(loc, v)
}

func (r *Renderer) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (r *Renderer) Unbind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	r.target.Unbind()
}

// ReadPixels reads the scene target as RGBA. The size must match the last
// Viewport call; otherwise nil is returned.
func (r *Renderer) ReadPixels(width, height int32) []byte {
	w, h := r.target.Size()
	if w != width || h != height {
		return nil
	}
	return r.target.ReadPixels()
}
