// Package gfxtest provides an in-memory gfx.Context that records calls.
package gfxtest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gsexplode/internal/engine/gfx"
)

// Call is one recorded operation.
type Call struct {
	Op    string
	Name  string // uniform name when the location is known
	Args  []int32
	Mat   mgl32.Mat4
	Vec   mgl32.Vec3
	Float float32
	Bool  bool
}

// VertexArray is an allocated array with its uploaded data.
type VertexArray struct {
	VBO      uint32
	Vertices []float32
	Stride   int
	Attribs  []gfx.Attrib
	Deleted  bool
}

// Program is a compiled program.
type Program struct {
	Vertex, Geometry, Fragment string
	Deleted                    bool
}

// Recorder implements gfx.Context without a GPU.
type Recorder struct {
	Calls []Call

	Arrays   map[uint32]*VertexArray
	Programs map[uint32]*Program

	BoundArray   uint32
	BoundProgram uint32

	// CompileErr, when set, is returned by the next CompileProgram call.
	CompileErr error
	// CreateErr, when set, is returned by the next CreateVertexArray call.
	CreateErr error

	// Pixels is returned by ReadPixels when non-nil.
	Pixels []byte

	nextID    uint32
	locations map[string]int32
	names     map[int32]string
}

var _ gfx.Context = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Arrays:    map[uint32]*VertexArray{},
		Programs:  map[uint32]*Program{},
		locations: map[string]int32{},
		names:     map[int32]string{},
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) record(c Call) {
	r.Calls = append(r.Calls, c)
}

// Reset forgets recorded calls but keeps resources.
func (r *Recorder) Reset() {
	r.Calls = nil
}

func (r *Recorder) CreateVertexArray(vertices []float32, stride int, attribs []gfx.Attrib) (uint32, uint32, error) {
	if err := r.CreateErr; err != nil {
		r.CreateErr = nil
		return 0, 0, err
	}
	vao, vbo := r.id(), r.id()
	r.Arrays[vao] = &VertexArray{
		VBO:      vbo,
		Vertices: append([]float32(nil), vertices...),
		Stride:   stride,
		Attribs:  append([]gfx.Attrib(nil), attribs...),
	}
	r.record(Call{Op: "CreateVertexArray", Args: []int32{int32(vao), int32(vbo)}})
	return vao, vbo, nil
}

func (r *Recorder) DeleteVertexArray(vao, vbo uint32) {
	if a, ok := r.Arrays[vao]; ok {
		a.Deleted = true
	}
	if r.BoundArray == vao {
		r.BoundArray = 0
	}
	r.record(Call{Op: "DeleteVertexArray", Args: []int32{int32(vao), int32(vbo)}})
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.BoundArray = vao
	r.record(Call{Op: "BindVertexArray", Args: []int32{int32(vao)}})
}

func (r *Recorder) CompileProgram(vertex, geometry, fragment string) (uint32, error) {
	if err := r.CompileErr; err != nil {
		r.CompileErr = nil
		return 0, err
	}
	p := r.id()
	r.Programs[p] = &Program{Vertex: vertex, Geometry: geometry, Fragment: fragment}
	r.record(Call{Op: "CompileProgram", Args: []int32{int32(p)}})
	return p, nil
}

func (r *Recorder) UseProgram(program uint32) {
	r.BoundProgram = program
	r.record(Call{Op: "UseProgram", Args: []int32{int32(program)}})
}

func (r *Recorder) DeleteProgram(program uint32) {
	if p, ok := r.Programs[program]; ok {
		p.Deleted = true
	}
	r.record(Call{Op: "DeleteProgram", Args: []int32{int32(program)}})
}

// UniformLocation hands out a stable location per program and name.
func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	key := fmt.Sprintf("%d/%s", program, name)
	loc, ok := r.locations[key]
	if !ok {
		loc = int32(len(r.locations))
		r.locations[key] = loc
		r.names[loc] = name
	}
	r.record(Call{Op: "UniformLocation", Name: name, Args: []int32{int32(program), loc}})
	return loc
}

func (r *Recorder) UniformMat4(loc int32, m mgl32.Mat4) {
	r.record(Call{Op: "UniformMat4", Name: r.names[loc], Args: []int32{loc}, Mat: m})
}

func (r *Recorder) UniformVec3(loc int32, v mgl32.Vec3) {
	r.record(Call{Op: "UniformVec3", Name: r.names[loc], Args: []int32{loc}, Vec: v})
}

func (r *Recorder) UniformFloat(loc int32, f float32) {
	r.record(Call{Op: "UniformFloat", Name: r.names[loc], Args: []int32{loc}, Float: f})
}

func (r *Recorder) UniformBool(loc int32, b bool) {
	r.record(Call{Op: "UniformBool", Name: r.names[loc], Args: []int32{loc}, Bool: b})
}

func (r *Recorder) DrawTriangles(first, count int32) {
	r.record(Call{Op: "DrawTriangles", Args: []int32{first, count, int32(r.BoundArray)}})
}

func (r *Recorder) Clear() {
	r.record(Call{Op: "Clear"})
}

func (r *Recorder) Viewport(width, height int32) {
	r.record(Call{Op: "Viewport", Args: []int32{width, height}})
}

func (r *Recorder) Unbind() {
	r.BoundArray = 0
	r.BoundProgram = 0
	r.record(Call{Op: "Unbind"})
}

func (r *Recorder) ReadPixels(width, height int32) []byte {
	r.record(Call{Op: "ReadPixels", Args: []int32{width, height}})
	if r.Pixels != nil {
		return r.Pixels
	}
	return make([]byte, int(width)*int(height)*4)
}

// Ops returns the recorded operation names, optionally filtered.
func (r *Recorder) Ops(only ...string) []string {
	keep := map[string]bool{}
	for _, o := range only {
		keep[o] = true
	}
	var ops []string
	for _, c := range r.Calls {
		if len(keep) == 0 || keep[c.Op] {
			ops = append(ops, c.Op)
		}
	}
	return ops
}

// Find returns every call with the given op.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Uniforms returns every upload to the named uniform, in order.
func (r *Recorder) Uniforms(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name && c.Op != "UniformLocation" {
			out = append(out, c)
		}
	}
	return out
}

// Index returns the position of the first call matching op at or after from, or -1.
func (r *Recorder) Index(op string, from int) int {
	for i := from; i < len(r.Calls); i++ {
		if r.Calls[i].Op == op {
			return i
		}
	}
	return -1
}
