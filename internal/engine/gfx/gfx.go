// Package gfx defines the graphics capability passed to every draw call.
//
// Nothing here touches the GL driver. The renderer package implements Context
// on top of OpenGL 4.1 core; tests use gfxtest.Recorder.
package gfx

import "github.com/go-gl/mathgl/mgl32"

// Attrib describes one interleaved float attribute.
type Attrib struct {
	Location uint32
	Size     int32 // floats per vertex
	Offset   int   // floats from the start of the vertex
}

// Context is the set of GPU operations the viewer needs.
type Context interface {
	// CreateVertexArray uploads vertices into a new buffer and records the
	// attribute layout in a new vertex array. stride is in floats.
	CreateVertexArray(vertices []float32, stride int, attribs []Attrib) (vao, vbo uint32, err error)
	DeleteVertexArray(vao, vbo uint32)
	BindVertexArray(vao uint32)

	// CompileProgram builds a program from vertex, optional geometry and
	// fragment sources.
	CompileProgram(vertex, geometry, fragment string) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32

	UniformMat4(loc int32, m mgl32.Mat4)
	UniformVec3(loc int32, v mgl32.Vec3)
	UniformFloat(loc int32, f float32)
	UniformBool(loc int32, b bool)

	// DrawTriangles draws count vertices of the bound array as a triangle list.
	DrawTriangles(first, count int32)

	Clear()
	Viewport(width, height int32)

	// Unbind resets the program, vertex array and array buffer bindings.
	Unbind()

	// ReadPixels returns the back buffer as tightly packed RGBA rows, bottom row first.
	ReadPixels(width, height int32) []byte
}
