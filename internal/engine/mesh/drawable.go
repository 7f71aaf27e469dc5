// Package mesh turns OBJ models into GPU-resident drawables grouped by material.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gsexplode/internal/engine/gfx"
	"github.com/Faultbox/gsexplode/internal/engine/shader"
)

// ErrClosed is returned when rendering a drawable whose buffers were released.
var ErrClosed = errors.New("drawable is closed")

// ResourceError reports a model that could not be loaded or used.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("mesh %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Material holds the Phong terms uploaded before each group is drawn.
type Material struct {
	Name      string
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// Range is a contiguous run of vertices in the shared buffer.
type Range struct {
	Start int32
	Count int32
}

// Group is the interleaved vertex data of one material.
type Group struct {
	Material Material
	Vertices []float32
}

// Drawable is a mesh uploaded to one vertex array, drawn one call per material.
type Drawable struct {
	Name      string
	Transform mgl32.Mat4

	format    Format
	materials []Material
	ranges    []Range
	vertices  int

	vao, vbo uint32
	closed   bool
}

// Build uploads groups as one buffer. Empty groups are dropped; the
// remaining ranges follow group order and cover the buffer exactly.
func Build(ctx gfx.Context, name string, groups []Group, format Format) (*Drawable, error) {
	if format.Stride <= 0 {
		return nil, &ResourceError{Path: name, Err: fmt.Errorf("vertex format %q has no attributes", format.Descriptor)}
	}

	d := &Drawable{Name: name, Transform: mgl32.Ident4(), format: format}

	var data []float32
	for _, g := range groups {
		if len(g.Vertices)%format.Stride != 0 {
			return nil, &ResourceError{Path: name, Err: fmt.Errorf("material %q: %d floats is not a multiple of stride %d",
				g.Material.Name, len(g.Vertices), format.Stride)}
		}
		count := len(g.Vertices) / format.Stride
		if count == 0 {
			continue
		}
		d.materials = append(d.materials, g.Material)
		d.ranges = append(d.ranges, Range{Start: int32(d.vertices), Count: int32(count)})
		d.vertices += count
		data = append(data, g.Vertices...)
	}
	if d.vertices == 0 {
		return nil, &ResourceError{Path: name, Err: errors.New("model has no triangles")}
	}

	vao, vbo, err := ctx.CreateVertexArray(data, format.Stride, format.Attribs())
	if err != nil {
		return nil, &ResourceError{Path: name, Err: err}
	}
	d.vao, d.vbo = vao, vbo
	return d, nil
}

// Format returns the vertex layout.
func (d *Drawable) Format() Format { return d.format }

// Materials returns the materials in draw order.
func (d *Drawable) Materials() []Material { return d.materials }

// Ranges returns the vertex range of each material, parallel to Materials.
func (d *Drawable) Ranges() []Range { return d.ranges }

// VertexCount returns the number of vertices in the buffer.
func (d *Drawable) VertexCount() int { return d.vertices }

// Closed reports whether Close has been called.
func (d *Drawable) Closed() bool { return d.closed }

// Render uploads model and draws each material group. The caller has already
// made the program current. No vertex array is bound on return.
func (d *Drawable) Render(ctx gfx.Context, locs *shader.Locations, model mgl32.Mat4) error {
	if d.closed {
		return &ResourceError{Path: d.Name, Err: ErrClosed}
	}

	ctx.UniformMat4(locs.Of(shader.ModelMatrix), model)
	ctx.BindVertexArray(d.vao)
	for i, m := range d.materials {
		ctx.UniformVec3(locs.Of(shader.MaterialAmbient), m.Ambient)
		ctx.UniformVec3(locs.Of(shader.MaterialDiffuse), m.Diffuse)
		ctx.UniformVec3(locs.Of(shader.MaterialSpecular), m.Specular)
		ctx.UniformFloat(locs.Of(shader.MaterialShininess), m.Shininess)

		r := d.ranges[i]
		ctx.DrawTriangles(r.Start, r.Count)
	}
	ctx.BindVertexArray(0)
	return nil
}

// Close releases the GPU buffers. It is safe to call more than once.
func (d *Drawable) Close(ctx gfx.Context) {
	if d.closed {
		return
	}
	ctx.DeleteVertexArray(d.vao, d.vbo)
	d.vao, d.vbo = 0, 0
	d.closed = true
}
