// Package shader loads shader sources and binds the explosion program's uniforms.
package shader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/gsexplode/internal/engine/gfx"
)

// Stage names a pipeline stage in diagnostics.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageGeometry Stage = "geometry"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
	StageSource   Stage = "source"
)

// Error is a shader build failure with the driver's diagnostic text.
type Error struct {
	Stage Stage
	Path  string
	Log   string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Stage))
	b.WriteString(" shader")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Log != "" {
		b.WriteString(": ")
		b.WriteString(strings.TrimRight(e.Log, "\x00\n "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Paths locates the sources of one program. Geometry may be empty.
type Paths struct {
	Vertex   string
	Geometry string
	Fragment string
}

// Sources holds GLSL text ready for compilation.
type Sources struct {
	Vertex   string
	Geometry string
	Fragment string
}

// LoadSources reads every non-empty path in p.
func LoadSources(p Paths) (Sources, error) {
	if p.Vertex == "" || p.Fragment == "" {
		return Sources{}, &Error{Stage: StageSource, Err: errors.New("vertex and fragment shaders are required")}
	}

	var (
		s   Sources
		err error
	)
	if s.Vertex, err = readSource(StageVertex, p.Vertex); err != nil {
		return Sources{}, err
	}
	if p.Geometry != "" {
		if s.Geometry, err = readSource(StageGeometry, p.Geometry); err != nil {
			return Sources{}, err
		}
	}
	if s.Fragment, err = readSource(StageFragment, p.Fragment); err != nil {
		return Sources{}, err
	}
	return s, nil
}

func readSource(stage Stage, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Stage: stage, Path: path, Err: err}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", &Error{Stage: stage, Path: path, Err: errors.New("empty source")}
	}
	return string(data), nil
}

// Build loads the sources in p and compiles them on ctx.
func Build(ctx gfx.Context, p Paths) (uint32, error) {
	src, err := LoadSources(p)
	if err != nil {
		return 0, err
	}
	program, err := ctx.CompileProgram(src.Vertex, src.Geometry, src.Fragment)
	if err != nil {
		return 0, fmt.Errorf("compile %s: %w", p.Vertex, err)
	}
	return program, nil
}
