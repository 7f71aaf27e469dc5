package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gsexplode/internal/engine/shader"
	"github.com/Faultbox/gsexplode/internal/logger"
)

// CompileProgram compiles the given stages and links them. geometry may be empty.
// Failures are returned as *shader.Error carrying the driver log.
func (r *Renderer) CompileProgram(vertex, geometry, fragment string) (uint32, error) {
	type stage struct {
		kind   uint32
		name   shader.Stage
		source string
	}
	stages := []stage{{gl.VERTEX_SHADER, shader.StageVertex, vertex}}
	if geometry != "" {
		stages = append(stages, stage{gl.GEOMETRY_SHADER, shader.StageGeometry, geometry})
	}
	stages = append(stages, stage{gl.FRAGMENT_SHADER, shader.StageFragment, fragment})

	compiled := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range compiled {
			gl.DeleteShader(s)
		}
	}()

	for _, s := range stages {
		id, err := compileShader(s.source, s.kind, s.name)
		if err != nil {
			return 0, err
		}
		compiled = append(compiled, id)
	}

	program := gl.CreateProgram()
	for _, s := range compiled {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, &shader.Error{Stage: shader.StageLink, Log: string(log)}
	}

	for _, s := range compiled {
		gl.DetachShader(program, s)
	}

	logger.Debug("shader program linked",
		zap.Uint32("program", program),
		zap.Int("stages", len(compiled)),
	)
	return program, nil
}

func compileShader(source string, kind uint32, name shader.Stage) (uint32, error) {
	id := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(id, logLen, nil, &log[0])
		gl.DeleteShader(id)
		return 0, &shader.Error{Stage: name, Log: string(log)}
	}
	return id, nil
}
