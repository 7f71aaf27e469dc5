package shader

import "github.com/Faultbox/gsexplode/internal/engine/gfx"

// Uniform indexes the explosion program's uniforms.
type Uniform int

const (
	ProjectionMatrix Uniform = iota
	ViewMatrix
	ModelMatrix
	CameraPosition
	Time
	Magnitude
	ExplosionOrigin
	FalloffRadius
	FalloffStrength
	RandomStrength
	ImpulseDecay
	GravityPower
	Seed
	ShouldExplode
	MaterialAmbient
	MaterialDiffuse
	MaterialSpecular
	MaterialShininess

	uniformCount
)

var names = [uniformCount]string{
	ProjectionMatrix:  "projection_matrix",
	ViewMatrix:        "view_matrix",
	ModelMatrix:       "model_matrix",
	CameraPosition:    "camera_position",
	Time:              "time",
	Magnitude:         "magnitude",
	ExplosionOrigin:   "explosion_origin",
	FalloffRadius:     "falloff_radius",
	FalloffStrength:   "falloff_strength",
	RandomStrength:    "random_strength",
	ImpulseDecay:      "impulse_decay",
	GravityPower:      "gravity_power",
	Seed:              "seed",
	ShouldExplode:     "should_explode",
	MaterialAmbient:   "material.ambient",
	MaterialDiffuse:   "material.diffuse",
	MaterialSpecular:  "material.specular",
	MaterialShininess: "material.shininess",
}

// Name returns the GLSL identifier of u.
func (u Uniform) Name() string {
	if u < 0 || u >= uniformCount {
		return ""
	}
	return names[u]
}

func (u Uniform) String() string { return u.Name() }

// Uniforms lists every uniform in table order.
func Uniforms() []Uniform {
	out := make([]Uniform, uniformCount)
	for i := range out {
		out[i] = Uniform(i)
	}
	return out
}

// Locations maps each Uniform to its location in one linked program.
// Inactive uniforms hold -1, which GL silently ignores on upload.
type Locations [uniformCount]int32

// Bind looks every uniform up once for program.
func Bind(ctx gfx.Context, program uint32) *Locations {
	var l Locations
	for i := range l {
		l[i] = ctx.UniformLocation(program, names[i])
	}
	return &l
}

// Of returns the location of u.
func (l *Locations) Of(u Uniform) int32 {
	return l[u]
}

// Missing returns the uniforms the program does not use.
func (l *Locations) Missing() []Uniform {
	var out []Uniform
	for i, loc := range l {
		if loc < 0 {
			out = append(out, Uniform(i))
		}
	}
	return out
}
