// Package sim holds the explosion parameters driving the geometry shader.
//
// A Store keeps two instances of Parameters: the live one read by the render
// loop every frame and a staged one edited freely by the control panel. Staged
// values reach the live instance only through Commit.
package sim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gsexplode/internal/config"
)

// Parameters is the full set of values uploaded to the explosion shader.
type Parameters struct {
	Magnitude       float32
	ExplosionOrigin mgl32.Vec3
	FalloffStrength float32
	FalloffRadius   float32
	RandomStrength  float32
	ImpulseDecay    float32 // fraction of impulse lost per second, 0..1
	GravityPower    float32
	TimeMultiplier  float32
	Seed            float32
}

// ModelSource identifies the main model and how its vertices are laid out.
type ModelSource struct {
	Path   string
	Format string
}

// FromConfig builds the initial parameters from the simulation section.
func FromConfig(c config.SimulationConfig) Parameters {
	return Parameters{
		Magnitude:       c.Magnitude,
		ExplosionOrigin: mgl32.Vec3(c.ExplosionOrigin),
		FalloffStrength: c.FalloffStrength,
		FalloffRadius:   c.FalloffRadius,
		RandomStrength:  c.RandomStrength,
		ImpulseDecay:    c.ImpulseDecay,
		GravityPower:    c.GravityPower,
		TimeMultiplier:  c.TimeMultiplier,
		Seed:            c.Seed,
	}
}

// ToConfig writes p back into a simulation section.
func (p Parameters) ToConfig(stopped bool) config.SimulationConfig {
	return config.SimulationConfig{
		TimeMultiplier:  p.TimeMultiplier,
		Magnitude:       p.Magnitude,
		Stopped:         stopped,
		ExplosionOrigin: [3]float32(p.ExplosionOrigin),
		FalloffStrength: p.FalloffStrength,
		FalloffRadius:   p.FalloffRadius,
		RandomStrength:  p.RandomStrength,
		ImpulseDecay:    p.ImpulseDecay,
		GravityPower:    p.GravityPower,
		Seed:            p.Seed,
	}
}

// ModelFromConfig returns the model source of a model section.
func ModelFromConfig(c config.ModelConfig) ModelSource {
	return ModelSource{Path: c.Path, Format: c.Format}
}

// RetainedImpulse is the per-second fraction of impulse the shader keeps.
func (p Parameters) RetainedImpulse() float32 {
	return 1 - p.ImpulseDecay
}
