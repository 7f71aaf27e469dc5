package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() Config {
	return Config{
		Position:    mgl32.Vec3{1, 1, 1},
		Front:       mgl32.Vec3{-3, -3, -3},
		Up:          mgl32.Vec3{0, 1, 0},
		Speed:       2.5,
		Sensitivity: 0.1,
		FOV:         60,
		Near:        0.1,
		Far:         100,
		Width:       1000,
		Height:      1000,
	}
}

func TestNewInitializesFromFront(t *testing.T) {
	c := New(defaultConfig())

	require.Equal(t, Tracking, c.State())
	// atan2(-3, -3) = -135 degrees
	assert.InDelta(t, -135.0, c.Yaw, 1e-3)
	// atan2(-3, sqrt(18)) = -35.26 degrees
	assert.InDelta(t, -35.264, c.Pitch, 1e-2)

	want := mgl32.Vec3{-3, -3, -3}.Normalize()
	assertVec(t, want, c.Front(), "front %v, want %v", c.Front(), want)
}

func TestFrontIsUnitLength(t *testing.T) {
	c := New(defaultConfig())

	moves := [][2]float32{{10, 5}, {-300, 40}, {1234, -999}, {0, 2000}}
	for _, m := range moves {
		c.Look(m[0], m[1])
		assert.InDelta(t, 1.0, c.Front().Len(), 1e-5)
	}
}

func TestPitchClamped(t *testing.T) {
	c := New(defaultConfig())

	c.Look(0, -100000)
	assert.Equal(t, float32(89), c.Pitch)

	c.Look(0, 100000)
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestInitializeStraightUpClamps(t *testing.T) {
	c := New(defaultConfig())
	c.InitializeFromDirection(mgl32.Vec3{0, 1, 0})

	assert.Equal(t, float32(89), c.Pitch)
	assert.InDelta(t, 1.0, c.Front().Len(), 1e-5)
}

func TestLookChangesYawAndPitch(t *testing.T) {
	cfg := defaultConfig()
	cfg.Front = mgl32.Vec3{1, 0, 0}
	c := New(cfg)

	c.Look(100, -50)
	assert.InDelta(t, 10.0, c.Yaw, 1e-4)
	assert.InDelta(t, 5.0, c.Pitch, 1e-4)

	yaw, pitch := mgl32.DegToRad(10), mgl32.DegToRad(5)
	want := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	assertVec(t, want, c.Front())
}

func TestMove(t *testing.T) {
	cfg := defaultConfig()
	cfg.Position = mgl32.Vec3{0, 0, 0}
	cfg.Front = mgl32.Vec3{0, 0, -1}
	cfg.Speed = 2
	c := New(cfg)

	c.Move(Forward, 0.5)
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.Position, "forward: %v", c.Position)

	c.Move(Backward, 0.5)
	assertVec(t, mgl32.Vec3{0, 0, 0}, c.Position, "backward: %v", c.Position)

	// front (0,0,-1) x up (0,1,0) = (1,0,0)
	c.Move(Right, 1)
	assertVec(t, mgl32.Vec3{2, 0, 0}, c.Position, "right: %v", c.Position)

	c.Move(Left, 1)
	c.Move(Up, 1)
	assertVec(t, mgl32.Vec3{0, 2, 0}, c.Position, "up: %v", c.Position)

	c.Move(Down, 0.25)
	assertVec(t, mgl32.Vec3{0, 1.5, 0}, c.Position, "down: %v", c.Position)
}

func TestSetViewportIgnoresZero(t *testing.T) {
	c := New(defaultConfig())
	assert.Equal(t, float32(1), c.Aspect())

	c.SetViewport(1600, 900)
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)

	c.SetViewport(0, 0)
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)

	c.SetViewport(800, -1)
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)
}

func TestMatrices(t *testing.T) {
	c := New(defaultConfig())

	view := c.ViewMatrix()
	want := mgl32.LookAtV(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}.Add(c.Front()), mgl32.Vec3{0, 1, 0})
	assertMat(t, want, view)

	// the camera position maps to the view-space origin
	eye := view.Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assertVec(t, mgl32.Vec3{}, eye.Vec3())

	proj := c.ProjectionMatrix()
	assertMat(t, mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100), proj)
}

func TestZoomClamped(t *testing.T) {
	c := New(defaultConfig())

	c.Zoom(5)
	assert.Equal(t, float32(55), c.FOV)

	c.Zoom(1000)
	assert.Equal(t, float32(minFOV), c.FOV)

	c.Zoom(-1000)
	assert.Equal(t, float32(maxFOV), c.FOV)
}

// assertVec compares per component; ApproxEqualThreshold is relative and
// rejects float residue next to an exact zero.
func assertVec(t *testing.T, want, got mgl32.Vec3, msg ...interface{}) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, msg...)
	}
}

func assertMat(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}
