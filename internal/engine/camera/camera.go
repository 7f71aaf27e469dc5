// Package camera provides the first-person camera used to fly around the scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// State tells whether the camera angles have been derived from a direction yet.
type State int

const (
	Uninitialized State = iota
	Tracking
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Tracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Direction is a movement direction relative to the camera.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

const (
	maxPitch = 89.0
	minFOV   = 10.0
	maxFOV   = 120.0
)

// Config holds the initial camera setup.
type Config struct {
	Position    mgl32.Vec3
	Front       mgl32.Vec3
	Up          mgl32.Vec3
	Speed       float32 // units per second
	Sensitivity float32 // degrees per pixel of mouse motion
	FOV         float32 // vertical, degrees
	Near, Far   float32
	Width       int
	Height      int
}

// Camera is a free-flying first-person camera. Yaw and pitch are in degrees.
type Camera struct {
	Position mgl32.Vec3

	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32
	FOV         float32
	Near, Far   float32

	front  mgl32.Vec3
	up     mgl32.Vec3
	aspect float32
	state  State
}

// New creates a camera looking along cfg.Front.
func New(cfg Config) *Camera {
	up := cfg.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	c := &Camera{
		Position:    cfg.Position,
		Speed:       cfg.Speed,
		Sensitivity: cfg.Sensitivity,
		FOV:         cfg.FOV,
		Near:        cfg.Near,
		Far:         cfg.Far,
		front:       cfg.Front,
		up:          up.Normalize(),
		aspect:      1,
	}
	c.SetViewport(cfg.Width, cfg.Height)
	c.InitializeFromDirection(cfg.Front)
	return c
}

// State returns the current camera state.
func (c *Camera) State() State { return c.state }

// InitializeFromDirection derives yaw and pitch from v and starts tracking.
// A zero vector keeps the current angles.
func (c *Camera) InitializeFromDirection(v mgl32.Vec3) {
	if v.Len() > 0 {
		c.Yaw = mgl32.RadToDeg(math32.Atan2(v.Z(), v.X()))
		c.Pitch = mgl32.RadToDeg(math32.Atan2(v.Y(), math32.Sqrt(v.X()*v.X()+v.Z()*v.Z())))
	}
	c.Pitch = clampPitch(c.Pitch)
	c.updateFront()
	c.state = Tracking
}

// Front returns the unit forward vector.
func (c *Camera) Front() mgl32.Vec3 { return c.front }

// Up returns the fixed world up vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// Right returns the unit vector to the camera's right.
func (c *Camera) Right() mgl32.Vec3 {
	r := c.front.Cross(c.up)
	if r.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// Aspect returns the current width/height ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// Move translates the camera by Speed*dt along dir.
func (c *Camera) Move(dir Direction, dt float32) {
	step := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.front.Mul(step))
	case Backward:
		c.Position = c.Position.Sub(c.front.Mul(step))
	case Left:
		c.Position = c.Position.Sub(c.Right().Mul(step))
	case Right:
		c.Position = c.Position.Add(c.Right().Mul(step))
	case Up:
		c.Position = c.Position.Add(c.up.Mul(step))
	case Down:
		c.Position = c.Position.Sub(c.up.Mul(step))
	}
}

// Look applies a mouse delta in pixels. Moving the mouse up (negative dy)
// raises the pitch.
func (c *Camera) Look(dx, dy float32) {
	if c.state == Uninitialized {
		c.InitializeFromDirection(c.front)
	}
	c.Yaw += dx * c.Sensitivity
	c.Pitch = clampPitch(c.Pitch - dy*c.Sensitivity)
	c.updateFront()
}

// Zoom narrows or widens the field of view by delta degrees.
func (c *Camera) Zoom(delta float32) {
	c.FOV = mgl32.Clamp(c.FOV-delta, minFOV, maxFOV)
}

// SetViewport updates the aspect ratio. Non-positive sizes are ignored so a
// minimised window keeps the last valid projection.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

// ViewMatrix returns the right-handed look-at matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.aspect, c.Near, c.Far)
}

func (c *Camera) updateFront() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -maxPitch, maxPitch)
}
