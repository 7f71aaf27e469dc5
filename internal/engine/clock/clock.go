// Package clock provides the simulation clock and the wall-clock frame pacer.
package clock

import "math"

// Clock accumulates scaled, pausable simulation time in seconds.
type Clock struct {
	time       float64
	multiplier float64
	paused     bool
}

// New creates a clock at time zero.
func New(multiplier float64, paused bool) *Clock {
	return &Clock{multiplier: multiplier, paused: paused}
}

// SetMultiplier changes the rate at which wall time becomes sim time.
func (c *Clock) SetMultiplier(m float64) {
	c.multiplier = m
}

// Multiplier returns the current rate.
func (c *Clock) Multiplier() float64 {
	return c.multiplier
}

// Tick advances sim time by dt wall seconds unless paused.
// Sim time never drops below zero, so a negative multiplier rewinds to the
// start and stays there.
func (c *Clock) Tick(dt float64) {
	if c.paused {
		return
	}
	c.time = math.Max(0, c.time+dt*c.multiplier)
}

// Pause freezes sim time.
func (c *Clock) Pause() { c.paused = true }

// Resume unfreezes sim time.
func (c *Clock) Resume() { c.paused = false }

// Toggle flips between paused and running and returns the new paused state.
func (c *Clock) Toggle() bool {
	c.paused = !c.paused
	return c.paused
}

// Paused reports whether sim time is frozen.
func (c *Clock) Paused() bool { return c.paused }

// Reset sets sim time to zero. The paused state is kept.
func (c *Clock) Reset() { c.time = 0 }

// Time returns the current sim time in seconds.
func (c *Clock) Time() float64 { return c.time }
