package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickScalesByMultiplier(t *testing.T) {
	c := New(0.5, false)

	c.Tick(1)
	c.Tick(1)
	assert.InDelta(t, 1.0, c.Time(), 1e-9)

	c.SetMultiplier(2)
	c.Tick(0.25)
	assert.InDelta(t, 1.5, c.Time(), 1e-9)
}

func TestTickPaused(t *testing.T) {
	c := New(1, true)
	c.Tick(3)
	assert.Equal(t, 0.0, c.Time())

	c.Resume()
	c.Tick(1)
	c.Pause()
	c.Tick(10)
	assert.InDelta(t, 1.0, c.Time(), 1e-9)
}

func TestTickFlooredAtZero(t *testing.T) {
	c := New(1, false)
	c.Tick(1)

	c.SetMultiplier(-1)
	c.Tick(0.4)
	assert.InDelta(t, 0.6, c.Time(), 1e-9)

	c.Tick(5)
	assert.Equal(t, 0.0, c.Time())

	// stuck at zero until the multiplier turns positive again
	c.Tick(5)
	assert.Equal(t, 0.0, c.Time())
	c.SetMultiplier(1)
	c.Tick(0.5)
	assert.InDelta(t, 0.5, c.Time(), 1e-9)
}

func TestToggleAndReset(t *testing.T) {
	c := New(1, false)
	c.Tick(2)

	assert.True(t, c.Toggle())
	assert.True(t, c.Paused())

	c.Reset()
	assert.Equal(t, 0.0, c.Time())
	assert.True(t, c.Paused(), "reset keeps the paused state")

	assert.False(t, c.Toggle())
	c.Tick(1)
	assert.InDelta(t, 1.0, c.Time(), 1e-9)
}

func TestPauseResetResumeSequence(t *testing.T) {
	c := New(0.5, false)
	c.Tick(1)
	c.Tick(1)
	assert.InDelta(t, 1.0, c.Time(), 1e-9)

	c.Pause()
	c.Tick(1)
	assert.InDelta(t, 1.0, c.Time(), 1e-9)

	c.Reset()
	assert.Equal(t, 0.0, c.Time())
}

type fakeTime struct {
	t     time.Time
	slept []time.Duration
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.t = f.t.Add(d)
}

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestPacerDelta(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	p := NewPacer(60, WithTimeSource(ft.now, ft.sleep))

	ft.advance(20 * time.Millisecond)
	assert.InDelta(t, 0.020, p.Delta(), 1e-9)

	ft.advance(5 * time.Millisecond)
	assert.InDelta(t, 0.005, p.Delta(), 1e-9)
}

func TestPacerWaitSleepsRemainder(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	p := NewPacer(50, WithTimeSource(ft.now, ft.sleep))
	assert.Equal(t, 20*time.Millisecond, p.Interval())

	p.Delta()
	ft.advance(8 * time.Millisecond)
	p.Wait()

	if assert.Len(t, ft.slept, 1) {
		assert.Equal(t, 12*time.Millisecond, ft.slept[0])
	}

	// the next delta covers work plus sleep
	assert.InDelta(t, 0.020, p.Delta(), 1e-9)
}

func TestPacerTickCountsPresentTime(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	p := NewPacer(50, WithTimeSource(ft.now, ft.sleep))

	p.Tick()
	ft.slept = nil

	// 5ms of frame work, then 10ms spent presenting outside the callback
	ft.advance(5 * time.Millisecond)
	ft.advance(10 * time.Millisecond)
	dt := p.Tick()

	if assert.Len(t, ft.slept, 1) {
		assert.Equal(t, 5*time.Millisecond, ft.slept[0])
	}
	assert.InDelta(t, 0.020, dt, 1e-9)
}

func TestPacerWaitSkipsWhenLate(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	p := NewPacer(50, WithTimeSource(ft.now, ft.sleep))

	p.Delta()
	ft.advance(30 * time.Millisecond)
	p.Wait()
	assert.Empty(t, ft.slept)
}

func TestPacerUnlimited(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	p := NewPacer(0, WithTimeSource(ft.now, ft.sleep))

	p.Delta()
	p.Wait()
	assert.Empty(t, ft.slept)
}
