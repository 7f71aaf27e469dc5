package clock

import "time"

// Pacer measures frame deltas and throttles the loop to a target rate.
type Pacer struct {
	interval time.Duration
	last     time.Time
	start    time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// PacerOption configures a Pacer.
type PacerOption func(*Pacer)

// WithTimeSource replaces time.Now and time.Sleep, for tests.
func WithTimeSource(now func() time.Time, sleep func(time.Duration)) PacerOption {
	return func(p *Pacer) {
		p.now = now
		p.sleep = sleep
	}
}

// NewPacer creates a pacer for fps frames per second. A non-positive fps
// disables throttling.
func NewPacer(fps int, opts ...PacerOption) *Pacer {
	p := &Pacer{now: time.Now, sleep: time.Sleep}
	for _, opt := range opts {
		opt(p)
	}
	if fps > 0 {
		p.interval = time.Second / time.Duration(fps)
	}
	p.last = p.now()
	p.start = p.last
	return p
}

// Interval returns the target frame duration.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Delta returns the wall seconds since the previous call and marks the start
// of a new frame.
func (p *Pacer) Delta() float64 {
	now := p.now()
	dt := now.Sub(p.last).Seconds()
	p.last = now
	p.start = now
	return dt
}

// Wait sleeps for whatever is left of the current frame interval.
func (p *Pacer) Wait() {
	if p.interval <= 0 {
		return
	}
	if remaining := p.interval - p.now().Sub(p.start); remaining > 0 {
		p.sleep(remaining)
	}
}

// Tick finishes the previous frame and starts the next one. Loops whose
// backend presents after the frame callback returns call Tick first thing in
// the callback, so the presented frame counts toward the interval.
func (p *Pacer) Tick() float64 {
	p.Wait()
	return p.Delta()
}
