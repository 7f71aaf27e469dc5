// Package audio plays the detonation cue through the beep speaker.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue holds one decoded sound and plays overlapping copies of it.
type Cue struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer

	buffer *beep.Buffer
	volume float64 // 0..1
}

// New creates a cue at the given volume.
func New(volume float64) *Cue {
	return &Cue{
		sampleRate: DefaultSampleRate,
		mixer:      &beep.Mixer{},
		volume:     clamp(volume, 0, 1),
	}
}

// Init opens the speaker and starts the mixer.
func (c *Cue) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(c.sampleRate, c.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// LoadFile decodes a WAV file into memory.
func (c *Cue) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read cue: %w", err)
	}
	return c.Load(data)
}

// Load decodes WAV data into memory, resampled to the speaker rate.
func (c *Cue) Load(data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != c.sampleRate {
		src = beep.Resample(4, format.SampleRate, c.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: c.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)

	c.mu.Lock()
	c.buffer = buf
	c.mu.Unlock()
	return nil
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (c *Cue) SetVolume(vol float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (c *Cue) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// Play starts a copy of the sound. It is a no-op before Init or Load.
func (c *Cue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.buffer == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(&effects.Volume{
		Streamer: c.buffer.Streamer(0, c.buffer.Len()),
		Base:     2,
		Volume:   gainExponent(c.volume),
		Silent:   c.volume <= 0,
	})
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}

// gainExponent maps a 0..1 amplitude to the exponent effects.Volume applies
// to Base 2, so 0.5 is one halving (about -6dB).
func gainExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
