package audio

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrUnavailable is returned when the binary was built without audio output.
var ErrUnavailable = errors.New("audio output not available, build with -tags audio to enable")

// Provider produces signed 16-bit mono samples for playback.
type Provider interface {
	// GetSamples retrieves audio samples for playback
	GetSamples(count int) []int16
}

// Tone is a square-wave buzzer that sounds while active. It is written to by
// the emulation loop and read from the audio callback, so the gate is atomic.
type Tone struct {
	active atomic.Bool

	mu         sync.Mutex
	sampleRate int
	period     int // samples per full wave
	phase      int
}

// NewTone creates a silent tone generator at freq Hz.
func NewTone(sampleRate, freq int) *Tone {
	period := 1
	if freq > 0 && sampleRate > freq {
		period = sampleRate / freq
	}
	return &Tone{
		sampleRate: sampleRate,
		period:     period,
	}
}

// SetActive gates the tone on or off.
func (t *Tone) SetActive(on bool) {
	t.active.Store(on)
}

// Active reports whether the tone is currently sounding.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// GetSamples returns count samples. The waveform keeps its phase across calls
// and while gated off so there is no click when it restarts.
func (t *Tone) GetSamples(count int) []int16 {
	t.mu.Lock()
	defer t.mu.Unlock()

	samples := make([]int16, count)
	on := t.active.Load()
	half := t.period / 2
	for i := range samples {
		if on {
			if t.phase < half {
				samples[i] = amplitude
			} else {
				samples[i] = -amplitude
			}
		}
		t.phase = (t.phase + 1) % t.period
	}
	return samples
}

var _ Provider = (*Tone)(nil)
