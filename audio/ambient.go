// Package audio synthesizes the optional ambient tone that fades out with the field
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/starfield/vmath"
)

const (
	// SampleRate is the speaker output rate
	SampleRate = beep.SampleRate(44100)
	// DefaultFrequency is a low A, quiet enough to sit under the field
	DefaultFrequency = 220.0
	// DefaultGain is the tone amplitude at full alpha
	DefaultGain = 0.15
)

// Ambient is a continuous sine tone whose amplitude follows the field's fade multiplier
type Ambient struct {
	volume  *effects.Volume
	gain    float64
	playing bool
}

// NewAmbient builds a silent tone at freq with peak amplitude gain
func NewAmbient(rate beep.SampleRate, freq, gain float64) (*Ambient, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.1fHz: %w", freq, err)
	}
	return &Ambient{
		volume: &effects.Volume{Streamer: tone, Base: 2, Silent: true},
		gain:   gain,
	}, nil
}

// Streamer exposes the gain-controlled tone
func (a *Ambient) Streamer() beep.Streamer {
	return a.volume
}

// SetLevel scales the tone to gain*alpha; alpha <= 0 silences it
func (a *Ambient) SetLevel(alpha float64) {
	if a.playing {
		speaker.Lock()
		defer speaker.Unlock()
	}

	amp := a.gain * vmath.Clamp01(alpha)
	if amp <= 0 {
		a.volume.Silent = true
		return
	}
	a.volume.Silent = false
	a.volume.Volume = math.Log2(amp)
}

// Start opens the speaker and begins playback
func (a *Ambient) Start() error {
	if a.playing {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	a.playing = true
	speaker.Play(a.volume)
	return nil
}

// Close stops playback and releases the speaker
func (a *Ambient) Close() {
	if !a.playing {
		return
	}
	speaker.Clear()
	speaker.Close()
	a.playing = false
}
