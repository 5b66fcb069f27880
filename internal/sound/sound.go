// Package sound plays short UI feedback tones through the system speaker.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player is the feedback surface used by the front-ends.
type Player interface {
	// Click acknowledges an edit or key press.
	Click()
	// StartStop plays a rising tone when running and a falling one when not.
	StartStop(running bool)
	// Stabilized signals that the grid stopped changing.
	Stabilized()
	Close()
}

// Silent discards every sound.
type Silent struct{}

func (Silent) Click() {}
func (Silent) StartStop(bool) {}
func (Silent) Stabilized() {}
func (Silent) Close() {}

var _ Player = Silent{}

// Speaker mixes tones onto the default audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSpeaker opens the audio device. volume is in beep's log2 units: 0 is
// unity gain, negative values attenuate.
func NewSpeaker(volume float64) (*Speaker, error) {
	s := &Speaker{mixer: &beep.Mixer{}, volume: volume}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return s, nil
}

// Open returns a Speaker, or Silent when disabled or the device is
// unavailable. The error is returned alongside the fallback so callers can
// log it.
func Open(enabled bool, volume float64) (Player, error) {
	if !enabled {
		return Silent{}, nil
	}
	s, err := NewSpeaker(volume)
	if err != nil {
		return Silent{}, err
	}
	return s, nil
}

func (s *Speaker) Click() { s.play(clickTone) }

func (s *Speaker) StartStop(running bool) {
	if running {
		s.play(startTone)
		return
	}
	s.play(stopTone)
}

func (s *Speaker) Stabilized() { s.play(stableTone) }

// Close silences pending tones. The device stays open; beep has no way to
// release it.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

func (s *Speaker) play(t Tone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	var st beep.Streamer = NewToneStreamer(t, sampleRate)
	if s.volume != 0 {
		st = &effects.Volume{Streamer: st, Base: 2, Volume: s.volume}
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}
