package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Tone is a sine sweep with a linear attack/release envelope.
type Tone struct {
	From, To  float64 // Hz
	Duration  time.Duration
	Attack    time.Duration
	Release   time.Duration
	Amplitude float64
}

var (
	clickTone  = Tone{From: 1200, To: 1200, Duration: 25 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 15 * time.Millisecond, Amplitude: 0.25}
	startTone  = Tone{From: 440, To: 880, Duration: 120 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond, Amplitude: 0.3}
	stopTone   = Tone{From: 880, To: 440, Duration: 120 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond, Amplitude: 0.3}
	stableTone = Tone{From: 660, To: 660, Duration: 300 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 200 * time.Millisecond, Amplitude: 0.3}
)

// toneStreamer renders a Tone sample by sample.
type toneStreamer struct {
	tone    Tone
	rate    beep.SampleRate
	total   int
	attack  int
	release int
	pos     int
	phase   float64
}

// NewToneStreamer returns a finite streamer for t.
func NewToneStreamer(t Tone, rate beep.SampleRate) beep.Streamer {
	return &toneStreamer{
		tone:    t,
		rate:    rate,
		total:   rate.N(t.Duration),
		attack:  rate.N(t.Attack),
		release: rate.N(t.Release),
	}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.tone.From + (s.tone.To-s.tone.From)*progress
		val := math.Sin(2*math.Pi*s.phase) * s.tone.Amplitude * s.envelope()
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *toneStreamer) envelope() float64 {
	if s.attack > 0 && s.pos < s.attack {
		return float64(s.pos) / float64(s.attack)
	}
	if remaining := s.total - s.pos; s.release > 0 && remaining < s.release {
		return float64(remaining) / float64(s.release)
	}
	return 1
}

func (s *toneStreamer) Err() error { return nil }
