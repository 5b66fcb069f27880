package core

import "time"

// DefaultTick is the step interval used when none is configured.
const DefaultTick = 200 * time.Millisecond

// FixedStep paces a polling loop: it reports a due step once the configured
// interval has elapsed since the previous one.
type FixedStep struct {
	interval time.Duration
	last     time.Time
}

// NewFixedStep constructs a FixedStep controller with the given interval.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetInterval(interval)
	return fs
}

// SetInterval changes the step interval. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTick
	}
	f.interval = interval
}

// Interval returns the current step interval.
func (f *FixedStep) Interval() time.Duration { return f.interval }

// Reset forgets the previous step so the next poll starts a fresh interval.
func (f *FixedStep) Reset() { f.last = time.Time{} }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool { return f.ShouldStepAt(time.Now()) }

// ShouldStepAt is ShouldStep against an explicit clock reading.
func (f *FixedStep) ShouldStepAt(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
		return false
	}
	if now.Sub(f.last) >= f.interval {
		f.last = now
		return true
	}
	return false
}
