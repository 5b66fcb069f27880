package core

import (
	"testing"
	"time"
)

func TestFixedStepWaitsForInterval(t *testing.T) {
	fs := NewFixedStep(100 * time.Millisecond)
	start := time.Unix(1000, 0)
	if fs.ShouldStepAt(start) {
		t.Fatal("first poll must only arm the timer")
	}
	if fs.ShouldStepAt(start.Add(99 * time.Millisecond)) {
		t.Fatal("stepped before interval elapsed")
	}
	if !fs.ShouldStepAt(start.Add(100 * time.Millisecond)) {
		t.Fatal("expected step once interval elapsed")
	}
	if fs.ShouldStepAt(start.Add(150 * time.Millisecond)) {
		t.Fatal("interval should restart after a step")
	}
	fs.SetInterval(0)
	if fs.Interval() != DefaultTick {
		t.Fatalf("non-positive interval should fall back to %v, got %v", DefaultTick, fs.Interval())
	}
}
