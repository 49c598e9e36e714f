package engine

import (
	"testing"
	"time"
)

// TestFixedStepAccumulates verifies partial frames carry over into whole ticks
func TestFixedStepAccumulates(t *testing.T) {
	var ticks int
	var lastDt float64
	f := NewFixedStep(60, 5, func(dt float64) {
		ticks++
		lastDt = dt
	})

	if n := f.Advance(f.Interval() / 2); n != 0 {
		t.Errorf("Expected 0 ticks for half step, got %d", n)
	}
	if n := f.Advance(f.Interval() / 2); n != 1 {
		t.Errorf("Expected 1 tick after two halves, got %d", n)
	}
	if ticks != 1 || lastDt != 1.0/60 {
		t.Errorf("Expected 1 tick with dt 1/60, got %d %g", ticks, lastDt)
	}
}

// TestFixedStepCapsCatchUp verifies the per-advance cap and dropped excess
func TestFixedStepCapsCatchUp(t *testing.T) {
	var ticks int
	f := NewFixedStep(60, 5, func(float64) { ticks++ })

	n := f.Advance(time.Second)
	if n != 5 || ticks != 5 {
		t.Errorf("Expected capped 5 ticks, got %d", n)
	}
	if f.Alpha() >= 1 {
		t.Errorf("Expected excess dropped, alpha %g", f.Alpha())
	}
	if dropped := f.statDropped.Load(); dropped < 50 {
		t.Errorf("Expected dropped ticks counted, got %d", dropped)
	}
}

// TestFixedStepDrivesPipeline verifies ForPipeline advances world time
func TestFixedStepDrivesPipeline(t *testing.T) {
	w := NewWorld()
	p := NewPipeline(w)
	f := ForPipeline(p, 100, 10)

	f.Advance(50 * time.Millisecond)
	if w.Resource.Time.Tick != 5 {
		t.Errorf("Expected 5 ticks, got %d", w.Resource.Time.Tick)
	}
	f.StepOnce()
	if w.Resource.Time.Tick != 6 {
		t.Errorf("Expected 6 ticks after StepOnce, got %d", w.Resource.Time.Tick)
	}
	f.Reset()
	if f.Alpha() != 0 {
		t.Errorf("Expected empty accumulator after reset, got %g", f.Alpha())
	}
}
