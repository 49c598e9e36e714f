package engine

import (
	"sync/atomic"
	"time"
)

// FixedStep converts variable elapsed time into whole fixed ticks
// Excess beyond MaxSteps per Advance is dropped so a slow host never spirals
type FixedStep struct {
	tick     func(dt float64)
	dt       float64
	step     time.Duration
	maxSteps int

	accumulator time.Duration

	statDropped *atomic.Int64
}

// NewFixedStep creates an accumulator running tick at tickRate per second
func NewFixedStep(tickRate, maxSteps int, tick func(dt float64)) *FixedStep {
	if tickRate <= 0 {
		tickRate = 1
	}
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &FixedStep{
		tick:        tick,
		dt:          1.0 / float64(tickRate),
		step:        time.Second / time.Duration(tickRate),
		maxSteps:    maxSteps,
		statDropped: new(atomic.Int64),
	}
}

// ForPipeline creates a FixedStep driving p.Tick and reporting drops into the world status
func ForPipeline(p *Pipeline, tickRate, maxSteps int) *FixedStep {
	f := NewFixedStep(tickRate, maxSteps, p.Tick)
	f.statDropped = p.world.Resource.Status.Ints.Get("engine.dropped_ticks")
	return f
}

// Advance adds elapsed time and runs as many whole ticks as fit, up to maxSteps
// Returns the number of ticks run
func (f *FixedStep) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		f.accumulator += elapsed
	}

	steps := 0
	for f.accumulator >= f.step && steps < f.maxSteps {
		f.tick(f.dt)
		f.accumulator -= f.step
		steps++
	}

	if f.accumulator >= f.step {
		dropped := f.accumulator / f.step
		f.statDropped.Add(int64(dropped))
		f.accumulator -= dropped * f.step
	}
	return steps
}

// StepOnce runs exactly one tick regardless of accumulated time
func (f *FixedStep) StepOnce() {
	f.tick(f.dt)
}

// Alpha returns the fraction of a step waiting in the accumulator, for interpolation
func (f *FixedStep) Alpha() float64 {
	return float64(f.accumulator) / float64(f.step)
}

// Dt returns the fixed step in seconds
func (f *FixedStep) Dt() float64 {
	return f.dt
}

// Interval returns the fixed step as a duration
func (f *FixedStep) Interval() time.Duration {
	return f.step
}

// Reset discards accumulated time
func (f *FixedStep) Reset() {
	f.accumulator = 0
}
