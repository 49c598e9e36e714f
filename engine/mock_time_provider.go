package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a manual clock for scheduler tests
// Time only moves through Advance or Tick; tick is the fixed step it was built with
type MockTimeProvider struct {
	start  time.Time
	tick   time.Duration
	offset atomic.Int64 // Nanoseconds since start
}

// NewMockTimeProvider starts at start and steps by tick per Tick call
func NewMockTimeProvider(start time.Time, tick time.Duration) *MockTimeProvider {
	return &MockTimeProvider{start: start, tick: tick}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.start.Add(time.Duration(m.offset.Load()))
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}

// Tick moves the clock forward by n fixed steps
func (m *MockTimeProvider) Tick(n int) {
	m.offset.Add(int64(n) * int64(m.tick))
}

// Elapsed returns the time advanced since construction
func (m *MockTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.offset.Load())
}
