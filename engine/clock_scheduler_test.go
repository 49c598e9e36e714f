package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/tether/event"
)

// TestPausableClockFreezes verifies game time excludes paused intervals
func TestPausableClockFreezes(t *testing.T) {
	start := time.Unix(1000, 0)
	mock := NewMockTimeProvider(start, 10*time.Millisecond)
	pc := NewPausableClockWithProvider(mock)

	mock.Advance(time.Second)
	if got := pc.Now().Sub(start); got != time.Second {
		t.Errorf("Expected 1s game time, got %v", got)
	}

	pc.Pause()
	mock.Advance(5 * time.Second)
	if got := pc.Now().Sub(start); got != time.Second {
		t.Errorf("Expected frozen 1s while paused, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("Expected 5s paused, got %v", got)
	}

	pc.Resume()
	mock.Tick(100)
	if got := pc.Now().Sub(start); got != 2*time.Second {
		t.Errorf("Expected 2s game time after resume, got %v", got)
	}
	if pc.RealTime() != start.Add(7*time.Second) {
		t.Errorf("Expected real time unaffected by pause, got %v", pc.RealTime())
	}
	if mock.Elapsed() != 7*time.Second {
		t.Errorf("Expected 7s elapsed on the mock, got %v", mock.Elapsed())
	}
}

// TestClockSchedulerTicks verifies the scheduler runs ticks, signals updateDone and dispatches events
func TestClockSchedulerTicks(t *testing.T) {
	w := NewWorld()
	p := NewPipeline(w)
	var log []string
	emitter := newRecording(w, "emit", StageForce, 10, &log)
	p.Add(emitter)

	var handled atomic.Int64
	fixed := ForPipeline(p, 200, 5)
	cs, updateDone := NewClockScheduler(w, fixed, NewPausableClock(), 5*time.Millisecond)
	cs.RegisterEventHandler(event.HandlerFunc[*World]{
		Types: []event.EventType{event.EventSceneLoaded},
		Fn:    func(*World, event.GameEvent) { handled.Add(1) },
	})

	w.PushEvent(event.EventSceneLoaded, &event.SceneLoadedPayload{Name: "test"})

	cs.Start()
	defer cs.Stop()

	select {
	case <-updateDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for updateDone")
	}

	var ticks int64
	w.RunSafe(func() { ticks = w.Resource.Time.Tick })
	if ticks == 0 {
		t.Error("Expected at least one tick")
	}
	if handled.Load() != 1 {
		t.Errorf("Expected pending event dispatched once, got %d", handled.Load())
	}
	if cs.WakeCount() == 0 {
		t.Error("Expected wake count above zero")
	}
}

// TestClockSchedulerPauseStep verifies pause stops ticks and StepOnce advances exactly one
func TestClockSchedulerPauseStep(t *testing.T) {
	w := NewWorld()
	p := NewPipeline(w)
	fixed := ForPipeline(p, 200, 5)
	cs, _ := NewClockScheduler(w, fixed, NewPausableClock(), 5*time.Millisecond)

	cs.Pause()
	if !cs.IsPaused() {
		t.Fatal("Expected paused")
	}
	cs.Start()
	time.Sleep(30 * time.Millisecond)
	cs.Stop()

	var before int64
	w.RunSafe(func() { before = w.Resource.Time.Tick })
	if before != 0 {
		t.Errorf("Expected no ticks while paused, got %d", before)
	}

	cs.StepOnce()
	if w.Resource.Time.Tick != 1 {
		t.Errorf("Expected exactly one tick after StepOnce, got %d", w.Resource.Time.Tick)
	}
	if cs.TogglePause() {
		t.Error("Expected toggle to resume")
	}
}
