package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/event"
)

// ClockScheduler drives a FixedStep from a goroutine
// Each wake feeds elapsed game time to the accumulator under the world lock,
// dispatches the events the ticks produced, then signals updateDone
type ClockScheduler struct {
	world *World
	fixed *FixedStep
	clock *PausableClock

	// Wake configuration
	wakeInterval     time.Duration
	lastWake         time.Time // Last wake in game time
	nextWakeDeadline time.Time // Next wake deadline for drift correction
	mu               sync.RWMutex

	wakeCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Frame synchronization: signal after each wake that ran ticks
	updateDone chan<- struct{}

	router *event.Router[*World]

	statTicksPerWake *atomic.Int64
	statPaused       *atomic.Bool
}

// NewClockScheduler creates a scheduler waking every wakeInterval
// Returns the scheduler and the updateDone receive channel
func NewClockScheduler(
	world *World,
	fixed *FixedStep,
	clock *PausableClock,
	wakeInterval time.Duration,
) (*ClockScheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)

	cs := &ClockScheduler{
		world:            world,
		fixed:            fixed,
		clock:            clock,
		wakeInterval:     wakeInterval,
		lastWake:         clock.Now(),
		stopChan:         make(chan struct{}),
		updateDone:       updateDone,
		router:           event.NewRouter[*World](world.Resource.Event.Queue),
		statTicksPerWake: world.Resource.Status.Ints.Get("engine.ticks_per_wake"),
		statPaused:       world.Resource.Status.Bools.Get("engine.paused"),
	}
	return cs, updateDone
}

// RegisterEventHandler adds an event handler to router, must be called before Start()
func (cs *ClockScheduler) RegisterEventHandler(handler event.Handler[*World]) {
	cs.router.Register(handler)
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// Pause freezes simulation time; no ticks run until Resume
func (cs *ClockScheduler) Pause() {
	cs.clock.Pause()
	cs.statPaused.Store(true)
}

// Resume continues simulation from where it paused without catch-up
func (cs *ClockScheduler) Resume() {
	cs.clock.Resume()
	cs.statPaused.Store(false)
}

// TogglePause flips pause state and returns the new state
func (cs *ClockScheduler) TogglePause() bool {
	if cs.clock.IsPaused() {
		cs.Resume()
		return false
	}
	cs.Pause()
	return true
}

// IsPaused returns current pause state
func (cs *ClockScheduler) IsPaused() bool {
	return cs.clock.IsPaused()
}

// StepOnce runs a single tick synchronously, used for frame stepping while paused
func (cs *ClockScheduler) StepOnce() {
	cs.world.RunSafe(func() {
		cs.fixed.StepOnce()
		cs.router.DispatchAll(cs.world)
	})
}

// DispatchEventsImmediately processes all pending events synchronously
func (cs *ClockScheduler) DispatchEventsImmediately() {
	cs.world.RunSafe(func() {
		cs.router.DispatchAll(cs.world)
	})
}

// WakeCount returns the number of wakes that ran at least one tick
func (cs *ClockScheduler) WakeCount() uint64 {
	return cs.wakeCount.Load()
}

// schedulerLoop runs the main scheduling loop with pause awareness
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.lastWake = cs.clock.Now()
	cs.nextWakeDeadline = cs.lastWake.Add(cs.wakeInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if cs.clock.IsPaused() {
			// Longer sleep while paused to save CPU
			sleepDuration = cs.wakeInterval * 2
		} else {
			gameNow := cs.clock.Now()

			cs.mu.RLock()
			deadline := cs.nextWakeDeadline
			cs.mu.RUnlock()

			if !gameNow.Before(deadline) {
				cs.processWake(gameNow)

				cs.mu.Lock()
				cs.nextWakeDeadline = cs.nextWakeDeadline.Add(cs.wakeInterval)
				maxBehind := cs.wakeInterval * 2
				if gameNow.Sub(cs.nextWakeDeadline) > maxBehind {
					cs.nextWakeDeadline = gameNow.Add(cs.wakeInterval)
				}
				deadline = cs.nextWakeDeadline
				cs.mu.Unlock()

				sleepDuration = deadline.Sub(cs.clock.Now())
				if sleepDuration < 0 {
					sleepDuration = 0
				}
			} else {
				sleepDuration = deadline.Sub(gameNow)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}

// processWake feeds elapsed game time into the fixed step and dispatches produced events
func (cs *ClockScheduler) processWake(gameNow time.Time) {
	cs.mu.Lock()
	elapsed := gameNow.Sub(cs.lastWake)
	cs.lastWake = gameNow
	cs.mu.Unlock()

	var steps int
	cs.world.RunSafe(func() {
		steps = cs.fixed.Advance(elapsed)
		cs.router.DispatchAll(cs.world)
	})
	cs.statTicksPerWake.Store(int64(steps))

	if steps == 0 {
		return
	}
	cs.wakeCount.Add(1)

	select {
	case cs.updateDone <- struct{}{}:
	default:
	}
}
