package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/event"
)

// maxVoices bounds concurrent cues; a resting pile of spheres would otherwise flood the mixer
const maxVoices = 8

// Player mixes impact cues into the speaker
// Registered on the scheduler's router, it consumes EventContactImpact
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
	threshold   float64

	muted   atomic.Bool
	played  atomic.Int64
	dropped atomic.Int64

	// sink adds a streamer to the output; replaced in tests
	sink func(beep.Streamer) bool
}

// NewPlayer creates a player; threshold is the impulse that maps to the quietest cue
func NewPlayer(enabled bool, volume, threshold float64) *Player {
	p := &Player{
		mixer:     &beep.Mixer{},
		volume:    volume,
		threshold: threshold,
	}
	p.muted.Store(!enabled)
	p.sink = p.speakerSink
	return p
}

// Initialize opens the speaker; failure leaves the player silent
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup clears pending cues and closes the speaker
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Play queues a cue for an impulse; returns false when muted, uninitialized or saturated
func (p *Player) Play(impulse float64) bool {
	if p.muted.Load() {
		return false
	}
	if !p.sink(ImpactCue(impulse, p.threshold, p.volume)) {
		p.dropped.Add(1)
		return false
	}
	p.played.Add(1)
	return true
}

func (p *Player) speakerSink(s beep.Streamer) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return false
	}

	speaker.Lock()
	defer speaker.Unlock()
	if p.mixer.Len() >= maxVoices {
		return false
	}
	p.mixer.Add(s)
	return true
}

// ToggleMute flips mute, returns true if now muted
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	log.Printf("audio: muted=%v", muted)
	return muted
}

// IsMuted returns current mute state
func (p *Player) IsMuted() bool {
	return p.muted.Load()
}

// Played returns the number of cues queued
func (p *Player) Played() int64 {
	return p.played.Load()
}

// Dropped returns the number of cues rejected by a full or closed output
func (p *Player) Dropped() int64 {
	return p.dropped.Load()
}

// HandleEvent implements event.Handler
func (p *Player) HandleEvent(_ *engine.World, ev event.GameEvent) {
	if payload, ok := ev.Payload.(*event.ContactImpactPayload); ok {
		p.Play(payload.Impulse)
	}
}

// EventTypes implements event.Handler
func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{event.EventContactImpact}
}

var _ event.Handler[*engine.World] = (*Player)(nil)
