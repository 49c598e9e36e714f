package engine

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/event"
)

// Pipeline runs registered systems stage by stage, one fixed tick at a time
// Force -> Constraint -> Resolve -> Integrate; priority orders systems within a stage
type Pipeline struct {
	world  *World
	stages [stageCount][]System

	statTicks  *atomic.Int64
	statPanics *atomic.Int64
}

// NewPipeline creates an empty pipeline bound to the world
func NewPipeline(w *World) *Pipeline {
	return &Pipeline{
		world:      w,
		statTicks:  w.Resource.Status.Ints.Get("engine.ticks"),
		statPanics: w.Resource.Status.Ints.Get("engine.stage_panics"),
	}
}

// Add registers a system into its stage, keeping the stage sorted by priority
// Equal priorities keep registration order
func (p *Pipeline) Add(systems ...System) {
	for _, s := range systems {
		stage := s.Stage()
		if stage < 0 || stage >= stageCount {
			panic("system " + s.Name() + " declares unknown stage")
		}
		list := append(p.stages[stage], s)

		// Insertion sort, small N and stable
		for i := len(list) - 1; i > 0 && list[i-1].Priority() > list[i].Priority(); i-- {
			list[i-1], list[i] = list[i], list[i-1]
		}
		p.stages[stage] = list
	}
}

// Systems returns all systems in execution order
func (p *Pipeline) Systems() []System {
	var out []System
	for _, list := range p.stages {
		out = append(out, list...)
	}
	return out
}

// Find returns the first registered system with the given name
func (p *Pipeline) Find(name string) (System, bool) {
	for _, list := range p.stages {
		for _, s := range list {
			if s.Name() == name {
				return s, true
			}
		}
	}
	return nil, false
}

// Init resets every system and discards pending contacts
func (p *Pipeline) Init() {
	p.world.Resource.Contacts.Buffer.Reset()
	for _, list := range p.stages {
		for _, s := range list {
			s.Init()
		}
	}
}

// Tick advances the world by one fixed step of dt seconds
// Caller must hold the world update lock
func (p *Pipeline) Tick(dt float64) {
	p.world.Resource.Time.Advance(dt, time.Now())

	for _, list := range p.stages {
		for _, s := range list {
			if t, ok := s.(Toggleable); ok && !t.Enabled() {
				continue
			}
			if err := core.Guard(s.Name(), s.Update); err != nil {
				p.statPanics.Add(1)
				log.Printf("pipeline: %s stage: %v", s.Stage(), err)
				p.world.PushEvent(event.EventStagePanic, &event.StagePanicPayload{
					System: s.Name(),
					Error:  err.Error(),
				})
			}
		}
	}

	// Contact list never survives a tick boundary, even if no resolver is registered
	p.world.Resource.Contacts.Buffer.Reset()
	p.statTicks.Add(1)
}
