package system

import (
	"sync/atomic"

	"github.com/lixenwraith/tether/component"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/physics"
)

// GravitySystem adds world gravity to every movable particle
type GravitySystem struct {
	engine.SystemBase

	statApplied *atomic.Int64
}

func NewGravitySystem(world *engine.World) engine.System {
	return &GravitySystem{
		SystemBase:  engine.NewSystemBase(world),
		statApplied: world.Resource.Status.Ints.Get("force.gravity"),
	}
}

func (s *GravitySystem) Name() string        { return "gravity" }
func (s *GravitySystem) Stage() engine.Stage { return engine.StageForce }
func (s *GravitySystem) Priority() int       { return parameter.PriorityGravity }
func (s *GravitySystem) Init()               { s.statApplied.Store(0) }

func (s *GravitySystem) Update() {
	sim := s.Resource.Simulation
	if !sim.GravityEnabled {
		s.statApplied.Store(0)
		return
	}

	var applied int64
	for _, e := range s.Component.Particle.All() {
		s.Component.Particle.Update(e, func(p *component.ParticleComponent) {
			if p.Immovable() {
				return
			}
			p.AddForce(physics.GravityForce(p.InverseMass, sim.Gravity))
			applied++
		})
	}
	s.statApplied.Store(applied)
}
