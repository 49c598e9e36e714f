package system

import (
	"sync/atomic"

	"github.com/lixenwraith/tether/component"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/physics"
	"github.com/lixenwraith/tether/status"
)

// IntegratorSystem advances every particle and clears its force accumulator
type IntegratorSystem struct {
	engine.SystemBase

	statMoved  *atomic.Int64
	statEnergy *status.AtomicFloat
}

func NewIntegratorSystem(world *engine.World) engine.System {
	return &IntegratorSystem{
		SystemBase: engine.NewSystemBase(world),
		statMoved:  world.Resource.Status.Ints.Get("particles.moved"),
		statEnergy: world.Resource.Status.Floats.Get("particles.kinetic_energy"),
	}
}

func (s *IntegratorSystem) Name() string        { return "integrator" }
func (s *IntegratorSystem) Stage() engine.Stage { return engine.StageIntegrate }
func (s *IntegratorSystem) Priority() int       { return parameter.PriorityIntegrator }
func (s *IntegratorSystem) Init()               { s.statMoved.Store(0) }

func (s *IntegratorSystem) Update() {
	dt := s.Resource.Time.Step
	var moved int64
	var energy float64

	for _, e := range s.Component.Particle.All() {
		p, ok := s.Component.Particle.Get(e)
		if !ok {
			continue
		}
		t, hasTransform := s.Component.Transform.Get(e)

		if hasTransform && !p.Immovable() {
			t.Position, p.Velocity = physics.Integrate(t.Position, p.Velocity, p.Force, p.InverseMass, p.Damping, dt)
			s.Component.Transform.Set(e, t)
			energy += physics.KineticEnergy(p.Velocity, p.InverseMass)
			moved++
		}

		// Stale force never leaks into the next tick, even for skipped particles
		p.Force = zeroVec
		s.Component.Particle.Update(e, func(stored *component.ParticleComponent) {
			stored.Velocity = p.Velocity
			stored.Force = p.Force
		})
	}

	s.statMoved.Store(moved)
	s.statEnergy.Set(energy)
}
