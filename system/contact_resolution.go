package system

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/tether/component"
	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/event"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/physics"
	"github.com/lixenwraith/tether/status"
)

// ContactResolutionSystem drains the tick's contacts and resolves them in one batch
// Movable participants are copied into a body table, resolved, then written back
type ContactResolutionSystem struct {
	engine.SystemBase

	resolver *physics.Resolver
	bodies   *physics.BodyTable

	statContacts      *atomic.Int64
	statVelocityIters *atomic.Int64
	statPositionIters *atomic.Int64
	statUnconverged   *atomic.Int64
	statImpacts       *atomic.Int64
	statResidualDepth *status.AtomicFloat
	statMaxImpulse    *status.AtomicFloat
	statConvergedLast *atomic.Bool
}

func NewContactResolutionSystem(world *engine.World) *ContactResolutionSystem {
	reg := world.Resource.Status
	return &ContactResolutionSystem{
		SystemBase:        engine.NewSystemBase(world),
		resolver:          physics.NewResolver(world.Resource.Simulation.Iterations),
		bodies:            physics.NewBodyTable(parameter.ContactBufferCapacity),
		statContacts:      reg.Ints.Get("physics.contacts"),
		statVelocityIters: reg.Ints.Get("physics.velocity_iterations"),
		statPositionIters: reg.Ints.Get("physics.position_iterations"),
		statUnconverged:   reg.Ints.Get("physics.unconverged"),
		statImpacts:       reg.Ints.Get("physics.impacts"),
		statResidualDepth: reg.Floats.Get("physics.residual_depth"),
		statMaxImpulse:    reg.Floats.Get("physics.max_impulse"),
		statConvergedLast: reg.Bools.Get("physics.converged"),
	}
}

func (s *ContactResolutionSystem) Name() string        { return "contact_resolution" }
func (s *ContactResolutionSystem) Stage() engine.Stage { return engine.StageResolve }
func (s *ContactResolutionSystem) Priority() int       { return parameter.PriorityContactResolution }

func (s *ContactResolutionSystem) Init() {
	s.bodies.Reset()
	s.statUnconverged.Store(0)
	s.statImpacts.Store(0)
	s.statMaxImpulse.Set(0)
	s.statResidualDepth.Set(0)
	s.statConvergedLast.Store(true)
}

func (s *ContactResolutionSystem) Update() {
	contacts := s.Resource.Contacts.Buffer.Drain()
	sim := s.Resource.Simulation

	s.resolver.Iterations = sim.Iterations
	s.resolver.VelocityEpsilon = sim.VelocityEpsilon
	s.resolver.PenetrationEpsilon = sim.PenetrationEpsilon

	s.loadBodies(contacts)
	res := s.resolver.Resolve(contacts, s.bodies, s.Resource.Time.Step)
	s.storeBodies()

	s.report(contacts, res, sim.ImpactThreshold)

	last := res
	last.Impulses = nil
	s.Resource.Contacts.Last = last
}

// loadBodies copies every movable participant with a transform into the body table
// Anything else stays out and is treated as an immovable anchor
func (s *ContactResolutionSystem) loadBodies(contacts []physics.Contact) {
	s.bodies.Reset()
	for i := range contacts {
		for _, e := range contacts[i].Particles {
			if !e.Valid() || s.bodies.Has(e) {
				continue
			}
			p, ok := s.Component.Particle.Get(e)
			if !ok || p.Immovable() {
				continue
			}
			pos, ok := s.World.Position(e)
			if !ok {
				continue
			}
			s.bodies.Put(e, physics.Body{
				Position:     pos,
				Velocity:     p.Velocity,
				Acceleration: p.Force.Mul(p.InverseMass),
				InverseMass:  p.InverseMass,
			})
		}
	}
}

func (s *ContactResolutionSystem) storeBodies() {
	s.bodies.Range(func(e core.Entity, b *physics.Body) {
		s.Component.Transform.Update(e, func(t *component.TransformComponent) {
			t.Position = b.Position
		})
		s.Component.Particle.Update(e, func(p *component.ParticleComponent) {
			p.Velocity = b.Velocity
		})
	})
}

func (s *ContactResolutionSystem) report(contacts []physics.Contact, res physics.Resolution, threshold float64) {
	s.statContacts.Store(int64(res.Contacts))
	s.statVelocityIters.Store(int64(res.VelocityIterations))
	s.statPositionIters.Store(int64(res.PositionIterations))
	s.statResidualDepth.Set(res.ResidualDepth)
	s.statConvergedLast.Store(res.Converged)

	if !res.Converged {
		s.statUnconverged.Add(1)
		log.Printf("resolver: saturated at %d contacts, residual depth %.6f velocity %.6f",
			res.Contacts, res.ResidualDepth, res.ResidualVelocity)
		s.World.PushEvent(event.EventResolverSaturated, &event.ResolverSaturatedPayload{
			Contacts:           res.Contacts,
			VelocityIterations: res.VelocityIterations,
			PositionIterations: res.PositionIterations,
			ResidualVelocity:   res.ResidualVelocity,
			ResidualDepth:      res.ResidualDepth,
		})
	}

	for i, impulse := range res.Impulses {
		s.statMaxImpulse.Max(impulse)
		if impulse <= threshold {
			continue
		}
		c := &contacts[i]
		point, _ := s.World.Position(c.Particles[0])
		s.statImpacts.Add(1)
		s.World.PushEvent(event.EventContactImpact, &event.ContactImpactPayload{
			A:       c.Particles[0],
			B:       c.Particles[1],
			Impulse: impulse,
			Point:   point,
		})
	}
}
