package system

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/component"
	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/physics"
)

// SphereContactSystem tests every unordered pair of collidable spheres once per tick
// Brute force O(n^2); pairs are visited in ascending entity order
type SphereContactSystem struct {
	engine.SystemBase

	candidates []sphereCandidate

	statPairs    *atomic.Int64
	statContacts *atomic.Int64
}

type sphereCandidate struct {
	entity core.Entity
	pos    mgl64.Vec3
	radius float64
}

func NewSphereContactSystem(world *engine.World) engine.System {
	return &SphereContactSystem{
		SystemBase:   engine.NewSystemBase(world),
		statPairs:    world.Resource.Status.Ints.Get("contact.sphere_pairs"),
		statContacts: world.Resource.Status.Ints.Get("contact.sphere"),
	}
}

func (s *SphereContactSystem) Name() string        { return "sphere_contact" }
func (s *SphereContactSystem) Stage() engine.Stage { return engine.StageConstraint }
func (s *SphereContactSystem) Priority() int       { return parameter.PrioritySphereContact }

func (s *SphereContactSystem) Init() {
	s.candidates = s.candidates[:0]
	s.statPairs.Store(0)
	s.statContacts.Store(0)
}

func (s *SphereContactSystem) Update() {
	entities := s.World.Query().
		With(s.Component.Sphere).
		With(s.Component.Particle).
		With(s.Component.Transform).
		ExecuteSorted()

	s.candidates = s.candidates[:0]
	for _, e := range entities {
		p, ok := s.Component.Particle.Get(e)
		if !ok || p.Category != component.CategoryCollidable {
			continue
		}
		sphere, ok := s.Component.Sphere.Get(e)
		if !ok {
			continue
		}
		pos, ok := s.World.Position(e)
		if !ok {
			continue
		}
		s.candidates = append(s.candidates, sphereCandidate{entity: e, pos: pos, radius: sphere.Radius})
	}

	buf := s.Resource.Contacts.Buffer
	restitution := s.Resource.Simulation.SphereRestitution
	var pairs, emitted int64
	for i := 0; i < len(s.candidates); i++ {
		a := &s.candidates[i]
		for j := i + 1; j < len(s.candidates); j++ {
			b := &s.candidates[j]
			pairs++
			if c, ok := physics.SphereContact(a.entity, b.entity, a.pos, b.pos, a.radius, b.radius, restitution); ok {
				buf.Add(c)
				emitted++
			}
		}
	}
	s.statPairs.Store(pairs)
	s.statContacts.Store(emitted)
}
