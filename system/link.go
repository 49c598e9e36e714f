package system

import (
	"sync/atomic"

	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/physics"
)

// RodSystem emits a contact for every rod off its length
type RodSystem struct {
	engine.SystemBase

	statContacts *atomic.Int64
}

func NewRodSystem(world *engine.World) engine.System {
	return &RodSystem{
		SystemBase:   engine.NewSystemBase(world),
		statContacts: world.Resource.Status.Ints.Get("contact.rod"),
	}
}

func (s *RodSystem) Name() string        { return "rod" }
func (s *RodSystem) Stage() engine.Stage { return engine.StageConstraint }
func (s *RodSystem) Priority() int       { return parameter.PriorityRod }
func (s *RodSystem) Init()               { s.statContacts.Store(0) }

func (s *RodSystem) Update() {
	buf := s.Resource.Contacts.Buffer
	var emitted int64
	for _, e := range s.Component.Rod.All() {
		rod, ok := s.Component.Rod.Get(e)
		if !ok {
			continue
		}
		posA, posB, ok := pairPositions(s.World, rod.A, rod.B)
		if !ok {
			continue
		}
		if c, ok := physics.RodContact(rod.A, rod.B, posA, posB, rod.Length); ok {
			buf.Add(c)
			emitted++
		}
	}
	s.statContacts.Store(emitted)
}

// CableSystem emits a contact for every cable at or past its maximum length
type CableSystem struct {
	engine.SystemBase

	statContacts *atomic.Int64
}

func NewCableSystem(world *engine.World) engine.System {
	return &CableSystem{
		SystemBase:   engine.NewSystemBase(world),
		statContacts: world.Resource.Status.Ints.Get("contact.cable"),
	}
}

func (s *CableSystem) Name() string        { return "cable" }
func (s *CableSystem) Stage() engine.Stage { return engine.StageConstraint }
func (s *CableSystem) Priority() int       { return parameter.PriorityCable }
func (s *CableSystem) Init()               { s.statContacts.Store(0) }

func (s *CableSystem) Update() {
	buf := s.Resource.Contacts.Buffer
	var emitted int64
	for _, e := range s.Component.Cable.All() {
		cable, ok := s.Component.Cable.Get(e)
		if !ok {
			continue
		}
		posA, posB, ok := pairPositions(s.World, cable.A, cable.B)
		if !ok {
			continue
		}
		if c, ok := physics.CableContact(cable.A, cable.B, posA, posB, cable.MaxLength, cable.Restitution); ok {
			buf.Add(c)
			emitted++
		}
	}
	s.statContacts.Store(emitted)
}
