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

// addForce accumulates f into e's particle; absent particle is a silent skip
func addForce(c engine.ComponentStore, e core.Entity, f mgl64.Vec3) bool {
	return c.Particle.Update(e, func(p *component.ParticleComponent) {
		p.AddForce(f)
	})
}

// pairPositions returns both endpoint positions, false if either lacks a transform
func pairPositions(w *engine.World, a, b core.Entity) (mgl64.Vec3, mgl64.Vec3, bool) {
	posA, okA := w.Position(a)
	posB, okB := w.Position(b)
	return posA, posB, okA && okB
}

// FixedSpringSystem pulls each target toward its generator entity's transform
type FixedSpringSystem struct {
	engine.SystemBase

	statActive *atomic.Int64
}

func NewFixedSpringSystem(world *engine.World) engine.System {
	return &FixedSpringSystem{
		SystemBase: engine.NewSystemBase(world),
		statActive: world.Resource.Status.Ints.Get("force.fixed_spring"),
	}
}

func (s *FixedSpringSystem) Name() string        { return "fixed_spring" }
func (s *FixedSpringSystem) Stage() engine.Stage { return engine.StageForce }
func (s *FixedSpringSystem) Priority() int       { return parameter.PriorityFixedSpring }
func (s *FixedSpringSystem) Init()               { s.statActive.Store(0) }

func (s *FixedSpringSystem) Update() {
	var active int64
	for _, e := range s.Component.FixedSpring.All() {
		spring, ok := s.Component.FixedSpring.Get(e)
		if !ok {
			continue
		}
		anchor, target, ok := pairPositions(s.World, e, spring.Target)
		if !ok {
			continue
		}
		f := physics.SpringForce(target, anchor, spring.SpringConstant, spring.RestLength)
		if addForce(s.Component, spring.Target, f) {
			active++
		}
	}
	s.statActive.Store(active)
}

// PairedSpringSystem applies Hooke's law between two particles
// One-sided instances push only B; symmetric instances push both
type PairedSpringSystem struct {
	engine.SystemBase

	statActive *atomic.Int64
}

func NewPairedSpringSystem(world *engine.World) engine.System {
	return &PairedSpringSystem{
		SystemBase: engine.NewSystemBase(world),
		statActive: world.Resource.Status.Ints.Get("force.paired_spring"),
	}
}

func (s *PairedSpringSystem) Name() string        { return "paired_spring" }
func (s *PairedSpringSystem) Stage() engine.Stage { return engine.StageForce }
func (s *PairedSpringSystem) Priority() int       { return parameter.PriorityPairedSpring }
func (s *PairedSpringSystem) Init()               { s.statActive.Store(0) }

func (s *PairedSpringSystem) Update() {
	var active int64
	for _, e := range s.Component.PairedSpring.All() {
		spring, ok := s.Component.PairedSpring.Get(e)
		if !ok {
			continue
		}
		posA, posB, ok := pairPositions(s.World, spring.A, spring.B)
		if !ok {
			continue
		}
		onB := physics.SpringForce(posB, posA, spring.SpringConstant, spring.RestLength)
		applyLink(s.Component, spring.A, spring.B, onB, spring.Mode)
		active++
	}
	s.statActive.Store(active)
}

// applyLink adds onB to B and, for symmetric links, the reaction to A
func applyLink(c engine.ComponentStore, a, b core.Entity, onB mgl64.Vec3, mode component.LinkMode) {
	addForce(c, b, onB)
	if mode == component.LinkSymmetric {
		addForce(c, a, onB.Mul(-1))
	}
}
