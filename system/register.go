package system

import (
	"github.com/lixenwraith/tether/engine"
)

// Set holds the systems callers need to reach after registration
type Set struct {
	Buoyancy   *BuoyancySystem
	Resolution *ContactResolutionSystem
}

// Register adds the full physics tick to the pipeline
func Register(p *engine.Pipeline, world *engine.World) *Set {
	set := &Set{
		Buoyancy:   NewBuoyancySystem(world),
		Resolution: NewContactResolutionSystem(world),
	}

	p.Add(
		NewGravitySystem(world),
		NewFixedSpringSystem(world),
		NewPairedSpringSystem(world),
		NewBungeeSystem(world),
		set.Buoyancy,

		NewRodSystem(world),
		NewCableSystem(world),
		NewSphereContactSystem(world),

		set.Resolution,

		NewIntegratorSystem(world),
	)
	return set
}
