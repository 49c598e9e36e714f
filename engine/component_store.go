package engine

import (
	"github.com/lixenwraith/tether/component"
)

// ComponentStore provides cached pointers to the typed component stores
// Pointers remain valid for the world's lifetime
type ComponentStore struct {
	// Particle state
	Transform *Store[component.TransformComponent]
	Particle  *Store[component.ParticleComponent]
	Sphere    *Store[component.SphereComponent]

	// Force generators
	FixedSpring  *Store[component.FixedSpringComponent]
	PairedSpring *Store[component.PairedSpringComponent]
	Bungee       *Store[component.BungeeComponent]
	Buoyancy     *Store[component.BuoyancyComponent]

	// Constraints
	Rod   *Store[component.RodComponent]
	Cable *Store[component.CableComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Transform: NewStore[component.TransformComponent](),
		Particle:  NewStore[component.ParticleComponent](),
		Sphere:    NewStore[component.SphereComponent](),

		FixedSpring:  NewStore[component.FixedSpringComponent](),
		PairedSpring: NewStore[component.PairedSpringComponent](),
		Bungee:       NewStore[component.BungeeComponent](),
		Buoyancy:     NewStore[component.BuoyancyComponent](),

		Rod:   NewStore[component.RodComponent](),
		Cable: NewStore[component.CableComponent](),
	}
}

// stores lists every store for uniform lifecycle operations
func (c *ComponentStore) stores() []AnyStore {
	return []AnyStore{
		c.Transform,
		c.Particle,
		c.Sphere,
		c.FixedSpring,
		c.PairedSpring,
		c.Bungee,
		c.Buoyancy,
		c.Rod,
		c.Cable,
	}
}
