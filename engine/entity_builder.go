package engine

import "github.com/lixenwraith/tether/core"

// EntityBuilder constructs an entity transactionally
// The ID is reserved upfront; components are staged and committed together by Build
//
// Example:
//
//	e := With(With(world.NewEntity(),
//	    world.Component.Transform, component.NewTransform(pos)),
//	    world.Component.Particle, particle).Build()
type EntityBuilder struct {
	world   *World
	entity  core.Entity
	pending []func()
	built   bool
}

// NewEntity reserves an entity ID and returns a builder for it
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{
		world:  w,
		entity: w.reserveEntityID(),
	}
}

// Entity returns the reserved ID, usable for cross references before Build
func (eb *EntityBuilder) Entity() core.Entity {
	return eb.entity
}

// With stages a component of type T; panics if called after Build()
func With[T any](eb *EntityBuilder, store *Store[T], component T) *EntityBuilder {
	if eb.built {
		panic("entity already built - cannot add components after Build()")
	}
	e := eb.entity
	eb.pending = append(eb.pending, func() { store.Set(e, component) })
	return eb
}

// Build commits staged components and marks the entity alive
func (eb *EntityBuilder) Build() core.Entity {
	if eb.built {
		return eb.entity
	}
	eb.built = true
	for _, commit := range eb.pending {
		commit()
	}
	eb.pending = nil
	eb.world.markAlive(eb.entity)
	return eb.entity
}
