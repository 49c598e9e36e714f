package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/core"
)

// Body is the resolver's working copy of one particle
// Acceleration is this tick's accumulated force times inverse mass
type Body struct {
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
	InverseMass  float64
}

// BodyTable maps entities to resolver bodies; entities absent from the table are immovable
type BodyTable struct {
	index    map[core.Entity]int
	bodies   []Body
	entities []core.Entity
}

// NewBodyTable creates an empty table
func NewBodyTable(capacity int) *BodyTable {
	return &BodyTable{
		index:    make(map[core.Entity]int, capacity),
		bodies:   make([]Body, 0, capacity),
		entities: make([]core.Entity, 0, capacity),
	}
}

// Put inserts or replaces the body for e
func (t *BodyTable) Put(e core.Entity, b Body) {
	if i, ok := t.index[e]; ok {
		t.bodies[i] = b
		return
	}
	t.index[e] = len(t.bodies)
	t.bodies = append(t.bodies, b)
	t.entities = append(t.entities, e)
}

// Get returns a pointer to the body for e, nil when absent
// Pointer is valid until the next Put of a new entity
func (t *BodyTable) Get(e core.Entity) *Body {
	if !e.Valid() {
		return nil
	}
	if i, ok := t.index[e]; ok {
		return &t.bodies[i]
	}
	return nil
}

// Has reports whether e has a body
func (t *BodyTable) Has(e core.Entity) bool {
	_, ok := t.index[e]
	return ok
}

// Len returns the number of bodies
func (t *BodyTable) Len() int {
	return len(t.bodies)
}

// Range visits bodies in insertion order
func (t *BodyTable) Range(fn func(e core.Entity, b *Body)) {
	for i := range t.bodies {
		fn(t.entities[i], &t.bodies[i])
	}
}

// Reset clears the table keeping allocations
func (t *BodyTable) Reset() {
	clear(t.index)
	t.bodies = t.bodies[:0]
	t.entities = t.entities[:0]
}
