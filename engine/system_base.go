package engine

// SystemBase provides common dependencies for all systems
// Embed in system struct to eliminate boilerplate
type SystemBase struct {
	World     *World
	Resource  *Resource
	Component ComponentStore

	enabled bool
}

// NewSystemBase initializes base dependencies from world
func NewSystemBase(w *World) SystemBase {
	return SystemBase{
		World:     w,
		Resource:  w.Resource,
		Component: w.Component,
		enabled:   true,
	}
}

// Enabled reports whether the system runs its Update
func (b *SystemBase) Enabled() bool {
	return b.enabled
}

// SetEnabled toggles the system without removing it from the pipeline
func (b *SystemBase) SetEnabled(v bool) {
	b.enabled = v
}

// Toggleable is implemented by systems embedding SystemBase
type Toggleable interface {
	Enabled() bool
	SetEnabled(bool)
}
