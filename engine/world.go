package engine

import (
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/event"
)

// World contains all entities and their components using typed stores
// It is the entity directory: handles are plain core.Entity values and a
// destroyed handle fails every capability lookup
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	Resource  *Resource
	Component ComponentStore
	stores    []AnyStore

	updateMutex sync.Mutex
}

// NewWorld creates a world with all component stores and default resources
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Resource:     newResource(),
		Component:    newComponentStore(),
	}
	w.stores = w.Component.stores()
	return w
}

// CreateEntity allocates a new live entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.alive[id] = struct{}{}
	return id
}

// reserveEntityID allocates an ID that is not yet alive
func (w *World) reserveEntityID() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

func (w *World) markAlive(e core.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alive[e] = struct{}{}
}

// DestroyEntity removes an entity and all its components
// Instances referencing it by handle become per-tick no-ops
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	delete(w.alive, e)
	w.mu.Unlock()

	for _, s := range w.stores {
		s.Remove(e)
	}
}

// Alive reports whether e was created and not destroyed
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// Entities returns live entities in ascending ID order
func (w *World) Entities() []core.Entity {
	w.mu.RLock()
	out := make([]core.Entity, 0, len(w.alive))
	for e := range w.alive {
		out = append(out, e)
	}
	w.mu.RUnlock()
	slices.Sort(out)
	return out
}

// Clear removes all entities and components
// IDs keep increasing so handles from before the clear never alias new entities
func (w *World) Clear() {
	w.mu.Lock()
	clear(w.alive)
	w.mu.Unlock()

	for _, s := range w.stores {
		s.Clear()
	}
	w.Resource.Contacts.Buffer.Reset()
}

// Position returns the transform position of e
func (w *World) Position(e core.Entity) (mgl64.Vec3, bool) {
	t, ok := w.Component.Transform.Get(e)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return t.Position, true
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// TryLock attempts to acquire the update mutex without blocking
func (w *World) TryLock() bool {
	return w.updateMutex.TryLock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}

// PushEvent emits an event stamped with the current tick
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Resource.Event.Queue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Tick:    w.Resource.Time.Tick,
	})
}
