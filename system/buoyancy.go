package system

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/component"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/event"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/physics"
	"github.com/lixenwraith/tether/status"
)

var zeroVec mgl64.Vec3

// BuoyancySystem lifts targets according to their submersion depth
// Liquid density is shared by all volumes and adjustable at runtime
type BuoyancySystem struct {
	engine.SystemBase

	mu      sync.Mutex
	pending float64 // Density delta queued by AdjustDensity, applied next tick

	statSubmerged *atomic.Int64
	statDensity   *status.AtomicFloat
}

func NewBuoyancySystem(world *engine.World) *BuoyancySystem {
	return &BuoyancySystem{
		SystemBase:    engine.NewSystemBase(world),
		statSubmerged: world.Resource.Status.Ints.Get("force.buoyancy_submerged"),
		statDensity:   world.Resource.Status.Floats.Get("buoyancy.density"),
	}
}

func (s *BuoyancySystem) Name() string        { return "buoyancy" }
func (s *BuoyancySystem) Stage() engine.Stage { return engine.StageForce }
func (s *BuoyancySystem) Priority() int       { return parameter.PriorityBuoyancy }

func (s *BuoyancySystem) Init() {
	s.mu.Lock()
	s.pending = 0
	s.mu.Unlock()
	s.statSubmerged.Store(0)
	s.statDensity.Set(0)
}

// AdjustDensity queues a liquid density change for every volume
// Safe to call from the input goroutine; applied at the start of the next tick
func (s *BuoyancySystem) AdjustDensity(delta float64) {
	s.mu.Lock()
	s.pending += delta
	s.mu.Unlock()
}

// Density returns the density last applied, 0 when the world has no volumes
func (s *BuoyancySystem) Density() float64 {
	return s.statDensity.Get()
}

func (s *BuoyancySystem) Update() {
	s.mu.Lock()
	delta := s.pending
	s.pending = 0
	s.mu.Unlock()

	if s.Component.Buoyancy.Count() == 0 {
		s.statDensity.Set(0)
		s.statSubmerged.Store(0)
		return
	}

	if delta != 0 {
		s.applyDensity(delta)
	}

	var submerged int64
	for _, e := range s.Component.Buoyancy.All() {
		b, ok := s.Component.Buoyancy.Get(e)
		if !ok {
			continue
		}
		s.statDensity.Set(b.LiquidDensity)
		pos, ok := s.World.Position(b.Target)
		if !ok {
			continue
		}
		f := physics.BuoyancyForce(pos.Y(), b.WaterHeight, b.MaxDepth, b.Volume, b.LiquidDensity)
		if f == zeroVec {
			continue
		}
		if addForce(s.Component, b.Target, f) {
			submerged++
		}
	}
	s.statSubmerged.Store(submerged)
}

func (s *BuoyancySystem) applyDensity(delta float64) {
	density := -1.0
	for _, e := range s.Component.Buoyancy.All() {
		s.Component.Buoyancy.Update(e, func(b *component.BuoyancyComponent) {
			b.LiquidDensity += delta
			if b.LiquidDensity < parameter.MinLiquidDensity {
				b.LiquidDensity = parameter.MinLiquidDensity
			}
			density = b.LiquidDensity
		})
	}
	if density < 0 {
		return
	}
	s.statDensity.Set(density)
	s.World.PushEvent(event.EventDensityChanged, &event.DensityChangedPayload{Density: density})
}
