package stream

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/render"
)

// Message is the envelope for every frame sent to clients
type Message struct {
	Type string `json:"type"` // "snapshot" or an event name
	Tick int64  `json:"tick"`
	Data any    `json:"data"`
}

// Snapshot is a read-only copy of world state for remote viewers
type Snapshot struct {
	Scene      string          `json:"scene"`
	Tick       int64           `json:"tick"`
	Time       float64         `json:"time"` // Simulated seconds
	Particles  []ParticleState `json:"particles"`
	Links      []LinkState     `json:"links"`
	Water      []WaterState    `json:"water"`
	Resolution ResolutionState `json:"resolution"`
}

// ParticleState is one node; anchors have InverseMass 0
type ParticleState struct {
	ID          core.Entity `json:"id"`
	Position    mgl64.Vec3  `json:"position"`
	Velocity    mgl64.Vec3  `json:"velocity"`
	InverseMass float64     `json:"inverse_mass"`
	Radius      float64     `json:"radius,omitempty"`
}

// LinkState is one debug line
type LinkState struct {
	ID     core.Entity `json:"id"`
	Kind   string      `json:"kind"`
	From   mgl64.Vec3  `json:"from"`
	To     mgl64.Vec3  `json:"to"`
	Stress float64     `json:"stress"`
	Color  string      `json:"color"`
}

// WaterState is one buoyant volume surface
type WaterState struct {
	ID       core.Entity `json:"id"`
	Height   float64     `json:"height"`
	MaxDepth float64     `json:"max_depth"`
	Density  float64     `json:"density"`
}

// ResolutionState summarizes the last resolver pass
type ResolutionState struct {
	Contacts           int     `json:"contacts"`
	VelocityIterations int     `json:"velocity_iterations"`
	PositionIterations int     `json:"position_iterations"`
	Converged          bool    `json:"converged"`
	ResidualDepth      float64 `json:"residual_depth"`
}

// Capture copies the world into a Snapshot; caller holds the world lock
func Capture(w *engine.World, scene string) Snapshot {
	c := &w.Component
	time := w.Resource.Time
	last := w.Resource.Contacts.Last

	snap := Snapshot{
		Scene:     scene,
		Tick:      time.Tick,
		Time:      float64(time.Tick) * time.Step,
		Particles: []ParticleState{},
		Links:     []LinkState{},
		Water:     []WaterState{},
		Resolution: ResolutionState{
			Contacts:           last.Contacts,
			VelocityIterations: last.VelocityIterations,
			PositionIterations: last.PositionIterations,
			Converged:          last.Converged,
			ResidualDepth:      last.ResidualDepth,
		},
	}

	entities := c.Transform.All()
	slices.Sort(entities)
	for _, e := range entities {
		// Generator proxies are not nodes
		if c.FixedSpring.Has(e) || c.Buoyancy.Has(e) {
			continue
		}
		t, _ := c.Transform.Get(e)
		ps := ParticleState{ID: e, Position: t.Position}
		if p, ok := c.Particle.Get(e); ok {
			ps.Velocity = p.Velocity
			ps.InverseMass = p.InverseMass
		}
		if s, ok := c.Sphere.Get(e); ok {
			ps.Radius = s.Radius
		}
		snap.Particles = append(snap.Particles, ps)
	}

	for _, l := range render.CollectLines(w) {
		snap.Links = append(snap.Links, LinkState{
			ID:     l.Entity,
			Kind:   l.Kind.String(),
			From:   l.From,
			To:     l.To,
			Stress: l.Stress,
			Color:  l.Color.Hex(),
		})
	}

	for _, wl := range render.CollectWater(w) {
		snap.Water = append(snap.Water, WaterState{
			ID:       wl.Entity,
			Height:   wl.Height,
			MaxDepth: wl.MaxDepth,
			Density:  wl.Density,
		})
	}
	return snap
}
