package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/core"
)

// ContactImpactPayload describes one hard contact resolution
type ContactImpactPayload struct {
	A       core.Entity `json:"a"`
	B       core.Entity `json:"b"`
	Impulse float64     `json:"impulse"`
	Point   mgl64.Vec3  `json:"point"` // Position of the first participant after resolution
}

// ResolverSaturatedPayload reports residual violation after the iteration cap
type ResolverSaturatedPayload struct {
	Contacts           int     `json:"contacts"`
	VelocityIterations int     `json:"velocity_iterations"`
	PositionIterations int     `json:"position_iterations"`
	ResidualVelocity   float64 `json:"residual_velocity"`
	ResidualDepth      float64 `json:"residual_depth"`
}

// StagePanicPayload names the system that panicked
type StagePanicPayload struct {
	System string `json:"system"`
	Error  string `json:"error"`
}

// SceneLoadedPayload describes a built scene
type SceneLoadedPayload struct {
	Name     string `json:"name"`
	Entities int    `json:"entities"`
}

// DensityChangedPayload carries the new liquid density
type DensityChangedPayload struct {
	Density float64 `json:"density"`
}
