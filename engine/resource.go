package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/event"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/physics"
	"github.com/lixenwraith/tether/status"
)

// Resource holds singleton simulation resources, accessed via World.Resource
type Resource struct {
	Time       *TimeResource
	Simulation *SimulationResource
	Contacts   *ContactResource
	Event      *EventQueueResource

	// Telemetry
	Status *status.Registry
}

// TimeResource wraps time data for systems, advanced by the pipeline once per fixed tick
type TimeResource struct {
	// GameTime is simulated time, advanced by DeltaTime per tick
	GameTime time.Time

	// RealTime is the wall-clock time at the start of the tick
	RealTime time.Time

	// DeltaTime is the fixed step as a duration (rounded to nanoseconds)
	DeltaTime time.Duration

	// Step is the fixed step in seconds; authoritative for physics
	Step float64

	// Tick is the number of completed ticks
	Tick int64
}

// Advance modifies TimeResource fields in-place for the next tick
// Must be called under world lock
func (tr *TimeResource) Advance(step float64, realTime time.Time) {
	tr.Step = step
	tr.DeltaTime = time.Duration(step * float64(time.Second))
	tr.GameTime = tr.GameTime.Add(tr.DeltaTime)
	tr.RealTime = realTime
	tr.Tick++
}

// SimulationResource holds world-level physics settings
type SimulationResource struct {
	Gravity        mgl64.Vec3
	GravityEnabled bool

	// Iterations caps each resolver loop; 0 = 2 x contact count
	Iterations         int
	VelocityEpsilon    float64
	PenetrationEpsilon float64

	SphereRestitution float64
	ImpactThreshold   float64
}

// DefaultSimulation returns the standard earth-gravity setup
func DefaultSimulation() *SimulationResource {
	return &SimulationResource{
		Gravity:            mgl64.Vec3{0, -parameter.GravityFloat, 0},
		GravityEnabled:     true,
		Iterations:         parameter.ResolverIterations,
		VelocityEpsilon:    parameter.VelocityEpsilon,
		PenetrationEpsilon: parameter.PenetrationEpsilon,
		SphereRestitution:  parameter.SphereRestitution,
		ImpactThreshold:    parameter.ImpactEventThreshold,
	}
}

// ContactResource holds the transient per-tick contact list and the last resolver report
type ContactResource struct {
	Buffer *physics.ContactBuffer

	// Last is the most recent resolution; Impulses is not retained
	Last physics.Resolution
}

// EventQueueResource wraps the event queue for systems access
type EventQueueResource struct {
	Queue *event.EventQueue
}

func newResource() *Resource {
	return &Resource{
		Time:       &TimeResource{},
		Simulation: DefaultSimulation(),
		Contacts:   &ContactResource{Buffer: physics.NewContactBuffer(parameter.ContactBufferCapacity)},
		Event:      &EventQueueResource{Queue: event.NewEventQueue()},
		Status:     status.NewRegistry(),
	}
}
