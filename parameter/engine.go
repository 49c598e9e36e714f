package parameter

import "time"

// Fixed Step & Presentation Timing
const (
	// TickRate is the fixed physics rate in ticks per second
	TickRate = 60

	// FixedTimeStep is the physics step duration in seconds
	FixedTimeStep = 1.0 / TickRate

	// MaxStepsPerFrame caps catch-up ticks per scheduler wake (spiral-of-death guard)
	MaxStepsPerFrame = 5

	// FrameUpdateInterval is the presentation frame interval (~30 FPS in a terminal)
	FrameUpdateInterval = 33 * time.Millisecond

	// BroadcastInterval is the default websocket snapshot interval
	BroadcastInterval = 50 * time.Millisecond
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023

	// ContactBufferCapacity is the initial per-tick contact list capacity
	ContactBufferCapacity = 128
)

// System Execution Priorities within a stage (lower runs first)
const (
	PriorityGravity      = 10
	PriorityFixedSpring  = 20
	PriorityPairedSpring = 30
	PriorityBungee       = 40
	PriorityBuoyancy     = 50

	PriorityRod           = 10
	PriorityCable         = 20
	PrioritySphereContact = 30

	PriorityContactResolution = 10

	PriorityIntegrator = 10
)
