package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventNone is the zero value and never emitted
	EventNone EventType = iota

	// === Resolver Event ===

	// EventContactImpact signals a contact resolved with an impulse above the impact threshold
	// Trigger: ContactResolutionSystem | Consumer: audio cue, stream | Payload: *ContactImpactPayload
	EventContactImpact

	// EventResolverSaturated signals the resolver hit its iteration cap with violation left
	// Trigger: ContactResolutionSystem | Consumer: stream, diagnostics | Payload: *ResolverSaturatedPayload
	EventResolverSaturated

	// === Engine Event ===

	// EventStagePanic signals a system panicked during its update and was skipped for the tick
	// Trigger: Pipeline | Payload: *StagePanicPayload
	EventStagePanic

	// === Scene Event ===

	// EventSceneLoaded signals a scene was (re)built into the world
	// Trigger: scene bootstrap, stream POST /scene | Payload: *SceneLoadedPayload
	EventSceneLoaded

	// EventDensityChanged signals buoyancy liquid density adjustment
	// Trigger: BuoyancySystem.AdjustDensity | Payload: *DensityChangedPayload
	EventDensityChanged
)

// GameEvent represents a single simulation event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    int64
}

// String returns the registered name of the event type
func (t EventType) String() string {
	return Name(t)
}
