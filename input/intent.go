package input

// Intent is a sandbox command decoupled from the key that triggered it
type Intent uint8

const (
	IntentNone Intent = iota

	// System
	IntentQuit
	IntentTogglePause
	IntentStep
	IntentToggleMute

	// Scene
	IntentReload
	IntentNextScene
	IntentSpawnFloat

	// Liquid
	IntentDensityUp
	IntentDensityDown

	// View
	IntentPanLeft
	IntentPanRight
	IntentPanUp
	IntentPanDown
	IntentZoomIn
	IntentZoomOut
)
