package input

import "sort"

// actionRegistry maps canonical action names to intents
// Used by the keymap loader to resolve TOML action strings
var actionRegistry = map[string]Intent{
	// Unbind sentinel
	"none": IntentNone,

	"quit":         IntentQuit,
	"pause":        IntentTogglePause,
	"step":         IntentStep,
	"toggle_mute":  IntentToggleMute,
	"reload":       IntentReload,
	"next_scene":   IntentNextScene,
	"spawn_float":  IntentSpawnFloat,
	"density_up":   IntentDensityUp,
	"density_down": IntentDensityDown,
	"pan_left":     IntentPanLeft,
	"pan_right":    IntentPanRight,
	"pan_up":       IntentPanUp,
	"pan_down":     IntentPanDown,
	"zoom_in":      IntentZoomIn,
	"zoom_out":     IntentZoomOut,
}

// ActionIntent resolves a canonical action name
func ActionIntent(name string) (Intent, bool) {
	in, ok := actionRegistry[name]
	return in, ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
