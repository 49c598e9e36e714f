package event

import "strings"

var (
	typeToName = map[EventType]string{
		EventNone:              "None",
		EventContactImpact:     "ContactImpact",
		EventResolverSaturated: "ResolverSaturated",
		EventStagePanic:        "StagePanic",
		EventSceneLoaded:       "SceneLoaded",
		EventDensityChanged:    "DensityChanged",
	}
	nameToType = func() map[string]EventType {
		m := make(map[string]EventType, len(typeToName))
		for t, n := range typeToName {
			m[strings.ToLower(n)] = t
		}
		return m
	}()
)

// Name returns the string name for an EventType, "Unknown" if unregistered
func Name(et EventType) string {
	if n, ok := typeToName[et]; ok {
		return n
	}
	return "Unknown"
}

// Lookup returns the EventType for a name, case-insensitive
func Lookup(name string) (EventType, bool) {
	et, ok := nameToType[strings.ToLower(name)]
	return et, ok
}
