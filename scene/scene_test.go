package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/lixenwraith/tether/component"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/event"
)

const cableScene = `
name = "test-cable"

[[anchor]]
name = "top"
position = [0.0, 40.0, 0.0]

[[particle]]
name = "bob"
position = [0.0, 30.0, 0.0]
mass = 2.0

[[cable]]
a = "top"
b = "bob"
max_length = 20.0
`

// TestParseAndBuild verifies a TOML scene becomes wired entities
func TestParseAndBuild(t *testing.T) {
	s, err := Parse([]byte(cableScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	w := engine.NewWorld()
	nodes, err := Build(w, s, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(nodes))
	}
	if w.EntityCount() != 3 {
		t.Errorf("Expected 3 entities (2 nodes + cable), got %d", w.EntityCount())
	}

	if w.Component.Particle.Has(nodes["top"]) {
		t.Error("Expected anchor without particle")
	}
	bob, ok := w.Component.Particle.Get(nodes["bob"])
	if !ok || bob.InverseMass != 0.5 {
		t.Errorf("Expected bob inverse mass 0.5, got %+v", bob)
	}

	cables := w.Component.Cable.All()
	if len(cables) != 1 {
		t.Fatalf("Expected 1 cable, got %d", len(cables))
	}
	cable, _ := w.Component.Cable.Get(cables[0])
	if cable.A != nodes["top"] || cable.B != nodes["bob"] || cable.MaxLength != 20 {
		t.Errorf("Unexpected cable %+v", cable)
	}
	if cable.Restitution != DefaultOptions().CableRestitution {
		t.Errorf("Expected default restitution, got %v", cable.Restitution)
	}

	events := w.Resource.Event.Queue.Consume()
	if len(events) != 1 || events[0].Type != event.EventSceneLoaded {
		t.Fatalf("Expected one scene loaded event, got %d", len(events))
	}
	if p := events[0].Payload.(*event.SceneLoadedPayload); p.Name != "test-cable" || p.Entities != 3 {
		t.Errorf("Unexpected payload %+v", p)
	}
}

// TestBuildErrors verifies invalid scenes fail and leave the world empty
func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		cause error
	}{
		{
			"unknown node",
			Scene{
				Anchors: []Anchor{{Name: "a"}},
				Rods:    []Rod{{A: "a", B: "missing", Length: 1}},
			},
			ErrUnknownNode,
		},
		{
			"duplicate name",
			Scene{
				Anchors:   []Anchor{{Name: "a"}},
				Particles: []Particle{{Name: "a", Mass: 1}},
			},
			ErrDuplicateName,
		},
		{
			"empty name",
			Scene{Particles: []Particle{{Mass: 1}}},
			ErrEmptyName,
		},
		{
			"negative mass",
			Scene{Particles: []Particle{{Name: "p", Mass: -1}}},
			component.ErrInvalidMass,
		},
		{
			"zero length rod",
			Scene{
				Anchors:   []Anchor{{Name: "a"}},
				Particles: []Particle{{Name: "p", Mass: 1}},
				Rods:      []Rod{{A: "a", B: "p", Length: 0}},
			},
			component.ErrInvalidLength,
		},
		{
			"negative damping",
			Scene{Particles: []Particle{{Name: "p", Mass: 1, Damping: ptr(-3.0)}}},
			component.ErrInvalidDamping,
		},
		{
			"zero damping",
			Scene{Particles: []Particle{{Name: "p", Mass: 1, Damping: ptr(0.0)}}},
			component.ErrInvalidDamping,
		},
		{
			"damping above one",
			Scene{Particles: []Particle{{Name: "p", Mass: 1, Damping: ptr(1.5)}}},
			component.ErrInvalidDamping,
		},
		{
			"self cable",
			Scene{
				Particles: []Particle{{Name: "p", Mass: 1}},
				Cables:    []Cable{{A: "p", B: "p", MaxLength: 1}},
			},
			component.ErrSelfLink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := engine.NewWorld()
			_, err := Build(w, &tt.scene, DefaultOptions())
			if errors.Cause(err) != tt.cause {
				t.Errorf("Expected cause %v, got %v", tt.cause, err)
			}
			if w.EntityCount() != 0 {
				t.Errorf("Expected no live entities after failure, got %d", w.EntityCount())
			}
		})
	}
}

// TestParseRejectsUnknownKey verifies typos in scene files are caught
func TestParseRejectsUnknownKey(t *testing.T) {
	if _, err := Parse([]byte("[[particle]]\nname = \"p\"\nmas = 1.0\n")); err == nil {
		t.Error("Expected error for unknown key")
	}
}

// TestPresetsBuild verifies every preset constructs without error
func TestPresetsBuild(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Preset(name)
			if err != nil {
				t.Fatalf("Preset: %v", err)
			}
			w := engine.NewWorld()
			nodes, err := Build(w, s, DefaultOptions())
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(nodes) != s.NodeCount() {
				t.Errorf("Expected %d nodes, got %d", s.NodeCount(), len(nodes))
			}
		})
	}

	if _, err := Preset("nope"); errors.Cause(err) != ErrUnknownPreset {
		t.Errorf("Expected ErrUnknownPreset, got %v", err)
	}
}

// TestPresetDeterministic verifies randomized presets repeat exactly
func TestPresetDeterministic(t *testing.T) {
	a, _ := Preset("spheres")
	b, _ := Preset("spheres")
	for i := range a.Particles {
		if a.Particles[i].Position != b.Particles[i].Position {
			t.Fatalf("Expected identical positions at %d", i)
		}
	}
}

// TestNextPresetWraps verifies preset cycling
func TestNextPresetWraps(t *testing.T) {
	names := PresetNames()
	if got := NextPreset(names[len(names)-1]); got != names[0] {
		t.Errorf("Expected wrap to %s, got %s", names[0], got)
	}
	if got := NextPreset("unknown"); got != names[0] {
		t.Errorf("Expected restart at %s, got %s", names[0], got)
	}
}

// TestMarshalLoadRoundTrip verifies presets survive a file round trip
func TestMarshalLoadRoundTrip(t *testing.T) {
	s, _ := Preset("cable-rod")
	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Name != s.Name || len(back.Rods) != 4 || len(back.Cables) != 1 {
		t.Errorf("Unexpected round trip %+v", back)
	}
	if back.Particles[1].Position != s.Particles[1].Position {
		t.Errorf("Expected position %v, got %v", s.Particles[1].Position, back.Particles[1].Position)
	}
}

func ptr(v float64) *float64 { return &v }
