package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// TestDefaultKeyTable verifies the stock bindings
func TestDefaultKeyTable(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want Intent
	}{
		{"q quits", tcell.KeyRune, 'q', IntentQuit},
		{"esc quits", tcell.KeyEscape, 0, IntentQuit},
		{"ctrl-c quits", tcell.KeyCtrlC, 0, IntentQuit},
		{"space pauses", tcell.KeyRune, ' ', IntentTogglePause},
		{"up raises density", tcell.KeyUp, 0, IntentDensityUp},
		{"down lowers density", tcell.KeyDown, 0, IntentDensityDown},
		{"b spawns", tcell.KeyRune, 'b', IntentSpawnFloat},
		{"unbound rune", tcell.KeyRune, 'z', IntentNone},
		{"unbound key", tcell.KeyF5, 0, IntentNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kt.Resolve(tt.key, tt.r); got != tt.want {
				t.Errorf("Expected intent %d, got %d", tt.want, got)
			}
		})
	}
}

// TestLoadKeyConfigMerge verifies overrides rebind and "none" unbinds
func TestLoadKeyConfigMerge(t *testing.T) {
	data := []byte(`
[runes]
x = "spawn_float"
space = "none"

[keys]
pgup = "zoom_in"
Up = "pan_up"
`)
	override, err := LoadKeyConfig(data)
	if err != nil {
		t.Fatalf("LoadKeyConfig failed: %v", err)
	}

	kt := MergeKeyTable(DefaultKeyTable(), override)

	if got := kt.Resolve(tcell.KeyRune, 'x'); got != IntentSpawnFloat {
		t.Errorf("Expected x bound to spawn, got %d", got)
	}
	if got := kt.Resolve(tcell.KeyRune, 'b'); got != IntentSpawnFloat {
		t.Errorf("Expected b to keep its default, got %d", got)
	}
	if _, ok := kt.Runes[' ']; ok {
		t.Error("Expected space to be unbound")
	}
	if got := kt.Resolve(tcell.KeyPgUp, 0); got != IntentZoomIn {
		t.Errorf("Expected pgup bound to zoom in, got %d", got)
	}
	if got := kt.Resolve(tcell.KeyUp, 0); got != IntentPanUp {
		t.Errorf("Expected up rebound to pan, got %d", got)
	}
}

// TestMergeLeavesBaseUntouched verifies merge works on a copy
func TestMergeLeavesBaseUntouched(t *testing.T) {
	base := DefaultKeyTable()
	override := &KeyTable{Runes: map[rune]Intent{'q': IntentNone}}

	MergeKeyTable(base, override)

	if got := base.Resolve(tcell.KeyRune, 'q'); got != IntentQuit {
		t.Errorf("Expected base binding to survive, got %d", got)
	}
}

// TestLoadKeyConfigRejects verifies bad keymaps fail with ErrInvalidKeymap
func TestLoadKeyConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown action", "[runes]\nx = \"explode\"\n"},
		{"multi-char rune", "[runes]\nxy = \"quit\"\n"},
		{"unknown special key", "[keys]\nf13 = \"quit\"\n"},
		{"unknown section", "[mouse]\nleft = \"quit\"\n"},
		{"malformed", "[runes\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKeyConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if errors.Cause(err) != ErrInvalidKeymap {
				t.Errorf("Expected ErrInvalidKeymap, got %v", err)
			}
		})
	}
}

// TestActionNamesResolve verifies every listed name resolves
func TestActionNamesResolve(t *testing.T) {
	names := ActionNames()
	if len(names) != len(actionRegistry) {
		t.Fatalf("Expected %d names, got %d", len(actionRegistry), len(names))
	}
	for _, name := range names {
		if _, ok := ActionIntent(name); !ok {
			t.Errorf("Expected %q to resolve", name)
		}
	}
}
