package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	Keys map[tcell.Key]Intent

	// Printable rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default sandbox bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Intent{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyUp:     IntentDensityUp,
			tcell.KeyDown:   IntentDensityDown,
			tcell.KeyLeft:   IntentPanLeft,
			tcell.KeyRight:  IntentPanRight,
		},
		Runes: map[rune]Intent{
			'q': IntentQuit,
			' ': IntentTogglePause,
			'.': IntentStep,
			'm': IntentToggleMute,
			'r': IntentReload,
			'n': IntentNextScene,
			'b': IntentSpawnFloat,
			'h': IntentPanLeft,
			'l': IntentPanRight,
			'k': IntentPanUp,
			'j': IntentPanDown,
			'+': IntentZoomIn,
			'=': IntentZoomIn,
			'-': IntentZoomOut,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Keys:  maps.Clone(kt.Keys),
		Runes: maps.Clone(kt.Runes),
	}
}

// Lookup resolves a key event; unbound keys return IntentNone
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Intent {
	return kt.Resolve(ev.Key(), ev.Rune())
}

// Resolve maps a key and its rune; r is only consulted for tcell.KeyRune
func (kt *KeyTable) Resolve(key tcell.Key, r rune) Intent {
	if key == tcell.KeyRune {
		return kt.Runes[r]
	}
	return kt.Keys[key]
}
