package input

import (
	"bytes"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// ErrInvalidKeymap wraps every keymap load failure
var ErrInvalidKeymap = errors.New("invalid keymap")

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// Special key names accepted in the [keys] section
var specialKeys = map[string]tcell.Key{
	"esc":    tcell.KeyEscape,
	"enter":  tcell.KeyEnter,
	"tab":    tcell.KeyTab,
	"up":     tcell.KeyUp,
	"down":   tcell.KeyDown,
	"left":   tcell.KeyLeft,
	"right":  tcell.KeyRight,
	"pgup":   tcell.KeyPgUp,
	"pgdn":   tcell.KeyPgDn,
	"home":   tcell.KeyHome,
	"end":    tcell.KeyEnd,
	"ctrl_c": tcell.KeyCtrlC,
	"ctrl_q": tcell.KeyCtrlQ,
	"ctrl_r": tcell.KeyCtrlR,
}

// keymapFile is the on-disk layout
//
//	[runes]
//	x = "spawn_float"
//	space = "none"
//
//	[keys]
//	pgup = "zoom_in"
type keymapFile struct {
	Runes map[string]string `toml:"runes"`
	Keys  map[string]string `toml:"keys"`
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Only keys present in the data are populated
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var f keymapFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrapf(ErrInvalidKeymap, "parse: %v", err)
	}

	kt := &KeyTable{}
	if f.Runes != nil {
		kt.Runes = make(map[rune]Intent, len(f.Runes))
		for key, action := range f.Runes {
			r, err := resolveRune(key)
			if err != nil {
				return nil, err
			}
			in, err := resolveAction(action)
			if err != nil {
				return nil, errors.Wrapf(err, "[runes] %s", key)
			}
			kt.Runes[r] = in
		}
	}
	if f.Keys != nil {
		kt.Keys = make(map[tcell.Key]Intent, len(f.Keys))
		for name, action := range f.Keys {
			k, ok := specialKeys[strings.ToLower(name)]
			if !ok {
				return nil, errors.Wrapf(ErrInvalidKeymap, "unknown special key %q", name)
			}
			in, err := resolveAction(action)
			if err != nil {
				return nil, errors.Wrapf(err, "[keys] %s", name)
			}
			kt.Keys[k] = in
		}
	}
	return kt, nil
}

// resolveRune accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, errors.Wrapf(ErrInvalidKeymap, "invalid rune key %q", s)
}

func resolveAction(name string) (Intent, error) {
	in, ok := ActionIntent(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return IntentNone, errors.Wrapf(ErrInvalidKeymap, "unknown action %q", name)
	}
	return in, nil
}

// MergeKeyTable returns base overridden by the non-nil maps of override
// Entries bound to "none" remove the key
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	mergeMap(result.Runes, override.Runes)
	mergeMap(result.Keys, override.Keys)
	return result
}

func mergeMap[K comparable](base, override map[K]Intent) {
	for k, v := range override {
		if v == IntentNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
