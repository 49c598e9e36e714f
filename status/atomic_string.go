package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// maxStringBytes caps stored labels such as scene names
const maxStringBytes = 48

// AtomicString holds a short label; the zero value reads as ""
type AtomicString struct {
	v atomic.Value
}

// Store sets the label, cut at a rune boundary within maxStringBytes
func (s *AtomicString) Store(val string) {
	if len(val) > maxStringBytes {
		cut := maxStringBytes
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.v.Store(val)
}

func (s *AtomicString) Load() string {
	val, _ := s.v.Load().(string)
	return val
}
