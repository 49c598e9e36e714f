package status

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

// TestMetricMapCachedPointer verifies Get returns a stable pointer per key
func TestMetricMapCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("physics.contacts")
	b := r.Ints.Get("physics.contacts")
	if a != b {
		t.Error("Expected same pointer for same key")
	}
	a.Store(7)
	if b.Load() != 7 {
		t.Errorf("Expected 7, got %d", b.Load())
	}
}

// TestAtomicFloatAddMax verifies concurrent accumulation and max tracking
func TestAtomicFloatAddMax(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if f.Get() != 400 {
		t.Errorf("Expected 400, got %g", f.Get())
	}

	var m AtomicFloat
	m.Max(3)
	m.Max(1)
	if m.Get() != 3 {
		t.Errorf("Expected max 3, got %g", m.Get())
	}
}

// TestSnapshot verifies every metric type appears in the snapshot
func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get("engine.paused").Store(true)
	r.Ints.Get("engine.ticks").Store(42)
	r.Floats.Get("physics.residual_depth").Set(0.25)
	r.Strings.Get("scene.name").Store("chain")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("Expected 4 metrics, got %d", len(snap))
	}
	if snap["engine.paused"] != true || snap["engine.ticks"] != int64(42) ||
		snap["physics.residual_depth"] != 0.25 || snap["scene.name"] != "chain" {
		t.Errorf("Unexpected snapshot %v", snap)
	}
}

// TestAtomicStringTruncates verifies the length cap never splits a rune
func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if got := s.Load(); got != "" {
		t.Errorf("Expected empty zero value, got %q", got)
	}

	long := strings.Repeat("a", maxStringBytes-1) + "éé"
	s.Store(long)
	got := s.Load()
	if got != strings.Repeat("a", maxStringBytes-1) {
		t.Errorf("Expected cut before the split rune, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Expected valid UTF-8, got %q", got)
	}
}

// TestMetricMapKeysSorted verifies ordered iteration
func TestMetricMapKeysSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	m.Get("b")
	m.Get("a")
	m.Get("c")
	m.Get("a")

	keys := m.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Expected [a b c], got %v", keys)
	}
	if m.Count() != 3 {
		t.Errorf("Expected 3 metrics, got %d", m.Count())
	}
}
