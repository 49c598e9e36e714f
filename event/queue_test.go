package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/tether/parameter"
)

// TestQueueFIFO verifies events are consumed in push order and the queue empties
func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 5; i++ {
		q.Push(GameEvent{Type: EventContactImpact, Tick: int64(i)})
	}
	if q.Len() != 5 {
		t.Fatalf("Expected 5 pending, got %d", q.Len())
	}
	got := q.Consume()
	if len(got) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(got))
	}
	for i, ev := range got {
		if ev.Tick != int64(i) {
			t.Errorf("Expected tick %d at %d, got %d", i, i, ev.Tick)
		}
	}
	if q.Consume() != nil {
		t.Error("Expected nil on empty queue")
	}
}

// TestQueueOverflow verifies the oldest events are overwritten when full
func TestQueueOverflow(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventContactImpact, Tick: int64(i)})
	}
	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(got))
	}
	if got[0].Tick != 10 {
		t.Errorf("Expected oldest surviving tick 10, got %d", got[0].Tick)
	}
	if q.Dropped() != 10 {
		t.Errorf("Expected 10 dropped, got %d", q.Dropped())
	}
}

// TestQueueConcurrentPush verifies multiple producers lose nothing below capacity
func TestQueueConcurrentPush(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(GameEvent{Type: EventSceneLoaded})
			}
		}()
	}
	wg.Wait()
	if got := len(q.Consume()); got != 400 {
		t.Errorf("Expected 400 events, got %d", got)
	}
}

// TestRouterDispatch verifies routing by type and registration order
func TestRouterDispatch(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter[*[]string](q)

	r.Register(HandlerFunc[*[]string]{
		Types: []EventType{EventContactImpact},
		Fn:    func(log *[]string, ev GameEvent) { *log = append(*log, "first:"+ev.Type.String()) },
	})
	r.Register(HandlerFunc[*[]string]{
		Types: []EventType{EventContactImpact, EventSceneLoaded},
		Fn:    func(log *[]string, ev GameEvent) { *log = append(*log, "second:"+ev.Type.String()) },
	})

	q.Push(GameEvent{Type: EventContactImpact})
	q.Push(GameEvent{Type: EventSceneLoaded})
	q.Push(GameEvent{Type: EventResolverSaturated})

	var log []string
	if n := r.DispatchAll(&log); n != 3 {
		t.Errorf("Expected 3 consumed, got %d", n)
	}
	expected := []string{"first:ContactImpact", "second:ContactImpact", "second:SceneLoaded"}
	if len(log) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, log)
	}
	for i := range expected {
		if log[i] != expected[i] {
			t.Errorf("Expected %q at %d, got %q", expected[i], i, log[i])
		}
	}
	if r.HandlerCount(EventResolverSaturated) != 0 {
		t.Error("Expected no handlers for ResolverSaturated")
	}
}

// TestEventNames verifies name lookup round trip
func TestEventNames(t *testing.T) {
	et, ok := Lookup("contactimpact")
	if !ok || et != EventContactImpact {
		t.Errorf("Expected EventContactImpact, got %v %v", et, ok)
	}
	if Name(EventType(999)) != "Unknown" {
		t.Error("Expected Unknown for unregistered type")
	}
}
