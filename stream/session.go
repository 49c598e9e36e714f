package stream

import (
	"sync"

	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/scene"
)

// Simulation is what the router serves
type Simulation interface {
	Snapshot() Snapshot
	Stats() map[string]any
	LoadScene(name string) error
	Scenes() []string
}

// Session binds a world to preset scenes
// All world access goes through the world update lock so it interleaves with scheduler ticks
type Session struct {
	world *engine.World
	opts  scene.Options

	onLoad func()

	mu    sync.RWMutex
	scene string
}

// NewSession wraps w; no scene is loaded until LoadScene
func NewSession(w *engine.World, opts scene.Options) *Session {
	return &Session{world: w, opts: opts}
}

// OnLoad sets a hook run under the world lock after every successful load
// Used to reset per-scene system state such as queued density changes
func (s *Session) OnLoad(fn func()) {
	s.onLoad = fn
}

// LoadScene replaces the world contents with a preset
func (s *Session) LoadScene(name string) error {
	sc, err := scene.Preset(name)
	if err != nil {
		return err
	}
	return s.Load(sc)
}

// Load replaces the world contents with sc
func (s *Session) Load(sc *scene.Scene) error {
	var err error
	s.world.RunSafe(func() {
		if _, err = scene.Replace(s.world, sc, s.opts); err != nil {
			return
		}
		s.world.Resource.Status.Strings.Get("scene.name").Store(sc.Name)
		if s.onLoad != nil {
			s.onLoad()
		}
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.scene = sc.Name
	s.mu.Unlock()
	return nil
}

// Scene returns the loaded scene name
func (s *Session) Scene() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scene
}

// Scenes lists loadable presets
func (s *Session) Scenes() []string {
	return scene.PresetNames()
}

// Snapshot captures the world under its lock
func (s *Session) Snapshot() Snapshot {
	name := s.Scene()
	var snap Snapshot
	s.world.RunSafe(func() {
		snap = Capture(s.world, name)
	})
	return snap
}

// Stats returns the status registry contents; metrics are atomics and need no lock
func (s *Session) Stats() map[string]any {
	return s.world.Resource.Status.Snapshot()
}
