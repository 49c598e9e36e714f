package system

import (
	"sync/atomic"

	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/physics"
)

// BungeeSystem applies pull-only springs; each instance is evaluated on its own
type BungeeSystem struct {
	engine.SystemBase

	statTaut *atomic.Int64
}

func NewBungeeSystem(world *engine.World) engine.System {
	return &BungeeSystem{
		SystemBase: engine.NewSystemBase(world),
		statTaut:   world.Resource.Status.Ints.Get("force.bungee_taut"),
	}
}

func (s *BungeeSystem) Name() string        { return "bungee" }
func (s *BungeeSystem) Stage() engine.Stage { return engine.StageForce }
func (s *BungeeSystem) Priority() int       { return parameter.PriorityBungee }
func (s *BungeeSystem) Init()               { s.statTaut.Store(0) }

func (s *BungeeSystem) Update() {
	var taut int64
	for _, e := range s.Component.Bungee.All() {
		bungee, ok := s.Component.Bungee.Get(e)
		if !ok {
			continue
		}
		posA, posB, ok := pairPositions(s.World, bungee.A, bungee.B)
		if !ok {
			continue
		}
		onB := physics.BungeeForce(posB, posA, bungee.SpringConstant, bungee.RestLength)
		if onB == zeroVec {
			// Slack: this instance contributes nothing, the rest still run
			continue
		}
		applyLink(s.Component, bungee.A, bungee.B, onB, bungee.Mode)
		taut++
	}
	s.statTaut.Store(taut)
}
