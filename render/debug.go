package render

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/vmath"
)

// LinkKind identifies the generator a debug line was collected from
type LinkKind uint8

const (
	LinkFixedSpring LinkKind = iota
	LinkPairedSpring
	LinkBungee
	LinkRod
	LinkCable
)

var linkKindNames = [...]string{"fixed_spring", "paired_spring", "bungee", "rod", "cable"}

func (k LinkKind) String() string {
	if int(k) < len(linkKindNames) {
		return linkKindNames[k]
	}
	return "unknown"
}

// Line is one link drawn between two world positions
type Line struct {
	Entity core.Entity // Generator entity
	Kind   LinkKind
	From   mgl64.Vec3
	To     mgl64.Vec3
	Stress float64 // [0, 1], 0 at rest
	Color  colorful.Color
}

// WaterLine marks the liquid surface of one buoyant volume
type WaterLine struct {
	Entity   core.Entity
	Height   float64
	Center   mgl64.Vec3 // Volume proxy position
	MaxDepth float64
	Density  float64
}

var (
	stressLow  = colorful.Color{R: 0, G: 0.85, B: 0.25}
	stressHigh = colorful.Color{R: 0.95, G: 0.1, B: 0.1}
)

// Stress maps a length error to [0, 1): 1 - 1/(1+|x|^StressSoftening)
func Stress(extension float64) float64 {
	x := math.Abs(extension)
	if x == 0 || math.IsNaN(x) {
		return 0
	}
	return 1 - 1/(1+math.Pow(x, parameter.StressSoftening))
}

// StressColor blends green to red in Lab space
func StressColor(stress float64) colorful.Color {
	return stressLow.BlendLab(stressHigh, vmath.Clamp01(stress)).Clamped()
}

// CollectLines returns every link whose endpoints both have positions, ordered by generator entity
// Read-only; caller holds the world lock while a scheduler is running
func CollectLines(w *engine.World) []Line {
	c := &w.Component
	var lines []Line

	add := func(e core.Entity, kind LinkKind, from, to mgl64.Vec3, extension float64) {
		stress := Stress(extension)
		lines = append(lines, Line{
			Entity: e,
			Kind:   kind,
			From:   from,
			To:     to,
			Stress: stress,
			Color:  StressColor(stress),
		})
	}

	for _, e := range sorted(c.FixedSpring.All()) {
		fs, ok := c.FixedSpring.Get(e)
		if !ok {
			continue
		}
		anchor, okA := w.Position(e)
		pos, okB := w.Position(fs.Target)
		if !okA || !okB {
			continue
		}
		add(e, LinkFixedSpring, anchor, pos, vmath.V3FDistance(anchor, pos)-fs.RestLength)
	}

	for _, e := range sorted(c.PairedSpring.All()) {
		ps, ok := c.PairedSpring.Get(e)
		if !ok {
			continue
		}
		if a, b, ok := endpoints(w, ps.A, ps.B); ok {
			add(e, LinkPairedSpring, a, b, vmath.V3FDistance(a, b)-ps.RestLength)
		}
	}

	for _, e := range sorted(c.Bungee.All()) {
		bg, ok := c.Bungee.Get(e)
		if !ok {
			continue
		}
		if a, b, ok := endpoints(w, bg.A, bg.B); ok {
			add(e, LinkBungee, a, b, max(0, vmath.V3FDistance(a, b)-bg.RestLength))
		}
	}

	for _, e := range sorted(c.Rod.All()) {
		rod, ok := c.Rod.Get(e)
		if !ok {
			continue
		}
		if a, b, ok := endpoints(w, rod.A, rod.B); ok {
			add(e, LinkRod, a, b, vmath.V3FDistance(a, b)-rod.Length)
		}
	}

	for _, e := range sorted(c.Cable.All()) {
		cable, ok := c.Cable.Get(e)
		if !ok {
			continue
		}
		if a, b, ok := endpoints(w, cable.A, cable.B); ok {
			add(e, LinkCable, a, b, max(0, vmath.V3FDistance(a, b)-cable.MaxLength))
		}
	}

	return lines
}

// CollectWater returns the surface of every buoyant volume
func CollectWater(w *engine.World) []WaterLine {
	c := &w.Component
	var out []WaterLine
	for _, e := range sorted(c.Buoyancy.All()) {
		b, ok := c.Buoyancy.Get(e)
		if !ok {
			continue
		}
		center, _ := w.Position(e)
		out = append(out, WaterLine{
			Entity:   e,
			Height:   b.WaterHeight,
			Center:   center,
			MaxDepth: b.MaxDepth,
			Density:  b.LiquidDensity,
		})
	}
	return out
}

func endpoints(w *engine.World, a, b core.Entity) (mgl64.Vec3, mgl64.Vec3, bool) {
	pa, okA := w.Position(a)
	pb, okB := w.Position(b)
	return pa, pb, okA && okB
}

func sorted(entities []core.Entity) []core.Entity {
	slices.Sort(entities)
	return entities
}
