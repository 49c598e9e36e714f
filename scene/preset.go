package scene

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// ErrUnknownPreset is returned by Preset for names not in PresetNames
var ErrUnknownPreset = errors.New("unknown preset")

// presetSeed keeps randomized presets reproducible across runs
const presetSeed = 7

var presets = []struct {
	name  string
	build func() *Scene
}{
	{"chain", chainPreset},
	{"springs", springsPreset},
	{"spheres", spheresPreset},
	{"bungees", bungeesPreset},
	{"buoyancy", buoyancyPreset},
	{"cable", cablePreset},
	{"cable-rod", cableRodPreset},
	{"lanterns", lanternsPreset},
}

// PresetNames lists built-in scenes in cycling order
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}

// Preset returns a fresh copy of a built-in scene
func Preset(name string) (*Scene, error) {
	for _, p := range presets {
		if p.name == name {
			return p.build(), nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownPreset, "%q", name)
}

// NextPreset returns the preset after name, wrapping around; unknown names start over
func NextPreset(name string) string {
	for i, p := range presets {
		if p.name == name {
			return presets[(i+1)%len(presets)].name
		}
	}
	return presets[0].name
}

// chainPreset hangs a horizontal rod chain from a single anchor
func chainPreset() *Scene {
	const (
		links   = 8
		spacing = 2.0
	)
	s := &Scene{
		Name:    "chain",
		Anchors: []Anchor{{Name: "hook", Position: [3]float64{0, 20, 0}}},
	}
	prev := "hook"
	for i := 1; i <= links; i++ {
		name := fmt.Sprintf("link%d", i)
		s.Particles = append(s.Particles, Particle{
			Name:     name,
			Position: [3]float64{float64(i) * spacing, 20, 0},
			Mass:     1,
		})
		s.Rods = append(s.Rods, Rod{A: prev, B: name, Length: spacing})
		prev = name
	}
	return s
}

func springsPreset() *Scene {
	const y = 30
	return &Scene{
		Name: "springs",
		Particles: []Particle{
			{Name: "a", Position: [3]float64{-2.5, y - 5, -3}, Mass: 1},
			{Name: "b", Position: [3]float64{2.5, y - 5, -1}, Mass: 1},
			{Name: "c", Position: [3]float64{-7.5, y - 7.5, 1}, Mass: 1},
			{Name: "d", Position: [3]float64{7.5, y - 7.5, 3}, Mass: 1},
		},
		FixedSprings: []FixedSpring{
			{Position: [3]float64{-2.5, y, 3}, Target: "a", K: 8, Rest: 2},
			{Position: [3]float64{2.5, y, 1}, Target: "b", K: 5, Rest: 5},
			{Position: [3]float64{-7.5, y - 10, -1}, Target: "c", K: 7, Rest: 7},
			{Position: [3]float64{7.5, y - 10, -3}, Target: "d", K: 5, Rest: 0},
		},
		PairedSprings: []PairedSpring{
			{A: "a", B: "b", K: 100, Rest: 5},
			{A: "a", B: "c", K: 100, Rest: 5.2},
			{A: "b", B: "d", K: 100, Rest: 5.2},
			{A: "c", B: "d", K: 100, Rest: 10},
		},
	}
}

// spheresPreset scatters colliding balls above a large immovable floor sphere
func spheresPreset() *Scene {
	rng := rand.New(rand.NewPCG(presetSeed, presetSeed))
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }

	s := &Scene{
		Name:    "spheres",
		Anchors: []Anchor{{Name: "floor", Position: [3]float64{0, -40, 0}, Radius: 40}},
	}
	for i := 0; i < 30; i++ {
		s.Particles = append(s.Particles, Particle{
			Name:     fmt.Sprintf("ball%d", i),
			Position: [3]float64{between(-15, 15), between(6, 34), between(-15, 15)},
			Velocity: [3]float64{between(-5, 5), between(-5, 5), between(-5, 5)},
			Mass:     1,
			Radius:   1,
		})
	}
	return s
}

func bungeesPreset() *Scene {
	const y = 30
	return &Scene{
		Name: "bungees",
		Particles: []Particle{
			{Name: "hub", Position: [3]float64{-2.5, y, -3}, Mass: 1000, Radius: 1, Ghost: true},
			{Name: "left", Position: [3]float64{-3, y - 2, -3}, Mass: 2, Radius: 1},
			{Name: "right", Position: [3]float64{3, y - 2, -3}, Mass: 2, Radius: 1},
		},
		Bungees: []PairedSpring{
			{A: "hub", B: "left", K: 2, Rest: 1},
			{A: "hub", B: "right", K: 3, Rest: 0.5},
		},
	}
}

func buoyancyPreset() *Scene {
	return &Scene{
		Name:      "buoyancy",
		Particles: []Particle{{Name: "float", Position: [3]float64{0, 25, 0}, Mass: 1}},
		Buoyancy: []Buoyancy{{
			Target:      "float",
			Position:    [3]float64{0, 30, 0},
			MaxDepth:    10,
			Volume:      20,
			WaterHeight: 30,
			Density:     100,
		}},
	}
}

func cablePreset() *Scene {
	return &Scene{
		Name:      "cable",
		Anchors:   []Anchor{{Name: "top", Position: [3]float64{0, 40, 0}}},
		Particles: []Particle{{Name: "bob", Position: [3]float64{0, 30, 0}, Mass: 1}},
		Cables:    []Cable{{A: "top", B: "bob", MaxLength: 20}},
	}
}

// cableRodPreset hangs a rod square by one corner
func cableRodPreset() *Scene {
	const side = 14.14
	return &Scene{
		Name:    "cable-rod",
		Anchors: []Anchor{{Name: "top", Position: [3]float64{0, 40, 0}}},
		Particles: []Particle{
			{Name: "p1", Position: [3]float64{-10, 30, 0}, Mass: 1},
			{Name: "p2", Position: [3]float64{-20, 20, 0}, Mass: 1},
			{Name: "p3", Position: [3]float64{-10, 10, 0}, Mass: 1},
			{Name: "p4", Position: [3]float64{0, 20, 0}, Mass: 1},
		},
		Cables: []Cable{{A: "top", B: "p1", MaxLength: 20}},
		Rods: []Rod{
			{A: "p1", B: "p2", Length: side},
			{A: "p2", B: "p3", Length: side},
			{A: "p3", B: "p4", Length: side},
			{A: "p4", B: "p1", Length: side},
		},
	}
}

// lanternsPreset suspends four lanterns from three hooks each
func lanternsPreset() *Scene {
	type lantern struct {
		pos   [3]float64
		hooks [3][3]float64
	}
	lanterns := []lantern{
		{[3]float64{22, 14, 48.5}, [3][3]float64{{23, 15, 48}, {22, 13.5, 50.5}, {21, 12.5, 47.5}}},
		{[3]float64{-14.5, 14, 49}, [3][3]float64{{-13.5, 13, 48}, {-15, 15, 49}, {-14.5, 13, 50}}},
		{[3]float64{22, 14, -62}, [3][3]float64{{21, 13, -62}, {22, 14.5, -63}, {23, 14, -61.5}}},
		{[3]float64{-14.5, 14, -61.5}, [3][3]float64{{-15.5, 14, -62.5}, {-14.75, 13.5, -60.5}, {-14, 15, -60.5}}},
	}

	s := &Scene{Name: "lanterns"}
	for i, l := range lanterns {
		name := fmt.Sprintf("lantern%d", i+1)
		s.Particles = append(s.Particles, Particle{Name: name, Position: l.pos, Mass: 1, Ghost: true})
		for _, h := range l.hooks {
			s.FixedSprings = append(s.FixedSprings, FixedSpring{Position: h, Target: name, K: 5, Rest: 1})
		}
	}
	return s
}
