// Package scene describes particle setups as data and builds them into a world
package scene

import (
	"bytes"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Scene is a named set of nodes and the generators linking them
// Nodes (anchors and particles) share one namespace; links reference them by name
type Scene struct {
	Name          string         `toml:"name"`
	Anchors       []Anchor       `toml:"anchor"`
	Particles     []Particle     `toml:"particle"`
	FixedSprings  []FixedSpring  `toml:"fixed_spring"`
	PairedSprings []PairedSpring `toml:"paired_spring"`
	Bungees       []PairedSpring `toml:"bungee"`
	Buoyancy      []Buoyancy     `toml:"buoyancy"`
	Rods          []Rod          `toml:"rod"`
	Cables        []Cable        `toml:"cable"`
}

// Anchor is a fixed point: a transform without a particle
type Anchor struct {
	Name     string     `toml:"name"`
	Position [3]float64 `toml:"position"`
	Radius   float64    `toml:"radius,omitempty"` // Immovable collider when > 0
}

// Particle is a movable point mass
type Particle struct {
	Name     string     `toml:"name"`
	Position [3]float64 `toml:"position"`
	Velocity [3]float64 `toml:"velocity,omitempty"`
	Mass     float64    `toml:"mass"`
	Damping  *float64   `toml:"damping,omitempty"` // Defaults to Options.Damping
	Radius   float64    `toml:"radius,omitempty"`  // Sphere collider when > 0
	Ghost    bool       `toml:"ghost,omitempty"`   // Excluded from sphere contacts
}

// FixedSpring pulls Target toward a fixed world position
type FixedSpring struct {
	Position [3]float64 `toml:"position"`
	Target   string     `toml:"target"`
	K        float64    `toml:"k"`
	Rest     float64    `toml:"rest"`
}

// PairedSpring links two nodes with a spring or bungee
type PairedSpring struct {
	A    string  `toml:"a"`
	B    string  `toml:"b"`
	K    float64 `toml:"k"`
	Rest float64 `toml:"rest"`
	Mode string  `toml:"mode,omitempty"` // "one-sided" or "symmetric"
}

// Buoyancy floats Target in a liquid layer
type Buoyancy struct {
	Target      string     `toml:"target"`
	Position    [3]float64 `toml:"position,omitempty"` // Volume proxy for display
	MaxDepth    float64    `toml:"max_depth"`
	Volume      float64    `toml:"volume"`
	WaterHeight float64    `toml:"water_height"`
	Density     float64    `toml:"density"`
}

// Rod holds two nodes at an exact distance
type Rod struct {
	A      string  `toml:"a"`
	B      string  `toml:"b"`
	Length float64 `toml:"length"`
}

// Cable limits the distance between two nodes
type Cable struct {
	A           string   `toml:"a"`
	B           string   `toml:"b"`
	MaxLength   float64  `toml:"max_length"`
	Restitution *float64 `toml:"restitution,omitempty"` // Defaults to Options.CableRestitution
}

// Load reads a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return s, nil
}

// Parse decodes a scene from TOML; unknown keys are rejected
func Parse(data []byte) (*Scene, error) {
	var s Scene
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode scene")
	}
	return &s, nil
}

// Marshal encodes the scene as TOML
func (s *Scene) Marshal() ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encode scene")
	}
	return data, nil
}

// NodeCount returns the number of anchors and particles
func (s *Scene) NodeCount() int {
	return len(s.Anchors) + len(s.Particles)
}

func vec(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}
