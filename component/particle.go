package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/tether/parameter"
)

// Category tags a particle's collision participation
// Zero value is CategoryCollidable
type Category uint8

const (
	// CategoryCollidable particles take part in sphere contact generation
	CategoryCollidable Category = iota
	// CategoryNonColliding particles are ignored by sphere contact generation
	// Links, springs and buoyancy still act on them
	CategoryNonColliding
)

// CategoryFromLegacy maps the legacy numeric constructor flag (1 = collidable, 0 = not)
func CategoryFromLegacy(flag int) Category {
	if flag == 0 {
		return CategoryNonColliding
	}
	return CategoryCollidable
}

func (c Category) String() string {
	switch c {
	case CategoryCollidable:
		return "collidable"
	case CategoryNonColliding:
		return "non-colliding"
	default:
		return "unknown"
	}
}

// ParticleComponent is the per-particle dynamic state
// Position is held by TransformComponent on the same entity
type ParticleComponent struct {
	Velocity    mgl64.Vec3
	InverseMass float64 // 0 = immovable
	Damping     float64 // Per-second velocity retention in (0, 1]; 1 or unset 0 = none
	Force       mgl64.Vec3
	Category    Category
}

// NewParticle creates a movable particle; mass must be positive and finite
func NewParticle(mass float64, velocity mgl64.Vec3) (ParticleComponent, error) {
	if !(mass > 0) || math.IsInf(mass, 1) {
		return ParticleComponent{}, errors.Wrapf(ErrInvalidMass, "mass %g", mass)
	}
	return ParticleComponent{
		Velocity:    velocity,
		InverseMass: 1 / mass,
		Damping:     parameter.DefaultDamping,
	}, nil
}

// CheckDamping rejects retentions outside (0, 1]
func CheckDamping(d float64) error {
	if !(d > 0 && d <= 1) {
		return errors.Wrapf(ErrInvalidDamping, "damping %g", d)
	}
	return nil
}

// SetDamping validates and stores a per-second velocity retention
func (p *ParticleComponent) SetDamping(d float64) error {
	if err := CheckDamping(d); err != nil {
		return err
	}
	p.Damping = d
	return nil
}

// NewAnchorParticle creates an immovable particle (infinite mass)
func NewAnchorParticle() ParticleComponent {
	return ParticleComponent{
		InverseMass: 0,
		Damping:     1,
	}
}

// Mass returns 1/InverseMass, +Inf for immovable particles
func (p *ParticleComponent) Mass() float64 {
	if p.InverseMass <= 0 {
		return math.Inf(1)
	}
	return 1 / p.InverseMass
}

// Immovable reports whether the particle has infinite mass
func (p *ParticleComponent) Immovable() bool {
	return p.InverseMass <= 0
}

// AddForce accumulates force for the next integration
func (p *ParticleComponent) AddForce(f mgl64.Vec3) {
	p.Force = p.Force.Add(f)
}

// SphereComponent gives a particle a collision radius
type SphereComponent struct {
	Radius float64
}

// NewSphere validates the radius
func NewSphere(radius float64) (SphereComponent, error) {
	if !(radius > 0) {
		return SphereComponent{}, errors.Wrapf(ErrInvalidRadius, "radius %g", radius)
	}
	return SphereComponent{Radius: radius}, nil
}
