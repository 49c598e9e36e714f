package component

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

func TestNewParticleRejectsInvalidMass(t *testing.T) {
	for _, mass := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewParticle(mass, mgl64.Vec3{}); errors.Cause(err) != ErrInvalidMass {
			t.Errorf("mass %g: expected ErrInvalidMass, got %v", mass, err)
		}
	}
}

// TestSetDamping verifies retention must lie in (0, 1]
func TestSetDamping(t *testing.T) {
	p, err := NewParticle(1, mgl64.Vec3{})
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}
	before := p.Damping
	for _, d := range []float64{0, -3, 1.5, math.NaN()} {
		if err := p.SetDamping(d); errors.Cause(err) != ErrInvalidDamping {
			t.Errorf("damping %g: expected ErrInvalidDamping, got %v", d, err)
		}
	}
	if p.Damping != before {
		t.Errorf("Expected rejected values to leave damping untouched, got %g", p.Damping)
	}
	if err := p.SetDamping(1); err != nil || p.Damping != 1 {
		t.Errorf("Expected damping 1 accepted, got %g (%v)", p.Damping, err)
	}
}

func TestParticleMass(t *testing.T) {
	p, err := NewParticle(4, mgl64.Vec3{1, 0, 0})
	if err != nil {
		t.Fatalf("NewParticle failed: %v", err)
	}
	if p.InverseMass != 0.25 || p.Mass() != 4 {
		t.Errorf("Expected inverse mass 0.25 and mass 4, got %f and %f", p.InverseMass, p.Mass())
	}
	if p.Category != CategoryCollidable {
		t.Errorf("Default category should be collidable, got %s", p.Category)
	}

	anchor := NewAnchorParticle()
	if !anchor.Immovable() || !math.IsInf(anchor.Mass(), 1) {
		t.Error("Anchor particle should be immovable with infinite mass")
	}
}

func TestAddForceAccumulates(t *testing.T) {
	p := NewAnchorParticle()
	p.AddForce(mgl64.Vec3{1, 2, 3})
	p.AddForce(mgl64.Vec3{1, 0, -3})
	if p.Force != (mgl64.Vec3{2, 2, 0}) {
		t.Errorf("Expected accumulated force (2,2,0), got %v", p.Force)
	}
}

func TestCategoryFromLegacy(t *testing.T) {
	if CategoryFromLegacy(0) != CategoryNonColliding {
		t.Error("Legacy flag 0 should map to non-colliding")
	}
	if CategoryFromLegacy(1) != CategoryCollidable {
		t.Error("Legacy flag 1 should map to collidable")
	}
}

func TestLinkConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"rod zero length", func() error { _, err := NewRod(1, 2, 0); return err }(), ErrInvalidLength},
		{"rod self link", func() error { _, err := NewRod(3, 3, 1); return err }(), ErrSelfLink},
		{"cable missing endpoint", func() error { _, err := NewCable(0, 2, 5, 0.3); return err }(), ErrMissingEndpoint},
		{"cable negative length", func() error { _, err := NewCable(1, 2, -5, 0.3); return err }(), ErrInvalidLength},
		{"cable restitution", func() error { _, err := NewCable(1, 2, 5, 1.5); return err }(), ErrInvalidRestitution},
		{"bungee negative k", func() error { _, err := NewBungee(1, 2, -1, 1, LinkOneSided); return err }(), ErrInvalidConstant},
		{"spring missing target", func() error { _, err := NewFixedSpring(0, 1, 1); return err }(), ErrMissingEndpoint},
		{"buoyancy zero depth", func() error { _, err := NewBuoyancy(1, 0, 10, 0, 100); return err }(), ErrInvalidBuoyancy},
		{"sphere radius", func() error { _, err := NewSphere(0); return err }(), ErrInvalidRadius},
		{"valid rod", func() error { _, err := NewRod(1, 2, 10); return err }(), nil},
		{"valid spring zero rest", func() error { _, err := NewFixedSpring(1, 5, 0); return err }(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errors.Cause(tt.err) != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, tt.err)
			}
		})
	}
}

func TestParseLinkMode(t *testing.T) {
	if m, err := ParseLinkMode(""); err != nil || m != LinkOneSided {
		t.Errorf("Empty mode should default to one-sided, got %v %v", m, err)
	}
	if m, err := ParseLinkMode("symmetric"); err != nil || m != LinkSymmetric {
		t.Errorf("Expected symmetric, got %v %v", m, err)
	}
	if _, err := ParseLinkMode("sideways"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}
