package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/core"
)

const (
	ea core.Entity = 1
	eb core.Entity = 2
	ec core.Entity = 3
)

// TestRodContact verifies rod contact direction for stretched, compressed and exact lengths
func TestRodContact(t *testing.T) {
	// Stretched: normal a->b
	c, ok := RodContact(ea, eb, mgl64.Vec3{}, mgl64.Vec3{15, 0, 0}, 10)
	if !ok {
		t.Fatal("Expected contact for stretched rod")
	}
	if !c.Normal.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, eps) || math.Abs(c.Penetration-5) > eps {
		t.Errorf("Expected normal {1,0,0} pen 5, got %v pen %g", c.Normal, c.Penetration)
	}
	if c.Particles != [2]core.Entity{ea, eb} {
		t.Errorf("Expected participants (a,b), got %v", c.Particles)
	}
	if c.Restitution != 0 {
		t.Errorf("Expected zero rod restitution, got %g", c.Restitution)
	}

	// Compressed: normal b->a
	c, ok = RodContact(ea, eb, mgl64.Vec3{}, mgl64.Vec3{0, 4, 0}, 10)
	if !ok {
		t.Fatal("Expected contact for compressed rod")
	}
	if !c.Normal.ApproxEqualThreshold(mgl64.Vec3{0, -1, 0}, eps) || math.Abs(c.Penetration-6) > eps {
		t.Errorf("Expected normal {0,-1,0} pen 6, got %v pen %g", c.Normal, c.Penetration)
	}

	// Exact
	if _, ok := RodContact(ea, eb, mgl64.Vec3{}, mgl64.Vec3{0, 0, 10}, 10); ok {
		t.Error("Expected no contact at exact length")
	}
}

// TestCableContact verifies cables only engage when taut
func TestCableContact(t *testing.T) {
	if _, ok := CableContact(ea, eb, mgl64.Vec3{}, mgl64.Vec3{3, 0, 0}, 5, 0.3); ok {
		t.Error("Expected no contact for slack cable")
	}
	c, ok := CableContact(ea, eb, mgl64.Vec3{}, mgl64.Vec3{6, 0, 0}, 5, 0.3)
	if !ok {
		t.Fatal("Expected contact for overstretched cable")
	}
	if math.Abs(c.Penetration-1) > eps || c.Restitution != 0.3 {
		t.Errorf("Expected pen 1 restitution 0.3, got %g %g", c.Penetration, c.Restitution)
	}
	if !c.Normal.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, eps) {
		t.Errorf("Expected normal {1,0,0}, got %v", c.Normal)
	}
}

// TestSphereContact verifies overlap detection at 1.5 and 2.5 units for unit spheres
func TestSphereContact(t *testing.T) {
	c, ok := SphereContact(ea, eb, mgl64.Vec3{}, mgl64.Vec3{1.5, 0, 0}, 1, 1, 0.8)
	if !ok {
		t.Fatal("Expected overlap at distance 1.5")
	}
	if math.Abs(c.Penetration-0.5) > eps {
		t.Errorf("Expected penetration 0.5, got %g", c.Penetration)
	}
	if !c.Normal.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, eps) {
		t.Errorf("Expected normal a->b {1,0,0}, got %v", c.Normal)
	}
	if c.Particles != [2]core.Entity{eb, ea} {
		t.Errorf("Expected b listed first, got %v", c.Particles)
	}

	if _, ok := SphereContact(ea, eb, mgl64.Vec3{}, mgl64.Vec3{2.5, 0, 0}, 1, 1, 0.8); ok {
		t.Error("Expected no contact at distance 2.5")
	}

	c, ok = SphereContact(ea, eb, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, 1, 1, 0.8)
	if !ok || c.Normal != (mgl64.Vec3{0, 1, 0}) || math.Abs(c.Penetration-2) > eps {
		t.Errorf("Expected +Y separation with depth 2 for coincident centres, got %v %g", c.Normal, c.Penetration)
	}
}

// TestContactBufferDrain verifies drain empties the buffer
func TestContactBufferDrain(t *testing.T) {
	b := NewContactBuffer(4)
	b.Add(Contact{Particles: [2]core.Entity{ea, eb}})
	b.Add(Contact{Particles: [2]core.Entity{eb, ec}})
	if b.Len() != 2 {
		t.Fatalf("Expected 2 contacts, got %d", b.Len())
	}
	out := b.Drain()
	if len(out) != 2 {
		t.Errorf("Expected 2 drained contacts, got %d", len(out))
	}
	if b.Len() != 0 {
		t.Errorf("Expected empty buffer after drain, got %d", b.Len())
	}
}
