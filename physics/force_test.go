package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

// TestSpringForce verifies Hooke direction and magnitude for stretched and compressed springs
func TestSpringForce(t *testing.T) {
	tests := []struct {
		name     string
		pos      mgl64.Vec3
		other    mgl64.Vec3
		k, rest  float64
		expected mgl64.Vec3
	}{
		{"stretched pulls toward other", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 0, 0}, 2, 1, mgl64.Vec3{4, 0, 0}},
		{"compressed pushes away", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, 5, 3, mgl64.Vec3{0, -10, 0}},
		{"at rest", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 3, 1}, 7, 2, mgl64.Vec3{}},
		{"coincident", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, 7, 2, mgl64.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpringForce(tt.pos, tt.other, tt.k, tt.rest)
			if !got.ApproxEqualThreshold(tt.expected, eps) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestSpringForceRestLengthZero verifies force equals k times displacement when rest is zero
func TestSpringForceRestLengthZero(t *testing.T) {
	pos := mgl64.Vec3{1, 2, 3}
	other := mgl64.Vec3{4, -2, 3}
	got := SpringForce(pos, other, 3, 0)
	expected := other.Sub(pos).Mul(3)
	if !got.ApproxEqualThreshold(expected, eps) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// TestBungeeForceSlack verifies a bungee never pushes
func TestBungeeForceSlack(t *testing.T) {
	if f := BungeeForce(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 10, 2); f != (mgl64.Vec3{}) {
		t.Errorf("Expected zero force when slack, got %v", f)
	}
	if f := BungeeForce(mgl64.Vec3{}, mgl64.Vec3{2, 0, 0}, 10, 2); f != (mgl64.Vec3{}) {
		t.Errorf("Expected zero force at rest length, got %v", f)
	}
	f := BungeeForce(mgl64.Vec3{}, mgl64.Vec3{5, 0, 0}, 10, 2)
	if !f.ApproxEqualThreshold(mgl64.Vec3{30, 0, 0}, eps) {
		t.Errorf("Expected {30,0,0}, got %v", f)
	}
}

// TestGravityForce verifies weight scales with mass and anchors get none
func TestGravityForce(t *testing.T) {
	g := mgl64.Vec3{0, -9.81, 0}
	if f := GravityForce(0.5, g); !f.ApproxEqualThreshold(mgl64.Vec3{0, -19.62, 0}, eps) {
		t.Errorf("Expected weight of 2kg, got %v", f)
	}
	if f := GravityForce(0, g); f != (mgl64.Vec3{}) {
		t.Errorf("Expected no force on immovable particle, got %v", f)
	}
}

// TestBuoyancyRegions verifies the three buoyancy regions and continuity at both thresholds
func TestBuoyancyRegions(t *testing.T) {
	const (
		water    = 0.0
		maxDepth = 1.0
		volume   = 2.0
		density  = 1000.0
		full     = density * volume
	)

	tests := []struct {
		name     string
		y        float64
		expected float64
	}{
		{"well above", 5, 0},
		{"at upper threshold", water + maxDepth, 0},
		{"half submerged", water, full / 2},
		{"quarter submerged", water + maxDepth/2, full / 4},
		{"at lower threshold", water - maxDepth, full},
		{"deep", -10, full},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuoyancyMagnitude(tt.y, water, maxDepth, volume, density)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("Expected %g, got %g", tt.expected, got)
			}
		})
	}

	// Continuity just inside each threshold
	justBelowTop := BuoyancyMagnitude(water+maxDepth-1e-9, water, maxDepth, volume, density)
	if justBelowTop > 1e-3 {
		t.Errorf("Expected continuity at upper threshold, got %g", justBelowTop)
	}
	justAboveBottom := BuoyancyMagnitude(water-maxDepth+1e-9, water, maxDepth, volume, density)
	if math.Abs(justAboveBottom-full) > 1e-3 {
		t.Errorf("Expected continuity at lower threshold, got %g", justAboveBottom)
	}

	f := BuoyancyForce(water-5, water, maxDepth, volume, density)
	if f[0] != 0 || f[2] != 0 || f[1] != full {
		t.Errorf("Expected vertical force {0,%g,0}, got %v", full, f)
	}
}
