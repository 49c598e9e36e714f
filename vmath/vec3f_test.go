package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestV3FDirection(t *testing.T) {
	dir, dist := V3FDirection(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 4, 5})
	if dist != 5 {
		t.Errorf("Expected distance 5, got %f", dist)
	}
	if !V3FNear(dir, mgl64.Vec3{0, 0.6, 0.8}, 1e-12) {
		t.Errorf("Unexpected direction %v", dir)
	}

	dir, dist = V3FDirection(mgl64.Vec3{2, 2, 2}, mgl64.Vec3{2, 2, 2})
	if dist != 0 || dir != (mgl64.Vec3{}) {
		t.Errorf("Coincident points should yield zero direction, got %v %f", dir, dist)
	}
}

func TestV3FSafeNormalizeZero(t *testing.T) {
	n := V3FSafeNormalize(mgl64.Vec3{})
	for i := 0; i < 3; i++ {
		if math.IsNaN(n[i]) {
			t.Fatalf("Normalize of zero vector produced NaN: %v", n)
		}
	}
}

func TestDampFactor(t *testing.T) {
	tests := []struct {
		name      string
		retention float64
		dt        float64
		want      float64
	}{
		{"no damping", 1, 0.016, 1},
		{"unset", 0, 0.016, 1},
		{"negative treated as unset", -3, 0.016, 1},
		{"one second", 0.5, 1, 0.5},
		{"two seconds", 0.5, 2, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DampFactor(tt.retention, tt.dt); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DampFactor(%f, %f) = %f, want %f", tt.retention, tt.dt, got, tt.want)
			}
		})
	}
}

func TestV3FDampDtSplitsEvenly(t *testing.T) {
	v := mgl64.Vec3{10, -4, 2}
	once := V3FDampDt(v, 0.8, 0.5)
	twice := V3FDampDt(V3FDampDt(v, 0.8, 0.25), 0.8, 0.25)
	if !V3FNear(once, twice, 1e-12) {
		t.Errorf("Damping should compose over split steps: %v vs %v", once, twice)
	}
}

func TestClamp01(t *testing.T) {
	if Clamp01(-1) != 0 || Clamp01(2) != 1 || Clamp01(0.3) != 0.3 {
		t.Error("Clamp01 out of range handling incorrect")
	}
}
