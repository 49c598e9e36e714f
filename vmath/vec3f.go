package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis; buoyancy and gravity act along it
var Up = mgl64.Vec3{0, 1, 0}

// V3FDistance returns |b - a|
func V3FDistance(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len()
}

// V3FDirection returns the unit vector from a to b and the distance between them
// Returns zero vector when points coincide
func V3FDirection(a, b mgl64.Vec3) (mgl64.Vec3, float64) {
	delta := b.Sub(a)
	dist := delta.Len()
	if dist == 0 {
		return mgl64.Vec3{}, 0
	}
	// One division, three multiplies
	inv := 1.0 / dist
	return mgl64.Vec3{delta[0] * inv, delta[1] * inv, delta[2] * inv}, dist
}

// V3FSafeNormalize normalizes v, returning zero vector instead of NaN for zero length
func V3FSafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	mag := v.Len()
	if mag == 0 {
		return mgl64.Vec3{}
	}
	inv := 1.0 / mag
	return mgl64.Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// DampFactor returns retention^dt, the frame-rate independent velocity multiplier
// retention: fraction of velocity kept after one second in (0, 1]
// 1 and the unset zero value both mean no damping
func DampFactor(retention, dt float64) float64 {
	if retention <= 0 || retention >= 1 {
		return 1
	}
	return math.Pow(retention, dt)
}

// V3FDampDt applies frame-rate independent damping: v * retention^dt
func V3FDampDt(v mgl64.Vec3, retention, dt float64) mgl64.Vec3 {
	f := DampFactor(retention, dt)
	if f == 1 {
		return v
	}
	return v.Mul(f)
}

// V3FNear reports whether every component of a and b differs by at most eps
func V3FNear(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}

// Clamp01 limits x to [0, 1]
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
