package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/vmath"
)

// GravityForce returns mass * g, zero for immovable particles
func GravityForce(inverseMass float64, gravity mgl64.Vec3) mgl64.Vec3 {
	if inverseMass <= 0 {
		return mgl64.Vec3{}
	}
	return gravity.Mul(1 / inverseMass)
}

// SpringForce returns the Hooke force on a particle at pos tied to other
// force = k * (len - rest) toward other; pulls when stretched, pushes when compressed
// Coincident points yield zero (direction undefined)
func SpringForce(pos, other mgl64.Vec3, k, restLength float64) mgl64.Vec3 {
	dir, length := vmath.V3FDirection(pos, other)
	if length == 0 {
		return mgl64.Vec3{}
	}
	return dir.Mul(k * (length - restLength))
}

// BungeeForce is SpringForce that only pulls: zero while len <= rest
func BungeeForce(pos, other mgl64.Vec3, k, restLength float64) mgl64.Vec3 {
	dir, length := vmath.V3FDirection(pos, other)
	if length <= restLength {
		return mgl64.Vec3{}
	}
	return dir.Mul(k * (length - restLength))
}

// SpringStretch returns current length minus rest length between two points
func SpringStretch(a, b mgl64.Vec3, restLength float64) float64 {
	return vmath.V3FDistance(a, b) - restLength
}

// BuoyancyForce returns the vertical lift on a particle at height y
// Above waterHeight+maxDepth: none. Below waterHeight-maxDepth: density*volume
// Between: linear in submersion, continuous at both thresholds
func BuoyancyForce(y, waterHeight, maxDepth, volume, liquidDensity float64) mgl64.Vec3 {
	return vmath.Up.Mul(BuoyancyMagnitude(y, waterHeight, maxDepth, volume, liquidDensity))
}

// BuoyancyMagnitude is the scalar lift used by BuoyancyForce
func BuoyancyMagnitude(y, waterHeight, maxDepth, volume, liquidDensity float64) float64 {
	full := liquidDensity * volume
	switch {
	case y >= waterHeight+maxDepth:
		return 0
	case y <= waterHeight-maxDepth:
		return full
	default:
		return full * (waterHeight + maxDepth - y) / (2 * maxDepth)
	}
}
