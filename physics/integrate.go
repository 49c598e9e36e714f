package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/vmath"
)

// Integrate advances one particle by semi-implicit Euler:
// v += F*w*dt; v *= damping^dt; p += v*dt
// Immovable particles (w == 0) are returned unchanged
func Integrate(position, velocity, force mgl64.Vec3, inverseMass, damping, dt float64) (mgl64.Vec3, mgl64.Vec3) {
	if inverseMass <= 0 {
		return position, velocity
	}

	accel := force.Mul(inverseMass)
	velocity = velocity.Add(accel.Mul(dt))
	velocity = vmath.V3FDampDt(velocity, damping, dt)
	position = position.Add(velocity.Mul(dt))

	return position, velocity
}

// KineticEnergy returns 0.5 * m * |v|^2, zero for immovable particles
func KineticEnergy(velocity mgl64.Vec3, inverseMass float64) float64 {
	if inverseMass <= 0 {
		return 0
	}
	return 0.5 * velocity.Dot(velocity) / inverseMass
}
