package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/vmath"
)

// RodContact evaluates a rigid rod of the given length between a and b
// Too far: normal a->b, penetration len-L. Too close: normal b->a, penetration L-len
// Exact length or coincident endpoints produce no contact
func RodContact(a, b core.Entity, posA, posB mgl64.Vec3, length float64) (Contact, bool) {
	dir, current := vmath.V3FDirection(posA, posB)
	if current == length || current == 0 {
		return Contact{}, false
	}

	c := Contact{
		Particles:   [2]core.Entity{a, b},
		Restitution: parameter.RodRestitution,
	}
	if current > length {
		c.Normal = dir
		c.Penetration = current - length
	} else {
		c.Normal = dir.Mul(-1)
		c.Penetration = length - current
	}
	return c, true
}

// CableContact evaluates a cable: violated only when len >= maxLength
func CableContact(a, b core.Entity, posA, posB mgl64.Vec3, maxLength, restitution float64) (Contact, bool) {
	dir, current := vmath.V3FDirection(posA, posB)
	if current < maxLength || current == 0 {
		return Contact{}, false
	}
	return Contact{
		Particles:   [2]core.Entity{a, b},
		Restitution: restitution,
		Normal:      dir,
		Penetration: current - maxLength,
	}, true
}

// SphereContact tests two spheres for overlap
// The contact lists b first with normal a->b, so b is pushed away from a
// Coincident centres separate along +Y
func SphereContact(a, b core.Entity, posA, posB mgl64.Vec3, radiusA, radiusB, restitution float64) (Contact, bool) {
	dir, dist := vmath.V3FDirection(posA, posB)
	reach := radiusA + radiusB
	if dist >= reach {
		return Contact{}, false
	}
	if dist == 0 {
		dir = vmath.Up
	}
	return Contact{
		Particles:   [2]core.Entity{b, a},
		Restitution: restitution,
		Normal:      dir,
		Penetration: reach - dist,
	}, true
}
