package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/parameter"
)

// Resolver resolves a tick's contacts worst-first: velocity impulses, then interpenetration
// No state survives between ticks except reusable scratch buffers
type Resolver struct {
	// Iterations caps each loop; 0 selects ResolverIterationsPerContact x contact count
	// The effective cap is never below the contact count
	Iterations         int
	VelocityEpsilon    float64
	PenetrationEpsilon float64

	impulses []float64
}

// Resolution reports one Resolve call
type Resolution struct {
	Contacts           int
	VelocityIterations int
	PositionIterations int
	Converged          bool
	ResidualVelocity   float64 // Most negative separating velocity left, 0 if none
	ResidualDepth      float64 // Largest penetration left, 0 if none
	// Impulses holds the accumulated impulse magnitude per contact, aligned with the input
	// Valid until the next Resolve
	Impulses []float64
}

// NewResolver creates a resolver with package defaults
func NewResolver(iterations int) *Resolver {
	return &Resolver{
		Iterations:         iterations,
		VelocityEpsilon:    parameter.VelocityEpsilon,
		PenetrationEpsilon: parameter.PenetrationEpsilon,
	}
}

// IterationLimit returns the per-loop cap for n contacts
func (r *Resolver) IterationLimit(n int) int {
	limit := r.Iterations
	if limit <= 0 {
		limit = n * parameter.ResolverIterationsPerContact
	}
	if limit < n {
		limit = n
	}
	return limit
}

// Resolve applies impulses to velocities and projections to positions in bodies
// Contact penetrations are updated in place as participants move
// Reaching the iteration cap leaves residual violation for the next tick; never fails
func (r *Resolver) Resolve(contacts []Contact, bodies *BodyTable, dt float64) Resolution {
	n := len(contacts)
	res := Resolution{Contacts: n, Converged: true}

	if cap(r.impulses) < n {
		r.impulses = make([]float64, n)
	}
	r.impulses = r.impulses[:n]
	clear(r.impulses)
	res.Impulses = r.impulses

	if n == 0 {
		return res
	}

	limit := r.IterationLimit(n)

	// Velocity pass
	for res.VelocityIterations < limit {
		worst, _ := r.worstVelocity(contacts, bodies)
		if worst < 0 {
			break
		}
		c := &contacts[worst]
		a, b := bodies.Get(c.Particles[0]), bodies.Get(c.Particles[1])
		r.impulses[worst] += resolveVelocity(c, a, b, dt)
		res.VelocityIterations++
	}

	// Interpenetration pass
	for res.PositionIterations < limit {
		worst, _ := r.worstPenetration(contacts, bodies)
		if worst < 0 {
			break
		}
		c := &contacts[worst]
		a, b := bodies.Get(c.Particles[0]), bodies.Get(c.Particles[1])
		moveA, moveB := resolveInterpenetration(c, a, b)
		propagateMove(contacts, c, moveA, moveB)
		res.PositionIterations++
	}

	if i, sep := r.worstVelocity(contacts, bodies); i >= 0 {
		res.Converged = false
		res.ResidualVelocity = sep
	}
	if i, depth := r.worstPenetration(contacts, bodies); i >= 0 {
		res.Converged = false
		res.ResidualDepth = depth
	}

	return res
}

// worstVelocity returns the movable contact with the most negative separating velocity
// below -VelocityEpsilon, or -1
func (r *Resolver) worstVelocity(contacts []Contact, bodies *BodyTable) (int, float64) {
	worst := -1
	lowest := -r.VelocityEpsilon
	for i := range contacts {
		c := &contacts[i]
		a, b := bodies.Get(c.Particles[0]), bodies.Get(c.Particles[1])
		if totalInverseMass(a, b) <= 0 {
			continue
		}
		if sep := separatingVelocity(c, a, b); sep < lowest {
			lowest = sep
			worst = i
		}
	}
	return worst, lowest
}

// worstPenetration returns the movable contact with the largest penetration above
// PenetrationEpsilon, or -1
func (r *Resolver) worstPenetration(contacts []Contact, bodies *BodyTable) (int, float64) {
	worst := -1
	deepest := r.PenetrationEpsilon
	for i := range contacts {
		c := &contacts[i]
		if c.Penetration <= deepest {
			continue
		}
		a, b := bodies.Get(c.Particles[0]), bodies.Get(c.Particles[1])
		if totalInverseMass(a, b) <= 0 {
			continue
		}
		deepest = c.Penetration
		worst = i
	}
	return worst, deepest
}

// SeparatingVelocity returns (vA - vB) . n; negative means the violation is growing
func SeparatingVelocity(c *Contact, bodies *BodyTable) float64 {
	return separatingVelocity(c, bodies.Get(c.Particles[0]), bodies.Get(c.Particles[1]))
}

func separatingVelocity(c *Contact, a, b *Body) float64 {
	var rel mgl64.Vec3
	if a != nil {
		rel = a.Velocity
	}
	if b != nil {
		rel = rel.Sub(b.Velocity)
	}
	return rel.Dot(c.Normal)
}

// resolveVelocity applies the restitution impulse and returns its magnitude
func resolveVelocity(c *Contact, a, b *Body, dt float64) float64 {
	sep := separatingVelocity(c, a, b)
	if sep > 0 {
		return 0
	}

	newSep := -sep * c.Restitution

	// Velocity built up by this tick's acceleration alone is not bounced (resting contact)
	var accCaused mgl64.Vec3
	if a != nil {
		accCaused = a.Acceleration
	}
	if b != nil {
		accCaused = accCaused.Sub(b.Acceleration)
	}
	if accSep := accCaused.Dot(c.Normal) * dt; accSep < 0 {
		newSep += c.Restitution * accSep
		if newSep < 0 {
			newSep = 0
		}
	}

	total := totalInverseMass(a, b)
	if total <= 0 {
		return 0
	}

	impulse := (newSep - sep) / total
	perInverseMass := c.Normal.Mul(impulse)

	if w := inverseMass(a); w > 0 {
		a.Velocity = a.Velocity.Add(perInverseMass.Mul(w))
	}
	if w := inverseMass(b); w > 0 {
		b.Velocity = b.Velocity.Sub(perInverseMass.Mul(w))
	}
	return math.Abs(impulse)
}

// resolveInterpenetration projects participants along the normal by inverse mass share
func resolveInterpenetration(c *Contact, a, b *Body) (moveA, moveB mgl64.Vec3) {
	if c.Penetration <= 0 {
		return
	}
	total := totalInverseMass(a, b)
	if total <= 0 {
		return
	}

	perInverseMass := c.Normal.Mul(c.Penetration / total)

	if w := inverseMass(a); w > 0 {
		moveA = perInverseMass.Mul(w)
		a.Position = a.Position.Add(moveA)
	}
	if w := inverseMass(b); w > 0 {
		moveB = perInverseMass.Mul(-w)
		b.Position = b.Position.Add(moveB)
	}
	return
}

// propagateMove updates the penetration of every contact sharing a moved participant
func propagateMove(contacts []Contact, moved *Contact, moveA, moveB mgl64.Vec3) {
	moves := [2]mgl64.Vec3{moveA, moveB}
	for k, e := range moved.Particles {
		if !e.Valid() || moves[k] == (mgl64.Vec3{}) {
			continue
		}
		for i := range contacts {
			c := &contacts[i]
			if c.Particles[0] == e {
				c.Penetration -= moves[k].Dot(c.Normal)
			}
			if c.Particles[1] == e {
				c.Penetration += moves[k].Dot(c.Normal)
			}
		}
	}
}

func inverseMass(b *Body) float64 {
	if b == nil || b.InverseMass < 0 {
		return 0
	}
	return b.InverseMass
}

func totalInverseMass(a, b *Body) float64 {
	return inverseMass(a) + inverseMass(b)
}
