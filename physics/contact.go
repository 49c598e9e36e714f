package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tether/core"
)

// Contact is a constraint violation between one or two particles, alive for one tick
// Normal is the direction the first participant must move to reduce the violation
// Positive Penetration means violated; a zero second participant is an immovable anchor
type Contact struct {
	Particles   [2]core.Entity
	Restitution float64
	Normal      mgl64.Vec3
	Penetration float64
}

// ContactBuffer is the transient per-tick contact list
// Generators append, the resolver drains; empty at tick boundaries
type ContactBuffer struct {
	contacts []Contact
}

// NewContactBuffer creates a buffer with preallocated capacity
func NewContactBuffer(capacity int) *ContactBuffer {
	return &ContactBuffer{contacts: make([]Contact, 0, capacity)}
}

// Add appends one contact
func (b *ContactBuffer) Add(c Contact) {
	b.contacts = append(b.contacts, c)
}

// Len returns pending contact count
func (b *ContactBuffer) Len() int {
	return len(b.contacts)
}

// Contacts returns the pending list without draining; callers must not retain it
func (b *ContactBuffer) Contacts() []Contact {
	return b.contacts
}

// Drain returns the pending contacts and empties the buffer
// Returned slice is valid until the next Add
func (b *ContactBuffer) Drain() []Contact {
	out := b.contacts
	b.contacts = b.contacts[:0]
	return out
}

// Reset discards pending contacts
func (b *ContactBuffer) Reset() {
	b.contacts = b.contacts[:0]
}
