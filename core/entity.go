package core

// Entity is a stable handle into the world's component stores
// Zero is never issued and marks an absent participant (immovable anchor)
type Entity uint64

// NoEntity is the absent handle
const NoEntity Entity = 0

// Valid reports whether the handle was ever issued by a world
func (e Entity) Valid() bool {
	return e != NoEntity
}
