package engine

import (
	"github.com/lixenwraith/tether/core"
)

// AnyStore provides type-erased operations for lifecycle management
// World destroys and clears entities through it without knowing the concrete type
type AnyStore interface {
	Remove(e core.Entity)
	Has(e core.Entity) bool
	Count() int
	Clear()
}

// QueryableStore extends AnyStore with the entity listing the query builder intersects
type QueryableStore interface {
	AnyStore
	All() []core.Entity
}
