package component

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/tether/core"
)

// RodComponent holds A and B at exactly Length apart
type RodComponent struct {
	A, B   core.Entity
	Length float64
}

// CableComponent keeps A and B at most MaxLength apart
type CableComponent struct {
	A, B        core.Entity
	MaxLength   float64
	Restitution float64
}

// NewRod validates and binds a rod
func NewRod(a, b core.Entity, length float64) (RodComponent, error) {
	if err := checkPair(a, b); err != nil {
		return RodComponent{}, err
	}
	if !(length > 0) {
		return RodComponent{}, errors.Wrapf(ErrInvalidLength, "rod length %g", length)
	}
	return RodComponent{A: a, B: b, Length: length}, nil
}

// NewCable validates and binds a cable
func NewCable(a, b core.Entity, maxLength, restitution float64) (CableComponent, error) {
	if err := checkPair(a, b); err != nil {
		return CableComponent{}, err
	}
	if !(maxLength > 0) {
		return CableComponent{}, errors.Wrapf(ErrInvalidLength, "cable length %g", maxLength)
	}
	if !(restitution >= 0 && restitution <= 1) {
		return CableComponent{}, errors.Wrapf(ErrInvalidRestitution, "cable restitution %g", restitution)
	}
	return CableComponent{A: a, B: b, MaxLength: maxLength, Restitution: restitution}, nil
}
