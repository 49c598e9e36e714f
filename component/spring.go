package component

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/tether/core"
)

// LinkMode selects which endpoints a two-particle force generator pushes
type LinkMode uint8

const (
	// LinkOneSided applies force to endpoint B only; a mirrored instance covers A
	LinkOneSided LinkMode = iota
	// LinkSymmetric applies equal and opposite force to both endpoints
	LinkSymmetric
)

// ParseLinkMode maps scene strings to modes, empty selects LinkOneSided
func ParseLinkMode(s string) (LinkMode, error) {
	switch s {
	case "", "one-sided":
		return LinkOneSided, nil
	case "symmetric":
		return LinkSymmetric, nil
	default:
		return LinkOneSided, errors.Errorf("unknown link mode %q", s)
	}
}

// FixedSpringComponent ties Target to this entity's transform position
type FixedSpringComponent struct {
	Target         core.Entity
	SpringConstant float64
	RestLength     float64
}

// PairedSpringComponent is a Hooke spring between two particles
type PairedSpringComponent struct {
	A, B           core.Entity
	SpringConstant float64
	RestLength     float64
	Mode           LinkMode
}

// BungeeComponent pulls its endpoints together only when stretched past rest length
type BungeeComponent struct {
	A, B           core.Entity
	SpringConstant float64
	RestLength     float64
	Mode           LinkMode
}

// NewFixedSpring validates and binds an anchored spring
func NewFixedSpring(target core.Entity, k, restLength float64) (FixedSpringComponent, error) {
	if !target.Valid() {
		return FixedSpringComponent{}, ErrMissingEndpoint
	}
	if err := checkSpring(k, restLength); err != nil {
		return FixedSpringComponent{}, err
	}
	return FixedSpringComponent{Target: target, SpringConstant: k, RestLength: restLength}, nil
}

// NewPairedSpring validates and binds a paired spring
func NewPairedSpring(a, b core.Entity, k, restLength float64, mode LinkMode) (PairedSpringComponent, error) {
	if err := checkPair(a, b); err != nil {
		return PairedSpringComponent{}, err
	}
	if err := checkSpring(k, restLength); err != nil {
		return PairedSpringComponent{}, err
	}
	return PairedSpringComponent{A: a, B: b, SpringConstant: k, RestLength: restLength, Mode: mode}, nil
}

// NewBungee validates and binds a bungee
func NewBungee(a, b core.Entity, k, restLength float64, mode LinkMode) (BungeeComponent, error) {
	if err := checkPair(a, b); err != nil {
		return BungeeComponent{}, err
	}
	if err := checkSpring(k, restLength); err != nil {
		return BungeeComponent{}, err
	}
	return BungeeComponent{A: a, B: b, SpringConstant: k, RestLength: restLength, Mode: mode}, nil
}

// checkSpring allows zero rest length (spring pulls to the anchor point)
func checkSpring(k, restLength float64) error {
	if !(k >= 0) {
		return errors.Wrapf(ErrInvalidConstant, "k %g", k)
	}
	if !(restLength >= 0) {
		return errors.Wrapf(ErrInvalidLength, "rest length %g", restLength)
	}
	return nil
}

func checkPair(a, b core.Entity) error {
	if !a.Valid() || !b.Valid() {
		return ErrMissingEndpoint
	}
	if a == b {
		return errors.Wrapf(ErrSelfLink, "entity %d", a)
	}
	return nil
}
