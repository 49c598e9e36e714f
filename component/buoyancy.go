package component

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/tether/core"
)

// BuoyancyComponent lives on a volume proxy entity and lifts Target
// The proxy's own transform is presentation-only
type BuoyancyComponent struct {
	Target        core.Entity
	MaxDepth      float64
	Volume        float64
	WaterHeight   float64
	LiquidDensity float64
}

// NewBuoyancy validates and binds a buoyant volume
func NewBuoyancy(target core.Entity, maxDepth, volume, waterHeight, liquidDensity float64) (BuoyancyComponent, error) {
	if !target.Valid() {
		return BuoyancyComponent{}, ErrMissingEndpoint
	}
	if !(maxDepth > 0) || !(volume >= 0) || !(liquidDensity >= 0) {
		return BuoyancyComponent{}, errors.Wrapf(ErrInvalidBuoyancy,
			"max depth %g volume %g density %g", maxDepth, volume, liquidDensity)
	}
	return BuoyancyComponent{
		Target:        target,
		MaxDepth:      maxDepth,
		Volume:        volume,
		WaterHeight:   waterHeight,
		LiquidDensity: liquidDensity,
	}, nil
}
