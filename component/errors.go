package component

import "github.com/pkg/errors"

// Construction errors; configuration validity is established once at bind time
var (
	ErrInvalidMass        = errors.New("mass must be positive")
	ErrInvalidLength      = errors.New("length must be positive")
	ErrInvalidConstant    = errors.New("spring constant must be non-negative")
	ErrInvalidRadius      = errors.New("radius must be positive")
	ErrInvalidBuoyancy    = errors.New("buoyancy requires positive max depth and non-negative volume and density")
	ErrInvalidRestitution = errors.New("restitution must be within [0, 1]")
	ErrInvalidDamping     = errors.New("damping must be within (0, 1]")
	ErrSelfLink           = errors.New("link endpoints must be distinct entities")
	ErrMissingEndpoint    = errors.New("link endpoint is not a valid entity")
)
