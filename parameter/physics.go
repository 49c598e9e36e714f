package parameter

// World defaults
const (
	// GravityFloat is the downward acceleration magnitude in units/s^2
	GravityFloat = 9.81

	// DefaultDamping is the per-second velocity retention applied by the integrator (1 = none)
	DefaultDamping = 0.99

	// DefaultMass is the particle mass when a scene omits it
	DefaultMass = 1.0

	// DefaultSphereRadius is the collision radius when a scene omits it
	DefaultSphereRadius = 1.0
)

// Contact coefficients
const (
	// SphereRestitution is the bounciness of sphere-sphere contacts
	SphereRestitution = 0.8

	// CableRestitution is the bounce of a cable snapping taut
	CableRestitution = 0.3

	// RodRestitution is always zero; rods resolve fully inelastically
	RodRestitution = 0.0
)

// Resolver
const (
	// ResolverIterations caps each resolution loop; 0 selects 2x contact count
	ResolverIterations = 0

	// ResolverIterationsPerContact is the automatic cap multiplier
	ResolverIterationsPerContact = 2

	// VelocityEpsilon is the separating velocity below which a contact still needs an impulse
	VelocityEpsilon = 1e-9

	// PenetrationEpsilon is the depth above which a contact still needs projection
	PenetrationEpsilon = 1e-9

	// ImpactEventThreshold is the impulse magnitude that emits an impact event
	ImpactEventThreshold = 2.0
)

// Buoyancy
const (
	// LiquidDensityStep is the runtime density adjustment per key press
	LiquidDensityStep = 10.0

	// MinLiquidDensity keeps runtime adjustment non-negative
	MinLiquidDensity = 0.0
)

// Debug visualization
const (
	// StressSoftening shapes the spring stress curve: green = 1/(1+|x|^StressSoftening)
	StressSoftening = 0.5
)
