package engine

// Stage is a fixed phase of the tick; stages always run in declaration order
type Stage int

const (
	// StageForce accumulates forces into particles
	StageForce Stage = iota
	// StageConstraint generates rod, cable and sphere contacts
	StageConstraint
	// StageResolve drains and resolves the contact list
	StageResolve
	// StageIntegrate advances particle state and clears accumulators
	StageIntegrate

	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageForce:
		return "force"
	case StageConstraint:
		return "constraint"
	case StageResolve:
		return "resolve"
	case StageIntegrate:
		return "integrate"
	default:
		return "unknown"
	}
}

// System is a unit of per-tick work registered into the pipeline
type System interface {
	// Name identifies the system in logs and metrics
	Name() string

	// Stage selects the tick phase the system runs in
	Stage() Stage

	// Priority orders systems within a stage, lower runs first
	Priority() int

	// Init resets internal state, called on pipeline reset
	Init()

	// Update performs one tick of work; the world update lock is held
	Update()
}
