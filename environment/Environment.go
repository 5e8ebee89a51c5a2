// Package environment outlines the interfaces and structs needed to
// implement concrete environments, and the small set of concrete
// environments this module ships (corridor, mountain car) to exercise the
// tile-coding and gradient-descent learners.
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/rl-lib/tilerl/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() mat.Vector
}

// Cardinality indicates whether the associated type is continuous or discrete
type Cardinality int

const (
	Discrete Cardinality = iota
	Continuous
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action, an observation, a discount, or a reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

// Spec implements a specification, which tells the type, shape, and bounds
// of an action, observation, discount, or reward
type Spec struct {
	Shape       mat.Vector
	Type        SpecType
	LowerBound  mat.Vector
	UpperBound  mat.Vector
	Cardinality Cardinality
}

// NewSpec constructs a new Spec
func NewSpec(shape mat.Vector, t SpecType, lower, upper mat.Vector,
	c Cardinality) Spec {
	return Spec{shape, t, lower, upper, c}
}

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	GetReward(t timestep.TimeStep, action int) float64
	AtGoal(state mat.Vector) bool
}

// Ender determines whether an episode should end, independently of whether
// the environment's Task considers the current state a goal. Enders let a
// caller impose a step cap or a legal-range check without an environment
// hard-coding either.
type Ender interface {
	// End inspects and possibly mutates t, setting its StepType to
	// timestep.Last and its EndType when the episode should end. It
	// returns whether it did so.
	End(t *timestep.TimeStep) bool
}

// Environment implements a simulated environment, which includes a Task to
// complete. Actions are discrete action ordinals in [0, N) - the narrowed
// contract this module's learners consume (distilled spec §6, "Environment
// contract").
type Environment interface {
	Task
	Starter
	Reset() timestep.TimeStep
	Step(action int) (timestep.TimeStep, bool)
	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
