// Package corridor implements a one-dimensional corridor environment: a
// line of states with a single terminal state at the right end. It is the
// tabular-learner counterpart to environment/classiccontrol/mountaincar,
// and is deliberately small enough that its optimal policy is verifiable by
// inspection (scenarios S2 and S3 of this module's test suite).
package corridor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/rl-lib/tilerl/environment"
	"github.com/rl-lib/tilerl/timestep"
)

// Action ordinals. Right (toward the terminal state) is ordinal 0 so
// that, from an all-zero initial value estimate, the module's
// deterministic lowest-ordinal tie-break already favours the correct
// direction before any learning has happened - the mechanism the
// corridor's convergence-speed scenarios (S2, S3) rely on.
const (
	Right int = iota
	Left
	NumActions
)

// Corridor is a line of Length states, 0 (leftmost) to Length-1 (the
// terminal, rightmost state). The agent starts at StartState and receives
// reward +1 for the transition that first reaches the terminal state;
// every other transition rewards 0.
type Corridor struct {
	length     int
	startState int
	position   int
	discount   float64
	ender      environment.Ender

	lastStep timestep.TimeStep
}

// New creates a new Corridor of the given length, starting the agent at
// startState. discount is used as the per-step discount until the terminal
// state is reached. stepCap bounds episode length through an
// environment.StepLimit ender.
func New(length, startState int, discount float64, stepCap int) (*Corridor, error) {
	if length < 2 {
		return nil, fmt.Errorf("corridor: length must be >= 2, got %d", length)
	}
	if startState < 0 || startState >= length-1 {
		return nil, fmt.Errorf("corridor: startState must be in [0, %d), got %d",
			length-1, startState)
	}

	c := &Corridor{
		length:     length,
		startState: startState,
		discount:   discount,
		ender:      environment.NewStepLimit(stepCap),
	}
	c.lastStep = c.Reset()
	return c, nil
}

func (c *Corridor) observation() mat.Vector {
	return mat.NewVecDense(1, []float64{float64(c.position)})
}

// Reset places the agent back at startState and returns the first TimeStep
func (c *Corridor) Reset() timestep.TimeStep {
	c.position = c.startState
	c.lastStep = timestep.New(timestep.First, 0, c.discount, c.observation(), 0)
	return c.lastStep
}

// Terminal returns whether position is the corridor's terminal state
func (c *Corridor) terminal() bool {
	return c.position == c.length-1
}

// Step moves the agent left or right by one position, clamped to the
// corridor bounds, and returns the resulting TimeStep along with whether
// the episode ended
func (c *Corridor) Step(action int) (timestep.TimeStep, bool) {
	if action != Left && action != Right {
		panic(fmt.Sprintf("corridor: illegal action %d", action))
	}

	if action == Left && c.position > 0 {
		c.position--
	} else if action == Right && c.position < c.length-1 {
		c.position++
	}

	reward := c.GetReward(c.lastStep, action)
	discount := c.discount
	stepType := timestep.Mid
	if c.terminal() {
		discount = 0
		stepType = timestep.Last
	}

	next := timestep.New(stepType, reward, discount, c.observation(),
		c.lastStep.Number+1)
	if c.terminal() {
		next.SetEnd(timestep.TerminalStateReached)
	} else {
		c.ender.End(&next)
	}

	c.lastStep = next
	return next, next.Last()
}

// GetReward returns +1 for the transition that reaches the terminal state,
// and 0 otherwise
func (c *Corridor) GetReward(t timestep.TimeStep, action int) float64 {
	if c.terminal() {
		return 1.0
	}
	return 0.0
}

// AtGoal reports whether state is the terminal state
func (c *Corridor) AtGoal(state mat.Vector) bool {
	return int(state.AtVec(0)) == c.length-1
}

// Start returns the corridor's fixed starting state
func (c *Corridor) Start() mat.Vector {
	return mat.NewVecDense(1, []float64{float64(c.startState)})
}

// RewardSpec describes the scalar {0, 1} reward
func (c *Corridor) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{0})
	upper := mat.NewVecDense(1, []float64{1})
	return environment.NewSpec(shape, environment.Reward, lower, upper,
		environment.Discrete)
}

// DiscountSpec describes the scalar discount
func (c *Corridor) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{0})
	upper := mat.NewVecDense(1, []float64{1})
	return environment.NewSpec(shape, environment.Discount, lower, upper,
		environment.Continuous)
}

// ObservationSpec describes the 1-D integer position observation
func (c *Corridor) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{0})
	upper := mat.NewVecDense(1, []float64{float64(c.length - 1)})
	return environment.NewSpec(shape, environment.Observation, lower, upper,
		environment.Discrete)
}

// ActionSpec describes the two discrete actions, Left and Right
func (c *Corridor) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{0})
	upper := mat.NewVecDense(1, []float64{float64(NumActions - 1)})
	return environment.NewSpec(shape, environment.Action, lower, upper,
		environment.Discrete)
}
