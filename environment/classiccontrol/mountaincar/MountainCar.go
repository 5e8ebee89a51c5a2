// Package mountaincar implements the discrete-action classic control
// environment "Mountain Car", used to exercise the continuous-state linear
// learners (tile coding + gradient descent) against a real-valued, bounded
// state space in [MinPosition, MaxPosition] x [-MaxSpeed, MaxSpeed].
package mountaincar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/rl-lib/tilerl/environment"
	"github.com/rl-lib/tilerl/timestep"
	"github.com/rl-lib/tilerl/utils/floatutils"
)

const (
	MinPosition float64 = -1.2
	MaxPosition float64 = 0.6
	MaxSpeed    float64 = 0.07
	Power       float64 = 0.0015 // Engine power
	Gravity     float64 = 0.0025

	// GoalPosition is the x position the car must reach to end an episode
	// successfully
	GoalPosition float64 = 0.45
)

// Discrete actions
const (
	Left int = iota
	Coast
	Right
	NumActions
)

// MountainCar implements the classic control Mountain Car environment. The
// agent controls a car in a valley between two hills; the car is
// underpowered and cannot drive up the hill unless it rocks back and forth
// from hill to hill, using its momentum to gradually climb higher.
//
// State features are the car's x position and velocity. Actions are
// discrete: accelerate left, coast, or accelerate right. Every step,
// including the one that reaches the goal, is rewarded -1; reaching the
// goal ends the episode.
type MountainCar struct {
	starter        environment.Starter
	positionBounds r1.Interval
	speedBounds    r1.Interval
	lastStep       timestep.TimeStep
	discount       float64
	stepEnder      environment.Ender
}

// New creates a new MountainCar environment with the given starting-state
// distribution, per-step discount, and episode step cap.
func New(starter environment.Starter, discount float64, stepCap int) *MountainCar {
	positionBounds := r1.Interval{Min: MinPosition, Max: MaxPosition}
	speedBounds := r1.Interval{Min: -MaxSpeed, Max: MaxSpeed}

	m := &MountainCar{
		starter:        starter,
		positionBounds: positionBounds,
		speedBounds:    speedBounds,
		discount:       discount,
		stepEnder:      environment.NewStepLimit(stepCap),
	}
	m.lastStep = m.Reset()
	return m
}

func (m *MountainCar) validate(s mat.Vector) {
	position, speed := s.AtVec(0), s.AtVec(1)
	if position < m.positionBounds.Min || position > m.positionBounds.Max {
		panic(fmt.Sprintf("mountaincar: illegal position %v ∉ [%v, %v]",
			position, m.positionBounds.Min, m.positionBounds.Max))
	}
	if speed < m.speedBounds.Min || speed > m.speedBounds.Max {
		panic(fmt.Sprintf("mountaincar: illegal speed %v ∉ [%v, %v]",
			speed, m.speedBounds.Min, m.speedBounds.Max))
	}
}

// Reset resets the environment and returns a starting state drawn from the
// environment's Starter
func (m *MountainCar) Reset() timestep.TimeStep {
	state := m.starter.Start()
	m.validate(state)
	m.lastStep = timestep.New(timestep.First, 0, m.discount, state, 0)
	return m.lastStep
}

// Start returns a new starting state, without resetting the environment
func (m *MountainCar) Start() mat.Vector {
	return m.starter.Start()
}

func (m *MountainCar) nextState(force float64) mat.Vector {
	state := m.lastStep.Observation
	position, velocity := state.AtVec(0), state.AtVec(1)

	velocity += force*Power - Gravity*math.Cos(3*position)
	velocity = floatutils.Clip(velocity, m.speedBounds.Min, m.speedBounds.Max)

	position += velocity
	position = floatutils.Clip(position, m.positionBounds.Min, m.positionBounds.Max)

	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = 0
	}

	return mat.NewVecDense(2, []float64{position, velocity})
}

// Step takes one environmental step given a discrete action in
// {Left, Coast, Right} and returns the next timestep, plus whether the
// episode has ended.
func (m *MountainCar) Step(action int) (timestep.TimeStep, bool) {
	if action < Left || action > Right {
		panic(fmt.Sprintf("mountaincar: illegal action %d ∉ {0, 1, 2}", action))
	}

	force := float64(action) - 1.0 // Left=-1, Coast=0, Right=1
	newState := m.nextState(force)

	reward := m.GetReward(m.lastStep, action)
	next := timestep.New(timestep.Mid, reward, m.discount, newState,
		m.lastStep.Number+1)

	if m.AtGoal(newState) {
		next.SetEnd(timestep.TerminalStateReached)
	} else {
		m.stepEnder.End(&next)
	}

	m.lastStep = next
	return next, next.Last()
}

// GetReward returns -1.0 for every transition, including the one that
// reaches the goal
func (m *MountainCar) GetReward(t timestep.TimeStep, action int) float64 {
	return -1.0
}

// AtGoal reports whether state's x position has reached GoalPosition
func (m *MountainCar) AtGoal(state mat.Vector) bool {
	return state.AtVec(0) >= GoalPosition
}

// ObservationSpec describes the 2-D continuous (position, velocity) state
func (m *MountainCar) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(2, nil)
	lower := mat.NewVecDense(2, []float64{m.positionBounds.Min, m.speedBounds.Min})
	upper := mat.NewVecDense(2, []float64{m.positionBounds.Max, m.speedBounds.Max})
	return environment.NewSpec(shape, environment.Observation, lower, upper,
		environment.Continuous)
}

// DiscountSpec describes the fixed discount rate
func (m *MountainCar) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{m.discount})
	upper := mat.NewVecDense(1, []float64{m.discount})
	return environment.NewSpec(shape, environment.Discount, lower, upper,
		environment.Continuous)
}

// RewardSpec describes the reward bounds [-1, 0]; GetReward only ever
// yields -1
func (m *MountainCar) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{-1})
	upper := mat.NewVecDense(1, []float64{0})
	return environment.NewSpec(shape, environment.Reward, lower, upper,
		environment.Discrete)
}

// ActionSpec describes the three discrete actions
func (m *MountainCar) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{float64(Left)})
	upper := mat.NewVecDense(1, []float64{float64(Right)})
	return environment.NewSpec(shape, environment.Action, lower, upper,
		environment.Discrete)
}

// String returns a string representation of the current environment state
func (m *MountainCar) String() string {
	state := m.lastStep.Observation
	return fmt.Sprintf("Mountain Car  |  Position: %v  |  Speed: %v",
		state.AtVec(0), state.AtVec(1))
}
