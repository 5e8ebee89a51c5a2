// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either the first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType records why an episode ended, valid only on a Last TimeStep
type EndType int

const (
	// NotEnded is used for TimeSteps that do not end an episode
	NotEnded EndType = iota
	// TerminalStateReached means the environment itself signalled termination
	TerminalStateReached
	// StepLimitReached means an implementation-defined step cap was hit
	StepLimitReached
	// Diverged means an Ender detected the state left its legal bounds
	Diverged
)

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	stepType    StepType
	EndType     EndType
	Reward      float64
	Discount    float64
	Observation mat.Vector
	Number      int
}

// New creates a new TimeStep
func New(t StepType, r, d float64, o mat.Vector, n int) TimeStep {
	return TimeStep{stepType: t, Reward: r, Discount: d, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

// Type returns the type of this TimeStep
func (t *TimeStep) Type() StepType {
	return t.stepType
}

// SetEnd marks a TimeStep as the last step in an episode for the given reason
func (t *TimeStep) SetEnd(e EndType) {
	t.stepType = Last
	t.EndType = e
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.stepType, t.Reward, t.Discount, t.Number)
}
