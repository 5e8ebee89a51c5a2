package environment

import (
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/rl-lib/tilerl/timestep"
)

// StepLimit implements the Ender interface to end episodes once a fixed
// number of steps have elapsed
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// End determines whether the episode has run for episodeSteps steps,
// marking t as the last step of the episode if so
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Number >= s.episodeSteps {
		t.SetEnd(timestep.StepLimitReached)
		return true
	}
	return false
}

// IntervalLimit implements the Ender interface to end episodes whenever a
// single feature of the observation leaves a legal interval
type IntervalLimit struct {
	intervals []r1.Interval
	indices   []int
}

// NewIntervalLimit creates and returns a new IntervalLimit. limits and
// obsIndices must have equal length; limits[i] bounds observation feature
// obsIndices[i].
func NewIntervalLimit(limits []r1.Interval, obsIndices []int) Ender {
	if len(limits) != len(obsIndices) {
		panic("environment: limits should have same length as observation indices")
	}
	return &IntervalLimit{limits, obsIndices}
}

// End determines whether any bounded observation feature has left its
// interval, marking t as the last step of the episode if so
func (i *IntervalLimit) End(t *timestep.TimeStep) bool {
	for k, featureIndex := range i.indices {
		interval := i.intervals[k]
		v := t.Observation.AtVec(featureIndex)
		if v > interval.Max || v < interval.Min {
			t.SetEnd(timestep.Diverged)
			return true
		}
	}
	return false
}
