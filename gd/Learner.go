package gd

import (
	"sort"

	"github.com/rl-lib/tilerl/internal/errs"
)

// Learner drives a GradientDescent update rule through an episode: it
// selects actions via a policy over the coder's action-value estimates,
// and folds each observed transition back into the coder's weights. It
// satisfies agent.Learner and, paired with a policy.Policy, agent.Agent -
// the same type serves as both the tabular and continuous linear learner
// families, distinguished only by which Featurizer it was built with.
type Learner struct {
	gd     *GradientDescent
	coder  Featurizer
	policy Policy
}

// Policy selects an action given a snapshot of estimated action values.
// It is declared locally, rather than imported from package policy, so
// that gd does not depend on policy - only agent, which composes both,
// needs to know about that dependency.
type Policy interface {
	SelectAction(values map[int]float64) int
}

// NewLearner constructs a Learner. See New for the constraints on
// stepSize, discount and lambda.
func NewLearner(coder Featurizer, stepSize, discount, lambda float64, variant Variant, p Policy) (*Learner, error) {
	gradientDescent, err := New(coder, stepSize, discount, lambda, variant)
	if err != nil {
		return nil, errs.Wrap("gd.NewLearner", err)
	}
	return &Learner{gd: gradientDescent, coder: coder, policy: p}, nil
}

func (l *Learner) values(state []float64, actions []int) (map[int]float64, error) {
	values := make(map[int]float64, len(actions))
	for _, a := range actions {
		v, err := l.coder.Value(state, a)
		if err != nil {
			return nil, errs.Wrap("gd.Learner.values", err)
		}
		values[a] = v
	}
	return values, nil
}

// Action selects an action for state among actions, using the Learner's
// policy over the coder's current value estimates.
func (l *Learner) Action(state []float64, actions []int) (int, error) {
	values, err := l.values(state, actions)
	if err != nil {
		return 0, errs.Wrap("Learner.Action", err)
	}
	return l.policy.SelectAction(values), nil
}

// greedyAction returns the action in actions with the highest estimated
// value, breaking ties toward the lowest action ordinal.
func (l *Learner) greedyAction(state []float64, actions []int) (int, error) {
	values, err := l.values(state, actions)
	if err != nil {
		return 0, errs.Wrap("Learner.greedyAction", err)
	}

	sorted := make([]int, len(actions))
	copy(sorted, actions)
	sort.Ints(sorted)

	best := sorted[0]
	bestValue := values[best]
	for _, a := range sorted[1:] {
		if values[a] > bestValue {
			best = a
			bestValue = values[a]
		}
	}
	return best, nil
}

// Update folds the observed transition (lastState, lastAction) -> reward
// -> (state, action) into the learner's weights; the TD target is the value
// of (state, action) for both variants. For the Watkins variant, whether
// the step was exploratory is determined here by comparing action against
// the greedy action w.r.t. state, and an exploratory step clears the trace.
func (l *Learner) Update(lastState []float64, lastAction int, reward float64,
	state []float64, action int, actions []int, terminal bool) (float64, error) {

	F, err := l.coder.Features(lastState, lastAction)
	if err != nil {
		return 0, errs.Wrap("Learner.Update", err)
	}
	Fnext, err := l.coder.Features(state, action)
	if err != nil {
		return 0, errs.Wrap("Learner.Update", err)
	}

	exploratory := false
	if l.gd.variant == Watkins && !terminal {
		greedy, err := l.greedyAction(state, actions)
		if err != nil {
			return 0, errs.Wrap("Learner.Update", err)
		}
		exploratory = action != greedy
	}

	delta, err := l.gd.Update(F, Fnext, reward, terminal, exploratory)
	if err != nil {
		return 0, errs.Wrap("Learner.Update", err)
	}
	return delta, nil
}

// Reset clears the learner's eligibility trace, as required at the start
// of every new episode.
func (l *Learner) Reset() {
	l.gd.Reset()
}
