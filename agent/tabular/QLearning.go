// Package tabular implements the tabular control algorithms - Q-learning,
// SARSA, and Dyna-Q - as thin assemblies of coding.TabularStateAction,
// gd.Learner, and (for Dyna-Q) model.Dyna. None of them implement their
// own update rule: they exist to fix the coder, the gd.Variant, and, for
// Q-learning, the eligibility trace's lambda, that make a gd.Learner behave
// like the named textbook algorithm.
package tabular

import (
	"github.com/rl-lib/tilerl/coding"
	"github.com/rl-lib/tilerl/gd"
	"github.com/rl-lib/tilerl/internal/errs"
	"github.com/rl-lib/tilerl/policy"
)

// QLearning implements tabular Q-learning as gd.Learner with a one-hot
// coding.TabularStateAction coder, Watkins's Q(lambda) variant, and lambda
// fixed to 0 - a one-step backup. The TD target is the value of the next
// action passed to Update, not the greedy action's value, so the backup
// equals the classical Q-learning backup only when that action is greedy.
type QLearning struct {
	*gd.Learner
}

// NewQLearning constructs a tabular Q-learning agent. stepSize must be in
// (0, 1], discount in [0, 1], and epsilon (the exploration rate of the
// behaviour policy) in [0, 1].
func NewQLearning(stepSize, discount, epsilon float64, seed uint64) (*QLearning, error) {
	coder := coding.NewTabularStateAction()
	p, err := policy.NewEGreedy(epsilon, seed)
	if err != nil {
		return nil, errs.Wrap("tabular.NewQLearning", err)
	}
	learner, err := gd.NewLearner(coder, stepSize, discount, 0, gd.Watkins, p)
	if err != nil {
		return nil, errs.Wrap("tabular.NewQLearning", err)
	}
	return &QLearning{learner}, nil
}
