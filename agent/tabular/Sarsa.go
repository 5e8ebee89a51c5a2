package tabular

import (
	"github.com/rl-lib/tilerl/coding"
	"github.com/rl-lib/tilerl/gd"
	"github.com/rl-lib/tilerl/internal/errs"
	"github.com/rl-lib/tilerl/policy"
)

// Sarsa implements tabular SARSA(lambda): an on-policy control algorithm
// that always bootstraps from the value of the action actually taken
// next, so its eligibility trace never resets mid-episode. It is
// gd.Learner with a one-hot coding.TabularStateAction coder and the Sarsa
// variant.
type Sarsa struct {
	*gd.Learner
}

// NewSarsa constructs a tabular SARSA(lambda) agent. stepSize must be in
// (0, 1], discount and lambda in [0, 1], and epsilon in [0, 1].
func NewSarsa(stepSize, discount, lambda, epsilon float64, seed uint64) (*Sarsa, error) {
	coder := coding.NewTabularStateAction()
	p, err := policy.NewEGreedy(epsilon, seed)
	if err != nil {
		return nil, errs.Wrap("tabular.NewSarsa", err)
	}
	learner, err := gd.NewLearner(coder, stepSize, discount, lambda, gd.Sarsa, p)
	if err != nil {
		return nil, errs.Wrap("tabular.NewSarsa", err)
	}
	return &Sarsa{learner}, nil
}
