package linear

import (
	"github.com/rl-lib/tilerl/coding"
	"github.com/rl-lib/tilerl/gd"
	"github.com/rl-lib/tilerl/internal/errs"
	"github.com/rl-lib/tilerl/policy"
)

// Sarsa implements SARSA(lambda) over a tile-coded, continuous state
// space: gd.Learner with a coding.LinearStateAction coder and the Sarsa
// variant.
type Sarsa struct {
	*gd.Learner
}

// NewSarsaCorrect constructs a Sarsa agent backed by a collision-free
// coding.Correct tile coder. stateDims describes the environment's state
// dimensions; numActions is the size of the discrete action set;
// numTilings is the number of overlapping tilings laid over
// (state, action) space. stepSize must be in (0, 1], discount and lambda
// in [0, 1], and epsilon in [0, 1].
func NewSarsaCorrect(stateDims []coding.Dimension, numActions, numTilings int,
	stepSize, discount, lambda, epsilon float64, seed uint64) (*Sarsa, error) {

	dims, err := stateActionDims(stateDims, numActions)
	if err != nil {
		return nil, errs.Wrap("linear.NewSarsaCorrect", err)
	}
	tileCoder, err := coding.NewCorrect(dims, numTilings, seed)
	if err != nil {
		return nil, errs.Wrap("linear.NewSarsaCorrect", err)
	}
	return newSarsa(tileCoder, stepSize, discount, lambda, epsilon, seed)
}

// NewSarsaHashed constructs a Sarsa agent backed by a fixed-size
// coding.Hashed tile coder, trading a small collision probability for a
// weight vector whose size does not grow with dimensionality.
func NewSarsaHashed(stateDims []coding.Dimension, numActions, numTilings, tableSize int,
	variant coding.HashVariant, stepSize, discount, lambda, epsilon float64, seed uint64) (*Sarsa, error) {

	dims, err := stateActionDims(stateDims, numActions)
	if err != nil {
		return nil, errs.Wrap("linear.NewSarsaHashed", err)
	}
	tileCoder, err := coding.NewHashed(dims, numTilings, tableSize, seed, variant)
	if err != nil {
		return nil, errs.Wrap("linear.NewSarsaHashed", err)
	}
	return newSarsa(tileCoder, stepSize, discount, lambda, epsilon, seed)
}

func newSarsa(tileCoder coding.Coder, stepSize, discount, lambda, epsilon float64, seed uint64) (*Sarsa, error) {
	coder := coding.NewLinearStateAction(tileCoder)
	p, err := policy.NewEGreedy(epsilon, seed)
	if err != nil {
		return nil, errs.Wrap("linear.newSarsa", err)
	}
	learner, err := gd.NewLearner(coder, stepSize, discount, lambda, gd.Sarsa, p)
	if err != nil {
		return nil, errs.Wrap("linear.newSarsa", err)
	}
	return &Sarsa{learner}, nil
}
