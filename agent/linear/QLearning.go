package linear

import (
	"github.com/rl-lib/tilerl/coding"
	"github.com/rl-lib/tilerl/gd"
	"github.com/rl-lib/tilerl/internal/errs"
	"github.com/rl-lib/tilerl/policy"
)

// QLearning implements Watkins's Q(lambda) over a tile-coded, continuous
// state space: gd.Learner with a coding.LinearStateAction coder and the
// Watkins variant, whose eligibility trace resets whenever the executed
// action was exploratory.
type QLearning struct {
	*gd.Learner
}

// NewQLearningCorrect constructs a QLearning agent backed by a
// collision-free coding.Correct tile coder. See NewSarsaCorrect for the
// meaning of each parameter.
func NewQLearningCorrect(stateDims []coding.Dimension, numActions, numTilings int,
	stepSize, discount, lambda, epsilon float64, seed uint64) (*QLearning, error) {

	dims, err := stateActionDims(stateDims, numActions)
	if err != nil {
		return nil, errs.Wrap("linear.NewQLearningCorrect", err)
	}
	tileCoder, err := coding.NewCorrect(dims, numTilings, seed)
	if err != nil {
		return nil, errs.Wrap("linear.NewQLearningCorrect", err)
	}
	return newQLearning(tileCoder, stepSize, discount, lambda, epsilon, seed)
}

// NewQLearningHashed constructs a QLearning agent backed by a fixed-size
// coding.Hashed tile coder. See NewSarsaHashed for the meaning of each
// parameter.
func NewQLearningHashed(stateDims []coding.Dimension, numActions, numTilings, tableSize int,
	variant coding.HashVariant, stepSize, discount, lambda, epsilon float64, seed uint64) (*QLearning, error) {

	dims, err := stateActionDims(stateDims, numActions)
	if err != nil {
		return nil, errs.Wrap("linear.NewQLearningHashed", err)
	}
	tileCoder, err := coding.NewHashed(dims, numTilings, tableSize, seed, variant)
	if err != nil {
		return nil, errs.Wrap("linear.NewQLearningHashed", err)
	}
	return newQLearning(tileCoder, stepSize, discount, lambda, epsilon, seed)
}

func newQLearning(tileCoder coding.Coder, stepSize, discount, lambda, epsilon float64, seed uint64) (*QLearning, error) {
	coder := coding.NewLinearStateAction(tileCoder)
	p, err := policy.NewEGreedy(epsilon, seed)
	if err != nil {
		return nil, errs.Wrap("linear.newQLearning", err)
	}
	learner, err := gd.NewLearner(coder, stepSize, discount, lambda, gd.Watkins, p)
	if err != nil {
		return nil, errs.Wrap("linear.newQLearning", err)
	}
	return &QLearning{learner}, nil
}
