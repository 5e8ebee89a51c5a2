// Package linear implements the continuous-state control algorithms -
// SARSA(lambda) and Q(lambda) - as thin assemblies of a tile-coded
// coding.LinearStateAction coder and gd.Learner, exactly as package
// tabular assembles the same gd.Learner around a one-hot
// coding.TabularStateAction coder instead.
package linear

import (
	"github.com/rl-lib/tilerl/coding"
	"github.com/rl-lib/tilerl/internal/errs"
)

// stateActionDims appends an action dimension, built by
// coding.NewActionDimension, to stateDims, giving the combined dimension
// list a tile coder over (state, action) pairs is constructed from.
func stateActionDims(stateDims []coding.Dimension, numActions int) ([]coding.Dimension, error) {
	actionDim, err := coding.NewActionDimension(numActions)
	if err != nil {
		return nil, errs.Wrap("linear.stateActionDims", err)
	}
	dims := make([]coding.Dimension, len(stateDims)+1)
	copy(dims, stateDims)
	dims[len(stateDims)] = actionDim
	return dims, nil
}
