package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rl-lib/tilerl/internal/errs"
)

// EGreedy selects the greedy (highest-value) action with probability
// 1-epsilon, and an action drawn uniformly at random otherwise.
type EGreedy struct {
	epsilon float64
	source  rand.Source
}

// NewEGreedy constructs an EGreedy policy. epsilon must be in [0, 1].
func NewEGreedy(epsilon float64, seed uint64) (*EGreedy, error) {
	if epsilon < 0 || epsilon > 1 {
		return nil, errs.Wrap("policy.NewEGreedy", fmt.Errorf("%w: epsilon must be in [0, 1], got %v",
			errs.ErrInvalidConfig, epsilon))
	}
	return &EGreedy{epsilon: epsilon, source: rand.NewSource(seed)}, nil
}

// SelectAction samples an action from values under the epsilon-greedy
// distribution
func (p *EGreedy) SelectAction(values map[int]float64) int {
	keys := sortedActions(values)
	n := len(keys)

	probabilities := make([]float64, n)
	explore := p.epsilon / float64(n)
	for i := range probabilities {
		probabilities[i] = explore
	}
	probabilities[greedyIndex(values, keys)] += 1.0 - p.epsilon

	dist := distuv.NewCategorical(probabilities, p.source)
	return keys[int(dist.Rand())]
}
