package policy

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rl-lib/tilerl/internal/errs"
)

// Softmax selects an action by sampling proportionally to
// exp(value / temperature). Lower temperatures push the distribution
// toward greedy; higher temperatures push it toward uniform.
type Softmax struct {
	temperature float64
	source      rand.Source
}

// NewSoftmax constructs a Softmax policy. temperature must be strictly
// positive.
func NewSoftmax(temperature float64, seed uint64) (*Softmax, error) {
	if temperature <= 0 {
		return nil, errs.Wrap("policy.NewSoftmax", fmt.Errorf("%w: temperature must be > 0, got %v",
			errs.ErrInvalidConfig, temperature))
	}
	return &Softmax{temperature: temperature, source: rand.NewSource(seed)}, nil
}

// SelectAction samples an action from values under the softmax
// distribution. Values are shifted by their maximum before exponentiating
// to avoid overflow; if every shifted weight nonetheless underflows to
// zero (temperature far below the value spread), the distribution falls
// back to uniform over the actions present in values.
func (p *Softmax) SelectAction(values map[int]float64) int {
	keys := sortedActions(values)

	maxValue := math.Inf(-1)
	for _, k := range keys {
		if values[k] > maxValue {
			maxValue = values[k]
		}
	}

	weights := make([]float64, len(keys))
	sum := 0.0
	for i, k := range keys {
		w := math.Exp((values[k] - maxValue) / p.temperature)
		weights[i] = w
		sum += w
	}

	if sum == 0 {
		for i := range weights {
			weights[i] = 1.0 / float64(len(weights))
		}
	} else {
		for i := range weights {
			weights[i] /= sum
		}
	}

	dist := distuv.NewCategorical(weights, p.source)
	return keys[int(dist.Rand())]
}
