package coding

import (
	"github.com/rl-lib/tilerl/internal/errs"
)

// Correct is a collision-free tile coder. Each tiling's grid coordinates
// are combined into a single index via mixed-radix encoding, so every
// distinct combination of grid cells across all tilings gets its own
// weight; no two inputs that are actually distinguishable ever alias to
// the same feature.
type Correct struct {
	*base
	radix []int // per-dimension multiplier for the mixed-radix index, one tiling's worth
}

// NewCorrect constructs a Correct coder over dims using numTilings
// tilings, seeded deterministically from seed. The coder's weight vector
// has size numTilings * prod(dims[i].GridReal()), so it grows quickly with
// dimensionality; Hashed is the usual choice once that product gets large.
func NewCorrect(dims []Dimension, numTilings int, seed uint64) (*Correct, error) {
	tilingSize := 1
	for _, d := range dims {
		tilingSize *= d.GridReal()
	}
	size := numTilings * tilingSize

	b, err := newBase(dims, numTilings, size, seed)
	if err != nil {
		return nil, errs.Wrap("coding.NewCorrect", err)
	}

	radix := make([]int, len(dims))
	mult := 1
	for i, d := range dims {
		radix[i] = mult
		mult *= d.GridReal()
	}

	return &Correct{base: b, radix: radix}, nil
}

// Features returns one index per tiling, mixed-radix-encoding that
// tiling's grid coordinates across every dimension into an offset within
// the tiling's dedicated block of the weight vector.
func (c *Correct) Features(x []float64) ([]int, error) {
	if err := c.checkDomain(x); err != nil {
		return nil, errs.Wrap("Correct.Features", err)
	}

	tilingSize := 1
	for _, d := range c.dims {
		tilingSize *= d.GridReal()
	}

	features := make([]int, c.numTilings)
	for t := 0; t < c.numTilings; t++ {
		index := 0
		for d := range c.dims {
			index += c.grid(x, t, d) * c.radix[d]
		}
		features[t] = t*tilingSize + index
	}
	return features, nil
}

// Value returns the sum of weights active for x
func (c *Correct) Value(x []float64) (float64, error) {
	features, err := c.Features(x)
	if err != nil {
		return 0, errs.Wrap("Correct.Value", err)
	}
	return c.value(features), nil
}
