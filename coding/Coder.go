package coding

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/rl-lib/tilerl/internal/errs"
	"github.com/rl-lib/tilerl/utils/floatutils"
)

// Coder maps a real-valued input vector onto a sparse set of active
// feature indices ("tiles") and exposes the linear weight vector those
// indices index into. gd.GradientDescent updates weights through this
// interface without caring whether the underlying representation is
// collision-free (Correct) or hashed (Hashed).
type Coder interface {
	// Features returns the indices of the tiles active for x, one per
	// tiling, in tiling order. It returns ErrOutOfDomain if x is not
	// finite or falls outside the coder's declared dimensions.
	Features(x []float64) ([]int, error)
	// Value returns the linear combination of weights for x's active
	// tiles.
	Value(x []float64) (float64, error)
	Weight(i int) float64
	AddWeight(i int, delta float64)
	// Size returns the length of the weight vector.
	Size() int
	// NumTilings returns the number of tilings laid over the input space.
	NumTilings() int
}

// base implements the offset sampling, domain checking, and weight
// storage shared by Correct and Hashed. It is not itself a complete Coder:
// each embeds base and supplies its own Features.
type base struct {
	dims       []Dimension
	numTilings int
	offsets    [][]float64 // offsets[tiling][dim], drawn once at construction
	weights    []float64
}

func newBase(dims []Dimension, numTilings int, size int, seed uint64) (*base, error) {
	if len(dims) == 0 {
		return nil, errs.Wrap("coding.newBase", fmt.Errorf("%w: at least one dimension required",
			errs.ErrInvalidConfig))
	}
	if numTilings < 1 {
		return nil, errs.Wrap("coding.newBase", fmt.Errorf("%w: numTilings must be >= 1, got %d",
			errs.ErrInvalidConfig, numTilings))
	}
	for i, d := range dims {
		if err := d.Validate(); err != nil {
			return nil, errs.Wrap(fmt.Sprintf("coding.newBase: dimension %d", i), err)
		}
	}

	bounds := make([]r1.Interval, len(dims))
	for i, d := range dims {
		bounds[i] = r1.Interval{Min: 0, Max: d.TileWidth() * d.Generalization}
	}
	source := rand.NewSource(seed)
	uniform := distmv.NewUniform(bounds, source)

	offsets := make([][]float64, numTilings)
	for t := 0; t < numTilings; t++ {
		offsets[t] = uniform.Rand(nil)
	}

	return &base{
		dims:       dims,
		numTilings: numTilings,
		offsets:    offsets,
		weights:    make([]float64, size),
	}, nil
}

func (b *base) Weight(i int) float64 {
	return b.weights[i]
}

func (b *base) AddWeight(i int, delta float64) {
	b.weights[i] += delta
}

func (b *base) Size() int {
	return len(b.weights)
}

func (b *base) NumTilings() int {
	return b.numTilings
}

func (b *base) checkDomain(x []float64) error {
	if len(x) != len(b.dims) {
		return errs.Wrap("coding: checkDomain", fmt.Errorf("%w: expected %d dims, got %d",
			errs.ErrInvalidConfig, len(b.dims), len(x)))
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Wrap("coding: checkDomain", fmt.Errorf("%w: dimension %d is not finite (%v)",
				errs.ErrOutOfDomain, i, v))
		}
		if v < b.dims[i].Lo || v > b.dims[i].Hi {
			return errs.Wrap("coding: checkDomain", fmt.Errorf("%w: dimension %d value %v outside [%v, %v]",
				errs.ErrOutOfDomain, i, v, b.dims[i].Lo, b.dims[i].Hi))
		}
	}
	return nil
}

// grid returns the clipped integer grid coordinate of x's d'th dimension
// within tiling t, in [0, dims[d].GridReal()-1]. Generalization scales
// offsets[t][d] twice over its lifetime: once in newBase, where it is
// drawn from U(0, TileWidth*Generalization), and again here, at every use.
// This double application matches the original tile coder's constructor
// plus paramToGridValue and is preserved deliberately, not a bug to fix.
// The clip guards against a tiling's positive offset pushing x == Hi past
// the extra slot GridReal reserves for it when Generalization is large.
func (b *base) grid(x []float64, t, d int) int {
	dim := b.dims[d]
	shifted := x[d] + b.offsets[t][d]*dim.Generalization - dim.Lo
	g := int(math.Floor(shifted * float64(dim.GridIdeal) / dim.Range()))
	return int(floatutils.Clip(float64(g), 0, float64(dim.GridReal()-1)))
}

func (b *base) value(features []int) float64 {
	sum := 0.0
	for _, i := range features {
		sum += b.weights[i]
	}
	return sum
}
