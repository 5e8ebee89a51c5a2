// Package coding implements tile coding: a sparse, binary feature
// representation for continuous state built from multiple overlapping,
// randomly-offset grids ("tilings") laid over the input space. It provides
// both a collision-free encoding (Correct) and two hashed encodings
// (Hashed, using UNH or MT19937) that trade a small collision probability
// for a bounded weight-vector size, plus a one-hot Tabular coder used to
// give tabular learners the same gd.GradientDescent update path as the
// continuous learners.
package coding

import (
	"fmt"

	"github.com/rl-lib/tilerl/internal/errs"
)

// Dimension describes one axis of a continuous input space: its legal
// range, how finely tilings should divide that range, and how much a
// tiling's random offset may spread relative to one tile's width.
type Dimension struct {
	Lo, Hi         float64
	GridIdeal      uint
	Generalization float64
}

// NewDimension validates and returns a Dimension. lo must be strictly less
// than hi, gridIdeal must be at least 1 (at least two tiles once the extra
// slot described below is accounted for), and generalization must be
// strictly positive.
func NewDimension(lo, hi float64, gridIdeal uint, generalization float64) (Dimension, error) {
	d := Dimension{lo, hi, gridIdeal, generalization}
	if err := d.Validate(); err != nil {
		return Dimension{}, err
	}
	return d, nil
}

// Validate reports whether d describes a usable dimension
func (d Dimension) Validate() error {
	if d.Hi <= d.Lo {
		return errs.Wrap("Dimension.Validate", fmt.Errorf("%w: hi (%v) must be > lo (%v)",
			errs.ErrInvalidConfig, d.Hi, d.Lo))
	}
	if d.GridIdeal < 1 {
		return errs.Wrap("Dimension.Validate", fmt.Errorf("%w: gridIdeal must be >= 1, got %d",
			errs.ErrInvalidConfig, d.GridIdeal))
	}
	if d.Generalization <= 0 {
		return errs.Wrap("Dimension.Validate", fmt.Errorf("%w: generalization must be > 0, got %v",
			errs.ErrInvalidConfig, d.Generalization))
	}
	return nil
}

// Range returns the width of the dimension's legal interval, hi - lo
func (d Dimension) Range() float64 {
	return d.Hi - d.Lo
}

// TileWidth returns the width of a single tile along this dimension
func (d Dimension) TileWidth() float64 {
	return d.Range() / float64(d.GridIdeal)
}

// GridReal returns the number of grid cells actually allocated along this
// dimension: one more than GridIdeal, so that both the x == Hi edge case
// and a tiling's positive random offset have a slot to land in without
// colliding with the coordinate one tile lower.
func (d Dimension) GridReal() int {
	return int(d.GridIdeal) + 1
}

// NewActionDimension returns a Dimension used to fold a discrete action
// ordinal into a coder's input vector as one more axis, following the
// original tile-coding template's ACTION_DIM convention (state-action
// tile coding, rather than one weight vector per action). Its
// generalization is deliberately tiny so that a tiling's random offset
// along this axis almost never blurs one action's tile into another's.
func NewActionDimension(numActions int) (Dimension, error) {
	if numActions < 2 {
		return Dimension{}, errs.Wrap("NewActionDimension", fmt.Errorf("%w: numActions must be >= 2, got %d",
			errs.ErrInvalidConfig, numActions))
	}
	return NewDimension(0, float64(numActions-1), uint(numActions-1), 1e-6)
}
