// Package gd implements the gradient-descent core shared by every learner
// in this module: an eligibility-trace TD(lambda) update over a sparse
// linear feature representation, plugging in either SARSA(lambda)'s
// on-policy semantics or Watkins's Q(lambda) off-policy semantics. Which
// learner "family" (tabular or continuous linear) it drives is entirely a
// property of the coding.Coder passed in - the update itself never
// touches the coder's internals beyond Weight, AddWeight, and NumTilings.
package gd

import (
	"fmt"
	"math"

	"github.com/rl-lib/tilerl/internal/errs"
)

// Variant selects how the eligibility trace behaves when the executed
// action was exploratory rather than the target policy's own choice.
type Variant int

const (
	// Sarsa never resets the trace: it is the on-policy SARSA(lambda)
	// update, which bootstraps from the value of the action actually
	// taken next.
	Sarsa Variant = iota
	// Watkins zeroes the trace whenever the executed action differs from
	// the greedy action, cutting credit assignment at the point behaviour
	// diverged from the greedy policy. The TD target is still the value of
	// the next (state, action) features passed to Update; it is not
	// replaced by the greedy action's value.
	Watkins
)

// traceEpsilon is the magnitude below which a decayed trace entry is
// dropped from the sparse trace map rather than carried at floating-point
// noise.
const traceEpsilon = 1e-6

// Featurizer maps a (state, action) pair to a set of active linear
// feature indices and exposes the shared weight vector those indices
// index into. coding.LinearStateAction and coding.TabularStateAction both
// implement it.
type Featurizer interface {
	Features(state []float64, action int) ([]int, error)
	Value(state []float64, action int) (float64, error)
	Weight(i int) float64
	AddWeight(i int, delta float64)
	NumTilings() int
}

// GradientDescent implements the sparse eligibility-trace TD(lambda)
// weight update. A trace is represented as map[int]float64 rather than a
// dense array sized to the coder's full weight vector, since only a tiny
// fraction of tiles are ever active in a hot training loop.
type GradientDescent struct {
	coder     Featurizer
	stepSize  float64
	discount  float64
	lambda    float64
	variant   Variant
	trace     map[int]float64
}

// New constructs a GradientDescent update rule over coder. stepSize must
// be in (0, 1], discount in [0, 1], and lambda in [0, 1].
func New(coder Featurizer, stepSize, discount, lambda float64, variant Variant) (*GradientDescent, error) {
	if stepSize <= 0 || stepSize > 1 {
		return nil, errs.Wrap("gd.New", fmt.Errorf("%w: stepSize must be in (0, 1], got %v",
			errs.ErrInvalidConfig, stepSize))
	}
	if discount < 0 || discount > 1 {
		return nil, errs.Wrap("gd.New", fmt.Errorf("%w: discount must be in [0, 1], got %v",
			errs.ErrInvalidConfig, discount))
	}
	if lambda < 0 || lambda > 1 {
		return nil, errs.Wrap("gd.New", fmt.Errorf("%w: lambda must be in [0, 1], got %v",
			errs.ErrInvalidConfig, lambda))
	}
	if variant != Sarsa && variant != Watkins {
		return nil, errs.Wrap("gd.New", fmt.Errorf("%w: unknown variant %d", errs.ErrInvalidConfig, variant))
	}

	return &GradientDescent{
		coder:    coder,
		stepSize: stepSize,
		discount: discount,
		lambda:   lambda,
		variant:  variant,
		trace:    make(map[int]float64),
	}, nil
}

// Reset clears the eligibility trace, as required at the start of every
// new episode.
func (g *GradientDescent) Reset() {
	g.trace = make(map[int]float64)
}

// Update performs one TD(lambda) step given the active features F of the
// (state, action) pair just left, the active features Fnext of the pair
// bootstrapped from, the observed reward, whether the transition ended the
// episode, and - for the Watkins variant only - whether the action
// actually taken was exploratory (differed from the greedy action). It
// returns the TD error computed for this step.
func (g *GradientDescent) Update(F, Fnext []int, reward float64, terminal, exploratory bool) (float64, error) {
	current := g.sum(F)
	target := 0.0
	if !terminal {
		target = g.sum(Fnext)
	}

	delta := reward + g.discount*target - current
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0, errs.Wrap("GradientDescent.Update", errs.ErrNumeric)
	}

	if g.variant == Watkins && exploratory {
		g.trace = make(map[int]float64)
	}

	decay := g.discount * g.lambda
	for i, e := range g.trace {
		e *= decay
		if math.Abs(e) < traceEpsilon {
			delete(g.trace, i)
			continue
		}
		g.trace[i] = e
	}
	for _, i := range F {
		g.trace[i] = 1.0
	}

	numTilings := float64(g.coder.NumTilings())
	stepPerTiling := g.stepSize / numTilings
	for i, e := range g.trace {
		step := stepPerTiling * delta * e
		if math.IsNaN(step) || math.IsInf(step, 0) {
			return 0, errs.Wrap("GradientDescent.Update", errs.ErrNumeric)
		}
		g.coder.AddWeight(i, step)
	}

	return delta, nil
}

func (g *GradientDescent) sum(features []int) float64 {
	sum := 0.0
	for _, i := range features {
		sum += g.coder.Weight(i)
	}
	return sum
}
