package coding

import (
	"fmt"

	"github.com/rl-lib/tilerl/internal/errs"
)

// LinearStateAction adapts a continuous Coder (Correct or Hashed) built
// over len(stateDims)+1 dimensions - the state dimensions plus one
// trailing action dimension, following the original tile-coding
// template's STATE_DIM/ACTION_DIM split - into a coder of (state, action)
// pairs, the shape gd.GradientDescent and gd.Learner operate over.
type LinearStateAction struct {
	coder Coder
}

// NewLinearStateAction wraps coder, which must have been constructed with
// a trailing dimension built by NewActionDimension.
func NewLinearStateAction(coder Coder) *LinearStateAction {
	return &LinearStateAction{coder: coder}
}

func (s *LinearStateAction) join(state []float64, action int) []float64 {
	x := make([]float64, len(state)+1)
	copy(x, state)
	x[len(state)] = float64(action)
	return x
}

// Features returns the active tile indices for (state, action)
func (s *LinearStateAction) Features(state []float64, action int) ([]int, error) {
	f, err := s.coder.Features(s.join(state, action))
	if err != nil {
		return nil, errs.Wrap("LinearStateAction.Features", err)
	}
	return f, nil
}

// Value returns the estimated action value of (state, action)
func (s *LinearStateAction) Value(state []float64, action int) (float64, error) {
	v, err := s.coder.Value(s.join(state, action))
	if err != nil {
		return 0, errs.Wrap("LinearStateAction.Value", err)
	}
	return v, nil
}

func (s *LinearStateAction) Weight(i int) float64            { return s.coder.Weight(i) }
func (s *LinearStateAction) AddWeight(i int, delta float64)  { s.coder.AddWeight(i, delta) }
func (s *LinearStateAction) NumTilings() int                 { return s.coder.NumTilings() }
func (s *LinearStateAction) Size() int                       { return s.coder.Size() }

// TabularStateAction adapts a Tabular coder into a coder of (state,
// action) pairs by string-encoding the pair into a single lookup key.
// Coding is exact: two states compare equal as keys only if their float64
// representations are identical, so it is only suitable for the small,
// discrete-valued state spaces tabular learners are meant for.
type TabularStateAction struct {
	coder *Tabular
}

// NewTabularStateAction wraps an empty Tabular coder
func NewTabularStateAction() *TabularStateAction {
	return &TabularStateAction{coder: NewTabular()}
}

func key(state []float64, action int) string {
	return fmt.Sprintf("%v|%d", state, action)
}

// Features returns the single feature index representing (state, action)
func (s *TabularStateAction) Features(state []float64, action int) ([]int, error) {
	return s.coder.Features(key(state, action)), nil
}

// Value returns the estimated action value of (state, action), or 0 if
// never seen
func (s *TabularStateAction) Value(state []float64, action int) (float64, error) {
	return s.coder.Value(key(state, action)), nil
}

func (s *TabularStateAction) Weight(i int) float64           { return s.coder.Weight(i) }
func (s *TabularStateAction) AddWeight(i int, delta float64) { s.coder.AddWeight(i, delta) }
func (s *TabularStateAction) NumTilings() int                { return s.coder.NumTilings() }
func (s *TabularStateAction) Size() int                      { return s.coder.Size() }
