// Package model implements the environment model Dyna-style planners
// learn alongside a control algorithm: for each (state, action) pair
// actually experienced, a StateActionTransition tracks an evolving
// frequency distribution over successor states and the reward most
// recently observed on transitioning to each of them. Dyna
// interleaves simulated updates sampled from these models with each real
// environment update.
package model

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rl-lib/tilerl/internal/errs"
)

// StateActionTransition models the successor-state and reward
// distribution observed after taking one particular action in one
// particular state. Successor states are identified by an arbitrary
// string key, letting callers key by whatever encoding of state suits
// them (see agent/tabular and model.Dyna).
type StateActionTransition struct {
	freq   map[string]float64
	reward map[string]float64
	keys   []string // fixed iteration order: append-only, insertion order

	greedy   float64
	stepSize float64
	source   rand.Source
}

// New constructs an empty StateActionTransition. greedy is the
// probability NextState samples from the learned frequency distribution
// rather than uniformly over every successor state seen so far; it must
// be in [0, 1]. stepSize controls how quickly the frequency estimates
// track new observations; it must be in (0, 1]. Reward estimates always
// move at rate 1 (see Update).
func New(greedy, stepSize float64, seed uint64) (*StateActionTransition, error) {
	if greedy < 0 || greedy > 1 {
		return nil, errs.Wrap("model.New", fmt.Errorf("%w: greedy must be in [0, 1], got %v",
			errs.ErrInvalidConfig, greedy))
	}
	if stepSize <= 0 || stepSize > 1 {
		return nil, errs.Wrap("model.New", fmt.Errorf("%w: stepSize must be in (0, 1], got %v",
			errs.ErrInvalidConfig, stepSize))
	}
	return &StateActionTransition{
		freq:     make(map[string]float64),
		reward:   make(map[string]float64),
		greedy:   greedy,
		stepSize: stepSize,
		source:   rand.NewSource(seed),
	}, nil
}

// Update folds one observed transition to nextState, with the given
// reward, into the model. nextState is inserted into the frequency and
// reward maps with a default of 0 if not already present. Every other
// known successor's frequency decays toward 0, and nextState's frequency
// moves toward 1, both at rate stepSize - an exponential moving average
// that lets the model track a nonstationary transition distribution.
// nextState's reward estimate moves toward the observed reward at rate 1,
// so it always reflects only the most recent transition to nextState.
func (m *StateActionTransition) Update(nextState string, reward float64) {
	if _, ok := m.freq[nextState]; !ok {
		m.freq[nextState] = 0
		m.reward[nextState] = 0
		m.keys = append(m.keys, nextState)
	}

	for _, k := range m.keys {
		if k == nextState {
			continue
		}
		m.freq[k] += m.stepSize * (0 - m.freq[k])
	}
	m.freq[nextState] += m.stepSize * (1 - m.freq[nextState])
	m.reward[nextState] += 1.0 * (reward - m.reward[nextState])
}

// NextState samples a successor state: with probability greedy, from the
// learned frequency distribution (successor states weighted by their
// current frequency estimate); otherwise, uniformly over every successor
// state ever observed. It returns ErrModelEmpty if no transition has ever
// been recorded.
func (m *StateActionTransition) NextState() (string, error) {
	if len(m.keys) == 0 {
		return "", errs.Wrap("StateActionTransition.NextState", errs.ErrModelEmpty)
	}

	u := distuv.Uniform{Min: 0, Max: 1, Src: m.source}.Rand()
	if u > m.greedy {
		idx := int(distuv.Uniform{Min: 0, Max: float64(len(m.keys)), Src: m.source}.Rand())
		if idx >= len(m.keys) {
			idx = len(m.keys) - 1
		}
		return m.keys[idx], nil
	}

	sum := 0.0
	for _, k := range m.keys {
		sum += m.freq[k]
	}
	if sum <= 0 {
		idx := int(distuv.Uniform{Min: 0, Max: float64(len(m.keys)), Src: m.source}.Rand())
		if idx >= len(m.keys) {
			idx = len(m.keys) - 1
		}
		return m.keys[idx], nil
	}

	target := distuv.Uniform{Min: 0, Max: sum, Src: m.source}.Rand()
	running := 0.0
	for _, k := range m.keys {
		running += m.freq[k]
		if running > target {
			return k, nil
		}
	}
	return m.keys[len(m.keys)-1], nil
}

// Reward returns the current reward estimate for the transition to
// state. It returns ErrModelMissingKey if state has never been observed
// as a successor of this (state, action) pair.
func (m *StateActionTransition) Reward(state string) (float64, error) {
	r, ok := m.reward[state]
	if !ok {
		return 0, errs.Wrap("StateActionTransition.Reward", errs.ErrModelMissingKey)
	}
	return r, nil
}

// Size returns the number of distinct successor states observed
func (m *StateActionTransition) Size() int {
	return len(m.keys)
}
