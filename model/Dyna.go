package model

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/rl-lib/tilerl/internal/errs"
)

// Learner is the subset of agent.Learner Dyna needs to interleave
// simulated updates with real ones. Declared locally so this package does
// not need to import agent; agent.Learner satisfies it structurally.
type Learner interface {
	Action(state []float64, actions []int) (int, error)
	Update(lastState []float64, lastAction int, reward float64,
		state []float64, action int, actions []int, terminal bool) (float64, error)
}

type stateAction struct {
	state  []float64
	action int
}

// Dyna wraps a Learner with a learned environment model, and interleaves
// n simulated updates - each drawn from a (state, action) pair sampled
// uniformly from those actually experienced, and a successor state
// sampled from that pair's StateActionTransition - with every real
// environment update. Simulated transitions are always treated as
// non-terminal, since the model does not record whether a transition
// ended an episode; this concentrates planning on backing up the value
// of ongoing behaviour rather than episode boundaries, and is a deliberate
// simplification of the general Dyna architecture.
type Dyna struct {
	learner Learner
	actions []int
	n       int

	greedy   float64
	stepSize float64

	models     map[string]*StateActionTransition
	order      []string
	saOf       map[string]stateAction
	stateByKey map[string][]float64

	rng *rand.Rand
}

// NewDyna constructs a Dyna planner around learner. actions is the full
// legal action set, assumed homogeneous across every state, as is
// standard for tabular Dyna. n is the number of simulated updates
// performed per real update; greedy and stepSize configure each
// per-(state,action) StateActionTransition exactly as in model.New.
func NewDyna(learner Learner, actions []int, n int, greedy, stepSize float64, seed uint64) (*Dyna, error) {
	if n < 0 {
		return nil, errs.Wrap("model.NewDyna", fmt.Errorf("%w: n must be >= 0, got %d",
			errs.ErrInvalidConfig, n))
	}
	if len(actions) == 0 {
		return nil, errs.Wrap("model.NewDyna", fmt.Errorf("%w: at least one action required",
			errs.ErrInvalidConfig))
	}

	return &Dyna{
		learner:    learner,
		actions:    actions,
		n:          n,
		greedy:     greedy,
		stepSize:   stepSize,
		models:     make(map[string]*StateActionTransition),
		saOf:       make(map[string]stateAction),
		stateByKey: make(map[string][]float64),
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

func encodeState(state []float64) string {
	return fmt.Sprint(state)
}

func encodeSA(state []float64, action int) string {
	return fmt.Sprintf("%s|%d", encodeState(state), action)
}

// Update performs the real update (lastState, lastAction) -> reward ->
// (state, action), records the transition in this pair's model, then
// performs n simulated updates sampled from the models accumulated so
// far. It returns the TD error of the real update.
func (d *Dyna) Update(lastState []float64, lastAction int, reward float64,
	state []float64, action int, terminal bool) (float64, error) {

	delta, err := d.learner.Update(lastState, lastAction, reward, state, action, d.actions, terminal)
	if err != nil {
		return 0, errs.Wrap("Dyna.Update", err)
	}

	saKey := encodeSA(lastState, lastAction)
	m, ok := d.models[saKey]
	if !ok {
		m, err = New(d.greedy, d.stepSize, d.rng.Uint64())
		if err != nil {
			return 0, errs.Wrap("Dyna.Update", err)
		}
		d.models[saKey] = m
		d.order = append(d.order, saKey)
		d.saOf[saKey] = stateAction{lastState, lastAction}
	}

	nextKey := encodeState(state)
	d.stateByKey[nextKey] = state
	m.Update(nextKey, reward)

	for i := 0; i < d.n; i++ {
		if err := d.plan(); err != nil {
			return delta, errs.Wrap("Dyna.Update", err)
		}
	}

	return delta, nil
}

// plan performs one simulated update: pick a previously experienced
// (state, action) pair uniformly at random, sample a successor state and
// its reward estimate from that pair's model, and fold the resulting
// simulated transition into the learner exactly as a real one.
func (d *Dyna) plan() error {
	if len(d.order) == 0 {
		return nil
	}

	pick := d.order[d.rng.Intn(len(d.order))]
	sa := d.saOf[pick]
	m := d.models[pick]

	nextKey, err := m.NextState()
	if err != nil {
		if errs.IsModelEmpty(err) {
			return nil
		}
		return err
	}

	simReward, err := m.Reward(nextKey)
	if err != nil {
		if errs.IsModelMissingKey(err) {
			return nil
		}
		return err
	}

	nextState, ok := d.stateByKey[nextKey]
	if !ok {
		return nil
	}

	nextAction, err := d.learner.Action(nextState, d.actions)
	if err != nil {
		return err
	}

	if _, err := d.learner.Update(sa.state, sa.action, simReward, nextState, nextAction, d.actions, false); err != nil {
		return err
	}
	return nil
}

// Size returns the number of distinct (state, action) pairs a model has
// been learned for
func (d *Dyna) Size() int {
	return len(d.order)
}
