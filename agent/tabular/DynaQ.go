package tabular

import (
	"github.com/rl-lib/tilerl/coding"
	"github.com/rl-lib/tilerl/gd"
	"github.com/rl-lib/tilerl/internal/errs"
	"github.com/rl-lib/tilerl/model"
	"github.com/rl-lib/tilerl/policy"
)

// DynaQ implements tabular Dyna-Q(lambda): Watkins's Q(lambda), with a
// learned environment model interleaving n simulated updates - sampled from
// (state, action) pairs actually experienced - with every real update.
type DynaQ struct {
	learner *gd.Learner
	planner *model.Dyna
}

// NewDynaQ constructs a tabular Dyna-Q agent. actions is the full legal
// action set. stepSize must be in (0, 1], discount and lambda in [0, 1],
// epsilon in [0, 1], n is the number of simulated updates performed per
// real update, and modelGreedy/modelStepSize configure the underlying
// model.StateActionTransition instances exactly as in model.New.
func NewDynaQ(actions []int, stepSize, discount, lambda, epsilon float64, n int,
	modelGreedy, modelStepSize float64, seed uint64) (*DynaQ, error) {

	coder := coding.NewTabularStateAction()
	p, err := policy.NewEGreedy(epsilon, seed)
	if err != nil {
		return nil, errs.Wrap("tabular.NewDynaQ", err)
	}
	learner, err := gd.NewLearner(coder, stepSize, discount, lambda, gd.Watkins, p)
	if err != nil {
		return nil, errs.Wrap("tabular.NewDynaQ", err)
	}
	planner, err := model.NewDyna(learner, actions, n, modelGreedy, modelStepSize, seed)
	if err != nil {
		return nil, errs.Wrap("tabular.NewDynaQ", err)
	}

	return &DynaQ{learner: learner, planner: planner}, nil
}

// Action selects an action for state among actions, using the wrapped
// learner's policy.
func (d *DynaQ) Action(state []float64, actions []int) (int, error) {
	return d.learner.Action(state, actions)
}

// Update folds the real transition into the learner, then performs the
// planner's simulated updates.
func (d *DynaQ) Update(lastState []float64, lastAction int, reward float64,
	state []float64, action int, actions []int, terminal bool) (float64, error) {
	return d.planner.Update(lastState, lastAction, reward, state, action, terminal)
}

// Reset clears the wrapped learner's eligibility trace
func (d *DynaQ) Reset() {
	d.learner.Reset()
}

// ModelSize returns the number of distinct (state, action) pairs the
// planner has learned a model for
func (d *DynaQ) ModelSize() int {
	return d.planner.Size()
}
