// Package agent defines the contracts a control algorithm must satisfy to
// drive an environment.Environment, and hosts the tabular (agent/tabular)
// and continuous linear (agent/linear) families of learners built on top
// of gd.GradientDescent.
package agent

// Learner is the contract every control algorithm in this module
// implements: pick an action given the current state and the legal action
// set, and fold one observed transition into the value estimate. Both
// tabular and linear learners implement it identically, differing only in
// which coding.Coder backs their gd.GradientDescent.
type Learner interface {
	// Action selects an action for state from the legal actions in
	// actions.
	Action(state []float64, actions []int) (int, error)
	// Update folds the transition (lastState, lastAction) -> reward ->
	// (state, action) into the learner's value estimate, where action is
	// the action actually selected for state. It returns the TD error
	// computed for this transition.
	Update(lastState []float64, lastAction int, reward float64,
		state []float64, action int, actions []int, terminal bool) (float64, error)
	// Reset clears any state carried between episodes, such as an
	// eligibility trace.
	Reset()
}

// Policy selects an action given a snapshot of estimated action values.
// policy.EGreedy and policy.Softmax both implement it. A Learner picks its
// own Policy internally at construction time, rather than an Agent
// composing the two independently, so that a Learner's action selection
// always sees the same value estimates it is updating.
type Policy interface {
	SelectAction(values map[int]float64) int
}

// Agent is the interface experiment drivers such as cmd/tilerl consume:
// every concrete learner in agent/tabular and agent/linear implements it.
type Agent interface {
	Learner
}
