package tabular

import (
	"testing"

	"github.com/rl-lib/tilerl/environment/corridor"
)

// vecToSlice mirrors cmd/tilerl's helper: corridor's 1-D observation as a
// plain []float64, the shape every learner in this module consumes.
func vecToSlice(v interface {
	Len() int
	AtVec(int) float64
}) []float64 {
	s := make([]float64, v.Len())
	for i := range s {
		s[i] = v.AtVec(i)
	}
	return s
}

// TestSarsaConvergesOnTwoStateCorridor is property S2: starting from zero
// weights, a fully greedy (epsilon=0) tabular SARSA(lambda) learner
// recovers the corridor's optimal policy - moving toward the terminal
// state - within a handful of episodes.
func TestSarsaConvergesOnTwoStateCorridor(t *testing.T) {
	env, err := corridor.New(2, 0, 1.0, 50)
	if err != nil {
		t.Fatalf("corridor.New: %v", err)
	}
	agent, err := NewSarsa(0.5, 1.0, 0.9, 0, 1)
	if err != nil {
		t.Fatalf("NewSarsa: %v", err)
	}
	actions := []int{corridor.Right, corridor.Left}

	for episode := 0; episode < 3; episode++ {
		agent.Reset()
		step := env.Reset()
		state := vecToSlice(step.Observation)
		action, err := agent.Action(state, actions)
		if err != nil {
			t.Fatalf("Action: %v", err)
		}

		for {
			next, done := env.Step(action)
			nextState := vecToSlice(next.Observation)
			nextAction, err := agent.Action(nextState, actions)
			if err != nil {
				t.Fatalf("Action: %v", err)
			}
			if _, err := agent.Update(state, action, next.Reward, nextState, nextAction, actions, done); err != nil {
				t.Fatalf("Update: %v", err)
			}
			if done {
				break
			}
			state, action = nextState, nextAction
		}
	}

	start, err := corridor.New(2, 0, 1.0, 50)
	if err != nil {
		t.Fatalf("corridor.New: %v", err)
	}
	startState := vecToSlice(start.Reset().Observation)
	greedy, err := agent.Action(startState, actions)
	if err != nil {
		t.Fatalf("Action: %v", err)
	}
	if greedy != corridor.Right {
		t.Errorf("greedy action from start state = %d, want %d (Right, toward terminal)",
			greedy, corridor.Right)
	}
}
