package tabular

import (
	"testing"

	"github.com/rl-lib/tilerl/environment/corridor"
)

// TestDynaQAcceleratesConvergence is property S3: the same corridor as
// TestSarsaConvergesOnTwoStateCorridor, but with n=50 planning updates
// per real step, the greedy policy should be correct within even fewer
// episodes.
func TestDynaQAcceleratesConvergence(t *testing.T) {
	env, err := corridor.New(2, 0, 1.0, 50)
	if err != nil {
		t.Fatalf("corridor.New: %v", err)
	}
	actions := []int{corridor.Right, corridor.Left}
	agent, err := NewDynaQ(actions, 0.5, 1.0, 0.9, 0, 50, 0.1, 0.5, 1)
	if err != nil {
		t.Fatalf("NewDynaQ: %v", err)
	}

	for episode := 0; episode < 2; episode++ {
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
	if agent.ModelSize() == 0 {
		t.Error("ModelSize() = 0, expected the planner to have learned at least one transition")
	}
}
