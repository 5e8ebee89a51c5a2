// Command tilerl runs a short training loop for a tabular learner (Dyna-Q
// on the corridor) and a continuous linear learner (SARSA(lambda) on
// mountain car), printing a progress bar and the return of each run's final
// episode - a minimal, runnable demonstration of the library, in the
// shape of the teacher's own root main.go.
package main

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/rl-lib/tilerl/agent/linear"
	"github.com/rl-lib/tilerl/agent/tabular"
	"github.com/rl-lib/tilerl/coding"
	"github.com/rl-lib/tilerl/environment"
	"github.com/rl-lib/tilerl/environment/classiccontrol/mountaincar"
	"github.com/rl-lib/tilerl/environment/corridor"
	"github.com/rl-lib/tilerl/utils/progressbar"
)

const seed uint64 = 192382

func main() {
	fmt.Println("Dyna-Q on corridor:")
	runTabular()

	fmt.Println("\nSARSA(lambda) on mountain car:")
	runLinear()
}

func runTabular() {
	const episodes = 200

	env, err := corridor.New(20, 0, 0.99, 200)
	if err != nil {
		panic(err)
	}

	agent, err := tabular.NewDynaQ([]int{corridor.Left, corridor.Right},
		0.1, 0.99, 0.5, 0.1, 10, 0.1, 0.1, seed)
	if err != nil {
		panic(err)
	}

	bar := progressbar.NewManualProgressBar(40, episodes)
	for e := 0; e < episodes; e++ {
		ret := runEpisode(env, agent, []int{corridor.Left, corridor.Right})
		bar.Increment()
		bar.Display()
		if e == episodes-1 {
			fmt.Printf("\nfinal episode return: %.2f, model size: %d\n", ret, agent.ModelSize())
		}
	}
}

func runLinear() {
	const episodes = 100

	starter := environment.NewUniformStarter(
		[]r1.Interval{{Min: -0.01, Max: 0.01}, {Min: 0, Max: 0}}, seed)
	env := mountaincar.New(starter, 1.0, 1000)

	stateDims := []coding.Dimension{
		mustDimension(mountaincar.MinPosition, mountaincar.MaxPosition, 8, 1.0),
		mustDimension(-mountaincar.MaxSpeed, mountaincar.MaxSpeed, 8, 1.0),
	}
	agent, err := linear.NewSarsaCorrect(stateDims, mountaincar.NumActions, 8,
		0.1, 1.0, 0.9, 0.1, seed)
	if err != nil {
		panic(err)
	}

	bar := progressbar.NewManualProgressBar(40, episodes)
	for e := 0; e < episodes; e++ {
		ret := runEpisode(env, agent, []int{mountaincar.Left, mountaincar.Coast, mountaincar.Right})
		bar.Increment()
		bar.Display()
		if e == episodes-1 {
			fmt.Printf("\nfinal episode return: %.2f\n", ret)
		}
	}
}

func mustDimension(lo, hi float64, gridIdeal uint, generalization float64) coding.Dimension {
	d, err := coding.NewDimension(lo, hi, gridIdeal, generalization)
	if err != nil {
		panic(err)
	}
	return d
}

// learner is the subset of agent.Agent runEpisode needs to drive one
// environment episode.
type learner interface {
	Action(state []float64, actions []int) (int, error)
	Update(lastState []float64, lastAction int, reward float64,
		state []float64, action int, actions []int, terminal bool) (float64, error)
	Reset()
}

func runEpisode(env environment.Environment, agent learner, actions []int) float64 {
	agent.Reset()

	step := env.Reset()
	state := vecToSlice(step.Observation)
	action, err := agent.Action(state, actions)
	if err != nil {
		panic(err)
	}

	returns := 0.0
	discount := 1.0
	for {
		next, done := env.Step(action)
		nextState := vecToSlice(next.Observation)

		returns += discount * next.Reward
		discount *= next.Discount

		nextAction, err := agent.Action(nextState, actions)
		if err != nil {
			panic(err)
		}

		if _, err := agent.Update(state, action, next.Reward, nextState, nextAction, actions, done); err != nil {
			panic(err)
		}

		if done {
			break
		}
		state, action = nextState, nextAction
	}
	return returns
}

func vecToSlice(v mat.Vector) []float64 {
	s := make([]float64, v.Len())
	for i := range s {
		s[i] = v.AtVec(i)
	}
	return s
}
