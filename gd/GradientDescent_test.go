package gd

import (
	"math"
	"testing"

	"github.com/rl-lib/tilerl/internal/errs"
)

// fakeFeaturizer is a minimal in-memory Featurizer, letting tests drive
// GradientDescent.Update directly with hand-picked feature index sets
// rather than routing through a real coding.Coder.
type fakeFeaturizer struct {
	weights    map[int]float64
	numTilings int
}

func newFakeFeaturizer(numTilings int) *fakeFeaturizer {
	return &fakeFeaturizer{weights: make(map[int]float64), numTilings: numTilings}
}

func (f *fakeFeaturizer) Features(state []float64, action int) ([]int, error) {
	return nil, nil
}

func (f *fakeFeaturizer) Value(state []float64, action int) (float64, error) {
	return 0, nil
}

func (f *fakeFeaturizer) Weight(i int) float64 {
	return f.weights[i]
}

func (f *fakeFeaturizer) AddWeight(i int, delta float64) {
	f.weights[i] += delta
}

func (f *fakeFeaturizer) NumTilings() int {
	return f.numTilings
}

func TestWatkinsExploratoryZeroesTrace(t *testing.T) {
	coder := newFakeFeaturizer(1)
	g, err := New(coder, 0.1, 1.0, 0.9, Watkins)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := g.Update([]int{1}, []int{2}, 0, false, false); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, ok := g.trace[1]; !ok {
		t.Fatalf("expected trace to contain index 1 after first update, got %v", g.trace)
	}

	if _, err := g.Update([]int{3}, []int{4}, 0, false, true); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v, ok := g.trace[1]; ok {
		t.Errorf("exploratory Watkins update should zero old trace entries, index 1 = %v", v)
	}
	if v := g.trace[3]; v != 1.0 {
		t.Errorf("trace[3] = %v, want 1.0 (just set by F)", v)
	}
}

func TestSarsaNeverResetsTrace(t *testing.T) {
	coder := newFakeFeaturizer(1)
	g, err := New(coder, 0.1, 1.0, 0.9, Sarsa)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := g.Update([]int{1}, []int{2}, 0, false, false); err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Sarsa's "exploratory" flag is caller-supplied and, per gd.Learner,
	// never actually gets set true - but even if it were, Sarsa must not
	// reset the trace.
	if _, err := g.Update([]int{3}, []int{4}, 0, false, true); err != nil {
		t.Fatalf("Update: %v", err)
	}
	decayed := 1.0 * 1.0 * 0.9 // discount * lambda applied once
	if v := g.trace[1]; math.Abs(v-decayed) > 1e-9 {
		t.Errorf("trace[1] = %v, want %v (decayed, not reset)", v, decayed)
	}
}

func TestUpdateTDErrorSign(t *testing.T) {
	coder := newFakeFeaturizer(1)
	g, err := New(coder, 0.1, 1.0, 0, Sarsa)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	delta, err := g.Update([]int{0}, nil, 1.0, true, false)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if delta != 1.0 {
		t.Errorf("delta = %v, want 1.0 (reward - 0 estimate)", delta)
	}
	if got := coder.weights[0]; got <= 0 {
		t.Errorf("weight[0] = %v, want > 0 after a positive TD error", got)
	}
}

func TestUpdateRejectsNonFiniteDelta(t *testing.T) {
	coder := newFakeFeaturizer(1)
	coder.weights[0] = math.Inf(1)
	g, err := New(coder, 0.1, 1.0, 0.9, Sarsa)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := g.Update([]int{0}, nil, 0, true, false); !errs.IsNumeric(err) {
		t.Errorf("Update with infinite weight error = %v, want ErrNumeric", err)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	coder := newFakeFeaturizer(1)
	cases := []struct {
		name                          string
		stepSize, discount, lambda    float64
		variant                       Variant
	}{
		{"stepSize zero", 0, 1, 0.5, Sarsa},
		{"stepSize too large", 1.1, 1, 0.5, Sarsa},
		{"discount negative", 0.1, -0.1, 0.5, Sarsa},
		{"lambda too large", 0.1, 1, 1.1, Sarsa},
		{"unknown variant", 0.1, 1, 0.5, Variant(99)},
	}
	for _, c := range cases {
		if _, err := New(coder, c.stepSize, c.discount, c.lambda, c.variant); err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
		}
	}
}

func TestResetClearsTrace(t *testing.T) {
	coder := newFakeFeaturizer(1)
	g, err := New(coder, 0.1, 1.0, 0.9, Sarsa)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := g.Update([]int{1}, []int{2}, 1, false, false); err != nil {
		t.Fatalf("Update: %v", err)
	}
	g.Reset()
	if len(g.trace) != 0 {
		t.Errorf("trace after Reset = %v, want empty", g.trace)
	}
}
