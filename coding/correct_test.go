package coding

import (
	"testing"

	"github.com/rl-lib/tilerl/internal/errs"
)

// newZeroOffsetCorrect builds a Correct coder with every tiling's offset
// pinned to zero, bypassing the random sampling newBase otherwise
// performs. Property S1 requires exercising the coder's coordinate
// arithmetic independently of the offset distribution, so this white-box
// helper substitutes for injecting a rigged RNG source.
func newZeroOffsetCorrect(dims []Dimension, numTilings int) (*Correct, error) {
	tilingSize := 1
	for _, d := range dims {
		tilingSize *= d.GridReal()
	}

	offsets := make([][]float64, numTilings)
	for t := range offsets {
		offsets[t] = make([]float64, len(dims))
	}

	radix := make([]int, len(dims))
	mult := 1
	for i, d := range dims {
		radix[i] = mult
		mult *= d.GridReal()
	}

	b := &base{
		dims:       dims,
		numTilings: numTilings,
		offsets:    offsets,
		weights:    make([]float64, numTilings*tilingSize),
	}
	return &Correct{base: b, radix: radix}, nil
}

func TestCorrectFeaturesDeterministicOffsets(t *testing.T) {
	dim, err := NewDimension(0, 1, 10, 1)
	if err != nil {
		t.Fatalf("NewDimension: %v", err)
	}
	tc, err := newZeroOffsetCorrect([]Dimension{dim}, 1)
	if err != nil {
		t.Fatalf("newZeroOffsetCorrect: %v", err)
	}

	cases := []struct {
		x    float64
		want int
	}{
		{0.0, 0},
		{1.0, 10},
		{0.55, 5},
	}
	for _, c := range cases {
		features, err := tc.Features([]float64{c.x})
		if err != nil {
			t.Fatalf("Features(%v): %v", c.x, err)
		}
		if len(features) != 1 || features[0] != c.want {
			t.Errorf("Features(%v) = %v, want [%d]", c.x, features, c.want)
		}
	}
}

func TestCorrectFeaturesOutOfDomain(t *testing.T) {
	dim, err := NewDimension(0, 1, 10, 1)
	if err != nil {
		t.Fatalf("NewDimension: %v", err)
	}
	tc, err := newZeroOffsetCorrect([]Dimension{dim}, 1)
	if err != nil {
		t.Fatalf("newZeroOffsetCorrect: %v", err)
	}

	if _, err := tc.Features([]float64{1.5}); !errs.IsOutOfDomain(err) {
		t.Errorf("Features(1.5) error = %v, want ErrOutOfDomain", err)
	}
}

func TestCorrectDistinctTilingsGetDistinctBlocks(t *testing.T) {
	dim, err := NewDimension(0, 1, 4, 1)
	if err != nil {
		t.Fatalf("NewDimension: %v", err)
	}
	tc, err := newZeroOffsetCorrect([]Dimension{dim}, 3)
	if err != nil {
		t.Fatalf("newZeroOffsetCorrect: %v", err)
	}

	features, err := tc.Features([]float64{0.5})
	if err != nil {
		t.Fatalf("Features: %v", err)
	}
	if len(features) != 3 {
		t.Fatalf("Features returned %d indices, want 3 (one per tiling)", len(features))
	}
	seen := make(map[int]bool)
	for _, f := range features {
		if seen[f] {
			t.Errorf("tilings collided on feature index %d", f)
		}
		seen[f] = true
	}
}
