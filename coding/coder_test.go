package coding

import "testing"

// newFixedOffsetBase builds a base with a single, explicitly chosen raw
// offset per tiling, bypassing newBase's random sampling. Property: grid()
// must apply dim.Generalization to that raw offset at every use, not just
// once when it was drawn - a regression test for that double application,
// which is only observable when Generalization != 1.
func newFixedOffsetBase(dims []Dimension, offsets [][]float64) *base {
	return &base{dims: dims, numTilings: len(offsets), offsets: offsets}
}

func TestGridAppliesGeneralizationAtUseTime(t *testing.T) {
	dim, err := NewDimension(0, 1, 10, 2)
	if err != nil {
		t.Fatalf("NewDimension: %v", err)
	}
	// A raw offset of 0.05: with generalisation (2) reapplied at use time,
	// the effective shift is 0.05*2 = 0.1, landing x=0 in grid cell 1. If
	// generalisation were dropped at use time, the shift would be 0.05 and
	// x=0 would stay in grid cell 0.
	b := newFixedOffsetBase([]Dimension{dim}, [][]float64{{0.05}})

	if got := b.grid([]float64{0}, 0, 0); got != 1 {
		t.Errorf("grid(0) = %d, want 1 (offset 0.05 scaled by generalisation 2)", got)
	}
}
