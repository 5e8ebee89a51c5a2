package coding

import "testing"

func newDims(t *testing.T, n int) []Dimension {
	t.Helper()
	dims := make([]Dimension, n)
	for i := range dims {
		d, err := NewDimension(0, 1, 10, 1)
		if err != nil {
			t.Fatalf("NewDimension: %v", err)
		}
		dims[i] = d
	}
	return dims
}

func TestHashedDimensionAndSize(t *testing.T) {
	dims := newDims(t, 2)
	h, err := NewHashed(dims, 4, 100, 1, UNH)
	if err != nil {
		t.Fatalf("NewHashed: %v", err)
	}
	if got := h.Dimension(); got != 2 {
		t.Errorf("Dimension() = %d, want 2", got)
	}
	if got := h.Size(); got != 100 {
		t.Errorf("Size() = %d, want 100", got)
	}
	if got := h.NumTilings(); got != 4 {
		t.Errorf("NumTilings() = %d, want 4", got)
	}
}

func TestHashedFeaturesWithinTable(t *testing.T) {
	dims := newDims(t, 3)
	for _, variant := range []HashVariant{UNH, MT19937} {
		h, err := NewHashed(dims, 8, 37, 7, variant)
		if err != nil {
			t.Fatalf("NewHashed: %v", err)
		}
		features, err := h.Features([]float64{0.1, 0.5, 0.9})
		if err != nil {
			t.Fatalf("Features: %v", err)
		}
		if len(features) != 8 {
			t.Fatalf("Features returned %d indices, want 8", len(features))
		}
		for _, f := range features {
			if f < 0 || f >= 37 {
				t.Errorf("feature index %d out of table range [0, 37)", f)
			}
		}
	}
}

func TestHashedFeaturesDeterministic(t *testing.T) {
	dims := newDims(t, 2)
	h, err := NewHashed(dims, 4, 100, 42, UNH)
	if err != nil {
		t.Fatalf("NewHashed: %v", err)
	}

	x := []float64{0.3, 0.7}
	first, err := h.Features(x)
	if err != nil {
		t.Fatalf("Features: %v", err)
	}
	second, err := h.Features(x)
	if err != nil {
		t.Fatalf("Features: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("Features length changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Features(%v) not deterministic: %v vs %v", x, first, second)
		}
	}
}

func TestNewHashedRejectsInvalidConfig(t *testing.T) {
	dims := newDims(t, 1)
	if _, err := NewHashed(dims, 4, 0, 1, UNH); err == nil {
		t.Error("NewHashed with tableSize=0 should fail")
	}
	if _, err := NewHashed(dims, 4, 10, 1, HashVariant(99)); err == nil {
		t.Error("NewHashed with unknown variant should fail")
	}
}
