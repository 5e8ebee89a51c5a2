package coding

import (
	"fmt"

	"gonum.org/v1/gonum/mathext/prng"

	"github.com/rl-lib/tilerl/internal/errs"
)

// HashVariant selects the function Hashed uses to fold a tiling's grid
// coordinates down into an index within its fixed-size weight vector.
type HashVariant int

const (
	// UNH hashes the (tiling, grid-coordinate...) tuple against a small
	// fixed table of large primes, combined by XOR and a multiplicative
	// mix (the "universal hash" family tile coding has traditionally
	// used, per Miller & Sutton).
	UNH HashVariant = iota
	// MT19937 seeds a Mersenne Twister generator from the tuple and takes
	// one draw modulo the table size. Slower than UNH but spreads
	// structured tuples (e.g. those differing in only one coordinate)
	// more evenly across the table.
	MT19937
)

// unhPrimes is a fixed table of large primes used to combine a tuple's
// integers into a single hash. Values are unrelated to the classic
// rlpy/Sutton table; any fixed table of large, mutually distinct primes
// gives the same asymptotic collision behaviour.
var unhPrimes = [...]uint64{
	2654435761, 2246822519, 3266489917, 668265263,
	374761393, 2870177467, 3097854569, 1064986253,
}

func unhHash(tuple []int, w int) int {
	var h uint64 = 2166136261
	for i, v := range tuple {
		h ^= uint64(uint32(v)) * unhPrimes[i%len(unhPrimes)]
		h *= 16777619
		h ^= h >> 15
	}
	return int(h % uint64(w))
}

func mt19937Hash(tuple []int, w int) int {
	var seed uint64 = 14695981039346656037
	for _, v := range tuple {
		seed ^= uint64(uint32(v))
		seed *= 1099511628211
	}
	src := prng.NewMT19937_64()
	src.Seed(seed)
	return int(src.Uint64() % uint64(w))
}

// Hashed is a tile coder whose weight vector has a fixed size regardless
// of dimensionality: each tiling's grid coordinates are hashed directly
// into an index, at the cost of a small collision probability once the
// number of live tiles approaches the table size.
type Hashed struct {
	*base
	tableSize int
	variant   HashVariant
}

// NewHashed constructs a Hashed coder over dims using numTilings tilings
// sharing a single table of tableSize weights, seeded deterministically
// from seed. Every tiling's grid coordinates are hashed together with its
// own ordinal, so collisions occur only when the hash function itself
// aliases two distinct (tiling, coordinates) tuples into the same slot,
// not merely because two tilings share a table.
func NewHashed(dims []Dimension, numTilings, tableSize int, seed uint64, variant HashVariant) (*Hashed, error) {
	if tableSize < 1 {
		return nil, errs.Wrap("coding.NewHashed", fmt.Errorf("%w: tableSize must be >= 1, got %d",
			errs.ErrInvalidConfig, tableSize))
	}
	if variant != UNH && variant != MT19937 {
		return nil, errs.Wrap("coding.NewHashed", fmt.Errorf("%w: unknown hash variant %d",
			errs.ErrInvalidConfig, variant))
	}

	b, err := newBase(dims, numTilings, tableSize, seed)
	if err != nil {
		return nil, errs.Wrap("coding.NewHashed", err)
	}

	return &Hashed{base: b, tableSize: tableSize, variant: variant}, nil
}

// Dimension returns the number of input dimensions this coder was built
// over.
func (h *Hashed) Dimension() int {
	return len(h.dims)
}

func (h *Hashed) hash(tuple []int) int {
	switch h.variant {
	case MT19937:
		return mt19937Hash(tuple, h.tableSize)
	default:
		return unhHash(tuple, h.tableSize)
	}
}

// Features returns one index per tiling: the tiling's ordinal plus its
// per-dimension grid coordinates are hashed into the shared table.
func (h *Hashed) Features(x []float64) ([]int, error) {
	if err := h.checkDomain(x); err != nil {
		return nil, errs.Wrap("Hashed.Features", err)
	}

	tuple := make([]int, 1+len(h.dims))
	features := make([]int, h.numTilings)
	for t := 0; t < h.numTilings; t++ {
		tuple[0] = t
		for d := range h.dims {
			tuple[1+d] = h.grid(x, t, d)
		}
		features[t] = h.hash(tuple)
	}
	return features, nil
}

// Value returns the sum of weights active for x
func (h *Hashed) Value(x []float64) (float64, error) {
	features, err := h.Features(x)
	if err != nil {
		return 0, errs.Wrap("Hashed.Value", err)
	}
	return h.value(features), nil
}
