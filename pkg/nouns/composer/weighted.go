package composer

import "math/rand/v2"

// Source is the random integer generator the composer draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform integer in [0, n). n is always > 0.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewPCGSource returns a deterministic source for reproducible seeds.
func NewPCGSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WeightedIndex picks an index into a category of n entries. The draw is
// uniform over [0, n-1+extraWeightTowardZero] and anything past n-1 folds
// onto 0, so index 0 gains weight without touching the odds of any other
// index. ok is false for an empty category.
func WeightedIndex(src Source, n, extraWeightTowardZero int) (index int, ok bool) {
	if n <= 0 {
		return 0, false
	}
	if extraWeightTowardZero < 0 {
		extraWeightTowardZero = 0
	}
	draw := src.IntN(n + extraWeightTowardZero)
	if draw > n-1 {
		return 0, true
	}
	return draw, true
}
