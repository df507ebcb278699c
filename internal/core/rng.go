package core

import "math/rand/v2"

// Rand is the randomness a simulation draws from. Tests substitute scripted
// implementations to make stochastic rules deterministic.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntRange draws an int in the inclusive range [lo, hi] from src.
func IntRange(src Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// FloatRange draws a float in [lo, hi) from src.
func FloatRange(src Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// Sign returns -1 or +1 with equal probability.
func Sign(src Rand) int {
	if src.IntN(2) == 0 {
		return -1
	}
	return 1
}
