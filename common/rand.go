package common

import (
	"math"
	"math/rand/v2"
)

// Rand is the subset of *rand.Rand the simulation draws from. Tests may
// substitute a scripted source.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a deterministic PCG source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RangeFloat draws uniformly from [lo, hi).
func RangeFloat(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// InsideDisk draws a point uniformly inside a disk of the given radius on
// the horizontal plane, centred on the origin.
func InsideDisk(r Rand, radius float64) (x, z float64) {
	if radius <= 0 {
		return 0, 0
	}
	dist := radius * math.Sqrt(r.Float64())
	theta := 2 * math.Pi * r.Float64()
	return dist * math.Cos(theta), dist * math.Sin(theta)
}
