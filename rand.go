package hotloop

import "math/rand/v2"

// Rand is the source of every random draw in the simulation: road angles and
// lengths, car speeds, palette picks, particle spray. Tests substitute a
// scripted source to pin exact outcomes.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRand returns a PCG-backed Rand. The same seed always produces the same
// session.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randIndex returns a uniform index in [0, n). n must be positive.
func randIndex(r Rand, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
