// Package randutil derives reproducible random streams for simulations.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
// rand/v2's PCG needs two 64-bit words, both derived here so every call site
// gets the same sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed of the index'th independent stream under seed.
// Parallel runs use one derived stream each so their outcomes are uncorrelated.
func Derive(seed int64, index int) int64 {
	return int64(mix(uint64(seed) + uint64(index+1)*goldenRatio64))
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
