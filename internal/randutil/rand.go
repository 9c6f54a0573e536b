// Package randutil derives reproducible *rand.Rand streams from a single seed.
package randutil

import (
	"math/rand"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Nearby seeds
// (0, 1, 2, ...) are mixed first so they do not produce correlated streams.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(Mix(seed)))
}

// Derive returns the stream for the i-th independent unit of work (a
// tournament, a worker) under seed. The result does not depend on the order
// in which units are scheduled.
func Derive(seed int64, i int) *rand.Rand {
	return New(DeriveSeed(seed, i))
}

// DeriveSeed returns the seed Derive uses, so it can be logged for replay
func DeriveSeed(seed int64, i int) int64 {
	return Mix(int64(uint64(seed) + uint64(i+1)*goldenRatio64))
}

// Mix scrambles a seed with the splitmix64 finaliser
func Mix(seed int64) int64 {
	x := uint64(seed)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Seed returns seed unless it is zero, in which case a time-based seed is chosen
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
