// Package randutil centralises how random sources are constructed so
// every simulator and CLI gets reproducible sequences from a single
// int64 seed.
package randutil

import (
	"time"

	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided
// int64. rand/v2's PCG wants two 64-bit seeds; both are derived from
// the input through a splitmix finalizer so nearby seeds still produce
// unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Child derives an independent generator from an existing one. Workers
// running in parallel each get a Child so trial order does not depend
// on scheduling.
func Child(rng *rand.Rand) *rand.Rand {
	return New(int64(rng.Uint64()))
}

// TimeSeed returns a wall-clock seed for callers that did not ask for
// a specific one.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
