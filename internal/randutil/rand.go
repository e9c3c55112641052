package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// All shuffles in a game draw from one of these so that a session can be
// replayed from its seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Resolve returns seed unchanged unless it is zero, in which case a
// time-derived seed is returned. The resolved seed is what gets logged.
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := int64(mix(uint64(time.Now().UnixNano())) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

// Derive returns the seed of the n-th game in a batch started from base.
// Derived seeds are independent of how the batch is split across workers.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
