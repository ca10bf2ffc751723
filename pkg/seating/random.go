package seating

import (
	"math/rand/v2"
	"slices"
)

// NewRand returns a deterministic generator for seed. Passing the same seed
// to [Solve] or [ShuffleUnlocked] reproduces the same seating.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewSeed draws a fresh seed from the runtime's global source.
func NewSeed() uint64 {
	return rand.Uint64()
}

func shuffled[T any](rng *rand.Rand, s []T) []T {
	out := slices.Clone(s)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
