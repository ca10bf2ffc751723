package seating

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/seatplan/pkg/roster"
)

// ShuffleUnlocked shuffles the unlocked people among the unlocked positions
// of persons. Locked people keep their index. The input is not modified.
// A nil rng uses a freshly seeded generator.
func ShuffleUnlocked(persons []roster.Person, rng *rand.Rand) []roster.Person {
	if rng == nil {
		rng = NewRand(NewSeed())
	}

	result := slices.Clone(persons)
	free := make([]roster.Person, 0, len(result))
	for _, p := range result {
		if !p.Locked {
			free = append(free, p)
		}
	}
	free = shuffled(rng, free)

	next := 0
	for i, p := range result {
		if !p.Locked {
			result[i] = free[next]
			next++
		}
	}
	return result
}
