// Package seating assigns people to seats under neighbor constraints.
//
// A seating chart is reduced to two inputs before it reaches this package: the
// number of seats and a list of [Edge] values naming which seats count as
// neighbors. [NormalizeEdges] produces those edges from the persisted "a-b"
// seat ID pairs, ranking live seat IDs in ascending order.
//
// [Solve] performs a randomized backtracking search that places each neighbor
// group from a [roster.Roster] on a connected seat pair, then fills the rest
// of the seats at random. [ShuffleUnlocked] is the unconstrained fallback used
// when a roster declares no groups.
//
// All randomness flows through a *rand.Rand. Build one with [NewRand] to make
// results reproducible:
//
//	rng := seating.NewRand(42)
//	seats, err := seating.Solve(r, edges, len(ids), &seating.Options{Rand: rng})
//
// The package holds no global state and is safe for concurrent use as long as
// each call gets its own generator.
package seating
