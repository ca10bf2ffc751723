package seating

import (
	stderrors "errors"
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/roster"
)

const (
	// DefaultMaxSteps bounds the number of edge placements the search may try.
	DefaultMaxSteps = 200_000

	// DefaultReshuffleProbability is the chance, per placement call, that the
	// remaining edges are reshuffled once more before the cluster's own shuffle.
	DefaultReshuffleProbability = 0.2
)

var (
	// ErrInfeasible is returned (wrapped in an INFEASIBLE error) when no
	// seating places every neighbor group on connected seats.
	ErrInfeasible = stderrors.New("no seating satisfies the neighbor constraints")

	// ErrStepLimit is returned when the search gives up after MaxSteps
	// placements. It matches ErrInfeasible under errors.Is.
	ErrStepLimit = fmt.Errorf("%w: search step limit reached", ErrInfeasible)
)

const emptySeat = -1

// Options tunes [Solve]. A nil *Options selects the defaults.
type Options struct {
	// Rand drives every random choice. Nil means a freshly seeded generator.
	Rand *rand.Rand

	// MaxSteps caps edge placements; 0 means DefaultMaxSteps.
	MaxSteps int

	// ReshuffleProbability is the per-call chance of an extra edge shuffle.
	// Negative values disable it; 0 means DefaultReshuffleProbability.
	ReshuffleProbability float64
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Rand == nil {
		out.Rand = NewRand(NewSeed())
	}
	if out.MaxSteps <= 0 {
		out.MaxSteps = DefaultMaxSteps
	}
	if out.ReshuffleProbability == 0 {
		out.ReshuffleProbability = DefaultReshuffleProbability
	}
	return out
}

// Stats describes one solver run.
type Stats struct {
	People   int // flattened roster size
	Groups   int // neighbor groups placed
	Locked   int // locked people seated first
	Edges    int // usable edges
	Steps    int // edge placements tried
	Restored int // placements undone while backtracking
}

// Solve seats the roster on seatCount seats so that both members of every
// group sit on seats joined by one of edges.
//
// Locked people take seats 0, 1, 2, ... in roster order before anything else
// is placed. Groups are then placed in random order by randomized
// backtracking over the edge list; every edge can carry at most one group.
// A group with a locked member must use an edge touching that member's seat.
// Everyone else fills the remaining seats at random, and seats left over get
// an empty [roster.Person].
//
// The returned slice always has length seatCount. On failure no partial
// seating is returned: errors carry INVALID_INPUT, INVALID_GROUP,
// INVALID_EDGE, COUNT_MISMATCH or INFEASIBLE codes, and infeasibility
// matches [ErrInfeasible].
func Solve(r roster.Roster, edges []Edge, seatCount int, opts *Options) ([]roster.Person, error) {
	seats, _, err := SolveStats(r, edges, seatCount, opts)
	return seats, err
}

// SolveStats is [Solve] that also reports search statistics.
func SolveStats(r roster.Roster, edges []Edge, seatCount int, opts *Options) ([]roster.Person, Stats, error) {
	if seatCount < 0 {
		return nil, Stats{}, errors.New(errors.ErrCodeInvalidInput, "seat count must not be negative (got %d)", seatCount)
	}
	if err := r.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if n := r.Len(); n > seatCount {
		return nil, Stats{}, errors.New(errors.ErrCodeCountMismatch, "%d people do not fit on %d seats", n, seatCount)
	}

	usable := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e[0] < 1 || e[0] > seatCount || e[1] < 1 || e[1] > seatCount {
			return nil, Stats{}, errors.New(errors.ErrCodeInvalidEdge, "edge %d-%d references a seat outside 1..%d", e[0], e[1], seatCount)
		}
		if e[0] != e[1] {
			usable = append(usable, Edge{e[0] - 1, e[1] - 1})
		}
	}

	o := opts.withDefaults()
	s := newSolver(r, seatCount, o)
	s.stats.Edges = len(usable)

	s.seatLocked()
	if !s.place(0, shuffled(s.rng, usable)) {
		if s.exceeded {
			return nil, s.stats, errors.Wrap(errors.ErrCodeInfeasible, ErrStepLimit,
				"gave up after %d placements; check declared neighbors and seat connections", s.stats.Steps)
		}
		return nil, s.stats, errors.Wrap(errors.ErrCodeInfeasible, ErrInfeasible,
			"%d neighbor groups cannot all be placed on the %d connected seat pairs", len(s.order), len(usable))
	}
	s.seatRemaining()
	return s.result(), s.stats, nil
}

// member is one flattened person.
type member struct {
	person  roster.Person
	cluster int // index into solver.clusters, -1 for singles
}

type solver struct {
	rng       *rand.Rand
	maxSteps  int
	reshuffle float64

	people   []member
	clusters [][]int     // person ids per group, in roster order
	order    []int       // cluster placement order
	seats    []int       // seat index -> person id, emptySeat when free
	lockedAt map[int]int // person id -> seat index

	exceeded bool
	stats    Stats
}

func newSolver(r roster.Roster, seatCount int, o Options) *solver {
	s := &solver{
		rng:       o.Rand,
		maxSteps:  o.MaxSteps,
		reshuffle: o.ReshuffleProbability,
		seats:     make([]int, seatCount),
		lockedAt:  make(map[int]int),
	}
	for i := range s.seats {
		s.seats[i] = emptySeat
	}

	for _, e := range r {
		cluster := -1
		if e.IsGroup() {
			cluster = len(s.clusters)
			s.clusters = append(s.clusters, nil)
		}
		for _, p := range e.Members {
			id := len(s.people)
			s.people = append(s.people, member{person: p, cluster: cluster})
			if cluster >= 0 {
				s.clusters[cluster] = append(s.clusters[cluster], id)
			}
		}
	}

	order := make([]int, len(s.clusters))
	for i := range order {
		order[i] = i
	}
	s.order = shuffled(s.rng, order)

	s.stats.People = len(s.people)
	s.stats.Groups = len(s.clusters)
	return s
}

// seatLocked puts locked people on the first seats in roster order.
func (s *solver) seatLocked() {
	next := 0
	for id, m := range s.people {
		if m.person.Locked {
			s.seats[next] = id
			s.lockedAt[id] = next
			next++
		}
	}
	s.stats.Locked = next
}

// place seats clusters order[idx:] on the remaining edges.
func (s *solver) place(idx int, edges []Edge) bool {
	if s.reshuffle > 0 && s.rng.Float64() < s.reshuffle {
		edges = shuffled(s.rng, edges)
	}
	if idx >= len(s.order) {
		return true
	}

	members := shuffled(s.rng, s.clusters[s.order[idx]])
	candidates := shuffled(s.rng, edges)

	for i, e := range candidates {
		if s.stats.Steps >= s.maxSteps {
			s.exceeded = true
			return false
		}
		s.stats.Steps++

		placed, ok := s.tryEdge(members, e)
		if !ok {
			continue
		}

		rest := make([]Edge, 0, len(candidates)-1)
		rest = append(rest, candidates[:i]...)
		rest = append(rest, candidates[i+1:]...)
		if s.place(idx+1, rest) {
			return true
		}

		s.undo(placed)
		if s.exceeded {
			return false
		}
	}
	return false
}

// tryEdge seats the pair a, b on edge e and returns the seats it filled.
func (s *solver) tryEdge(members []int, e Edge) ([]int, bool) {
	a, b := members[0], members[1]
	seatA, lockedA := s.lockedAt[a]
	seatB, lockedB := s.lockedAt[b]
	s1, s2 := e[0], e[1]

	switch {
	case lockedA && lockedB:
		if (seatA == s1 && seatB == s2) || (seatA == s2 && seatB == s1) {
			return nil, true
		}
	case lockedA:
		return s.seatPartner(seatA, b, e)
	case lockedB:
		return s.seatPartner(seatB, a, e)
	default:
		if s.seats[s1] == emptySeat && s.seats[s2] == emptySeat {
			s.seats[s1] = a
			s.seats[s2] = b
			return []int{s1, s2}, true
		}
	}
	return nil, false
}

// seatPartner seats partner next to the locked seat if e touches it.
func (s *solver) seatPartner(locked, partner int, e Edge) ([]int, bool) {
	var other int
	switch locked {
	case e[0]:
		other = e[1]
	case e[1]:
		other = e[0]
	default:
		return nil, false
	}
	if s.seats[other] != emptySeat {
		return nil, false
	}
	s.seats[other] = partner
	return []int{other}, true
}

func (s *solver) undo(placed []int) {
	for _, seat := range placed {
		s.seats[seat] = emptySeat
	}
	s.stats.Restored++
}

// seatRemaining drops everyone not yet seated onto free seats at random.
func (s *solver) seatRemaining() {
	used := make(map[int]bool, len(s.people))
	var free []int
	for i, id := range s.seats {
		if id == emptySeat {
			free = append(free, i)
		} else {
			used[id] = true
		}
	}

	var remaining []int
	for id := range s.people {
		if !used[id] {
			remaining = append(remaining, id)
		}
	}

	free = shuffled(s.rng, free)
	remaining = shuffled(s.rng, remaining)
	for i, id := range remaining {
		s.seats[free[i]] = id
	}
}

func (s *solver) result() []roster.Person {
	out := make([]roster.Person, len(s.seats))
	for i, id := range s.seats {
		if id != emptySeat {
			out[i] = s.people[id].person
		}
	}
	return out
}
