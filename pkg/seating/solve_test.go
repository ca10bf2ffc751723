package seating

import (
	stderrors "errors"
	"testing"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/roster"
)

var (
	anna  = roster.Person{FirstName: "Anna", LastName: "Muster"}
	ben   = roster.Person{FirstName: "Ben", LastName: "Muster"}
	cara  = roster.Person{FirstName: "Cara", LastName: "Muster"}
	david = roster.Person{FirstName: "David", LastName: "Muster"}
)

func completeGraph(n int) []Edge {
	var edges []Edge
	for a := 1; a <= n; a++ {
		for b := a + 1; b <= n; b++ {
			edges = append(edges, Edge{a, b})
		}
	}
	return edges
}

func seatOf(seats []roster.Person, p roster.Person) int {
	for i, s := range seats {
		if s == p {
			return i
		}
	}
	return -1
}

func connected(edges []Edge, i, j int) bool {
	for _, e := range edges {
		a, b := e[0]-1, e[1]-1
		if (a == i && b == j) || (a == j && b == i) {
			return true
		}
	}
	return false
}

func checkGroups(t *testing.T, r roster.Roster, edges []Edge, seats []roster.Person) {
	t.Helper()
	for _, e := range r {
		if !e.IsGroup() {
			continue
		}
		i, j := seatOf(seats, e.Members[0]), seatOf(seats, e.Members[1])
		if i < 0 || j < 0 {
			t.Fatalf("group %v not seated: %v", e.Members, seats)
		}
		if !connected(edges, i, j) {
			t.Fatalf("group %v on unconnected seats %d and %d", e.Members, i+1, j+1)
		}
	}
}

func TestSolveConcreteScenario(t *testing.T) {
	r := roster.Roster{roster.Pair(anna, ben), roster.Single(cara), roster.Single(david)}
	edges := []Edge{{1, 2}, {3, 4}}

	for seed := range uint64(100) {
		seats, err := Solve(r, edges, 4, &Options{Rand: NewRand(seed)})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(seats) != 4 {
			t.Fatalf("seed %d: len = %d, want 4", seed, len(seats))
		}
		a, b := seatOf(seats, anna), seatOf(seats, ben)
		pair := [2]int{min(a, b), max(a, b)}
		if pair != [2]int{0, 1} && pair != [2]int{2, 3} {
			t.Fatalf("seed %d: Anna and Ben on seats %d and %d", seed, a+1, b+1)
		}
		if seatOf(seats, cara) < 0 || seatOf(seats, david) < 0 {
			t.Fatalf("seed %d: singles missing: %v", seed, seats)
		}
	}
}

func TestSolveCompleteGraphAlwaysFeasible(t *testing.T) {
	for seed := range uint64(50) {
		rng := NewRand(seed)
		groups := 1 + rng.IntN(4)
		singles := rng.IntN(4)
		seatCount := 2*groups + singles + rng.IntN(3)

		var r roster.Roster
		n := 0
		next := func() roster.Person {
			n++
			return roster.Person{FirstName: string(rune('A' + n)), LastName: "Test"}
		}
		for range groups {
			r = append(r, roster.Pair(next(), next()))
		}
		for range singles {
			r = append(r, roster.Single(next()))
		}

		edges := completeGraph(seatCount)
		seats, err := Solve(r, edges, seatCount, &Options{Rand: rng})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(seats) != seatCount {
			t.Fatalf("seed %d: len = %d, want %d", seed, len(seats), seatCount)
		}
		checkGroups(t, r, edges, seats)

		empty := 0
		for _, p := range seats {
			if p.IsEmpty() {
				empty++
			}
		}
		if empty != seatCount-r.Len() {
			t.Fatalf("seed %d: %d empty seats, want %d", seed, empty, seatCount-r.Len())
		}
	}
}

func TestSolveInfeasible(t *testing.T) {
	r := roster.Roster{roster.Pair(anna, ben)}

	for seed := range uint64(10) {
		seats, err := Solve(r, nil, 4, &Options{Rand: NewRand(seed)})
		if err == nil {
			t.Fatalf("seed %d: expected failure, got %v", seed, seats)
		}
		if seats != nil {
			t.Errorf("seed %d: partial seating returned: %v", seed, seats)
		}
		if !stderrors.Is(err, ErrInfeasible) {
			t.Errorf("seed %d: error %v does not match ErrInfeasible", seed, err)
		}
		if errors.GetCode(err) != errors.ErrCodeInfeasible {
			t.Errorf("seed %d: code = %s", seed, errors.GetCode(err))
		}
	}
}

func TestSolveEdgeUsedOnce(t *testing.T) {
	// Two groups, one edge.
	r := roster.Roster{roster.Pair(anna, ben), roster.Pair(cara, david)}
	_, err := Solve(r, []Edge{{1, 2}}, 4, &Options{Rand: NewRand(1)})
	if !stderrors.Is(err, ErrInfeasible) {
		t.Fatalf("expected infeasible, got %v", err)
	}
}

func TestSolveSharedSeatBacktracks(t *testing.T) {
	// A path 1-2-3-4: only {1,2} and {3,4} together work.
	r := roster.Roster{roster.Pair(anna, ben), roster.Pair(cara, david)}
	edges := []Edge{{1, 2}, {2, 3}, {3, 4}}

	for seed := range uint64(50) {
		seats, stats, err := SolveStats(r, edges, 4, &Options{Rand: NewRand(seed)})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		checkGroups(t, r, edges, seats)
		if stats.Groups != 2 || stats.People != 4 || stats.Edges != 3 {
			t.Fatalf("seed %d: stats = %+v", seed, stats)
		}
	}
}

func TestSolveLocked(t *testing.T) {
	lockedCara := cara
	lockedCara.Locked = true

	t.Run("single locked takes first seat", func(t *testing.T) {
		r := roster.Roster{roster.Single(anna), roster.Single(lockedCara), roster.Single(ben)}
		for seed := range uint64(30) {
			seats, err := Solve(r, nil, 3, &Options{Rand: NewRand(seed)})
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if seats[0] != lockedCara {
				t.Fatalf("seed %d: seat 1 = %v, want %v", seed, seats[0], lockedCara)
			}
		}
	})

	t.Run("locked group member keeps seat", func(t *testing.T) {
		lockedAnna := anna
		lockedAnna.Locked = true
		r := roster.Roster{roster.Pair(lockedAnna, ben), roster.Single(cara)}
		edges := []Edge{{2, 3}, {1, 3}}
		for seed := range uint64(30) {
			seats, err := Solve(r, edges, 3, &Options{Rand: NewRand(seed)})
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if seats[0] != lockedAnna || seats[2] != ben {
				t.Fatalf("seed %d: seats = %v", seed, seats)
			}
		}
	})

	t.Run("both members locked on an edge", func(t *testing.T) {
		lockedAnna, lockedBen := anna, ben
		lockedAnna.Locked, lockedBen.Locked = true, true
		r := roster.Roster{roster.Pair(lockedAnna, lockedBen)}
		seats, err := Solve(r, []Edge{{2, 1}}, 2, &Options{Rand: NewRand(3)})
		if err != nil {
			t.Fatal(err)
		}
		if seats[0] != lockedAnna || seats[1] != lockedBen {
			t.Errorf("seats = %v", seats)
		}
	})

	t.Run("both members locked without edge", func(t *testing.T) {
		lockedAnna, lockedBen := anna, ben
		lockedAnna.Locked, lockedBen.Locked = true, true
		r := roster.Roster{roster.Pair(lockedAnna, lockedBen)}
		_, err := Solve(r, []Edge{{1, 3}}, 3, &Options{Rand: NewRand(3)})
		if !stderrors.Is(err, ErrInfeasible) {
			t.Errorf("expected infeasible, got %v", err)
		}
	})
}

func TestSolveStepLimit(t *testing.T) {
	// Three groups on a triangle can never work, and the search has to try
	// every ordering before it says so.
	r := roster.Roster{
		roster.Pair(anna, ben),
		roster.Pair(cara, david),
		roster.Pair(roster.Person{FirstName: "Emil"}, roster.Person{FirstName: "Frida"}),
	}
	edges := completeGraph(3)

	_, stats, err := SolveStats(r, edges, 6, &Options{Rand: NewRand(1), MaxSteps: 2})
	if !stderrors.Is(err, ErrStepLimit) {
		t.Fatalf("expected step limit, got %v", err)
	}
	if !stderrors.Is(err, ErrInfeasible) {
		t.Error("step limit should match ErrInfeasible")
	}
	if stats.Steps != 2 {
		t.Errorf("steps = %d, want 2", stats.Steps)
	}
}

func TestSolveDeterministic(t *testing.T) {
	r := roster.Roster{roster.Pair(anna, ben), roster.Single(cara), roster.Single(david)}
	edges := completeGraph(6)

	first, err := Solve(r, edges, 6, &Options{Rand: NewRand(99)})
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		again, err := Solve(r, edges, 6, &Options{Rand: NewRand(99)})
		if err != nil {
			t.Fatal(err)
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("seed 99 not reproducible: %v vs %v", first, again)
			}
		}
	}
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name      string
		roster    roster.Roster
		edges     []Edge
		seatCount int
		code      errors.Code
	}{
		{"negative seats", nil, nil, -1, errors.ErrCodeInvalidInput},
		{"too many people", roster.Roster{roster.Single(anna), roster.Single(ben)}, nil, 1, errors.ErrCodeCountMismatch},
		{"group of three", roster.Roster{{Members: []roster.Person{anna, ben, cara}, Group: true}}, nil, 3, errors.ErrCodeInvalidGroup},
		{"edge out of range", roster.Roster{roster.Single(anna)}, []Edge{{1, 5}}, 2, errors.ErrCodeInvalidEdge},
		{"edge below range", roster.Roster{roster.Single(anna)}, []Edge{{0, 1}}, 2, errors.ErrCodeInvalidEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seats, err := Solve(tt.roster, tt.edges, tt.seatCount, nil)
			if err == nil {
				t.Fatalf("expected error, got %v", seats)
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestSolveEmpty(t *testing.T) {
	seats, err := Solve(nil, nil, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(seats) != 3 {
		t.Fatalf("len = %d, want 3", len(seats))
	}
	for _, p := range seats {
		if !p.IsEmpty() {
			t.Errorf("expected empty seat, got %v", p)
		}
	}

	seats, err = Solve(nil, nil, 0, nil)
	if err != nil || len(seats) != 0 {
		t.Errorf("Solve(0 seats) = %v, %v", seats, err)
	}
}

func TestSolveIgnoresSelfLoops(t *testing.T) {
	r := roster.Roster{roster.Pair(anna, ben)}
	_, stats, err := SolveStats(r, []Edge{{1, 1}, {1, 2}}, 2, &Options{Rand: NewRand(5)})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Edges != 1 {
		t.Errorf("edges = %d, want 1", stats.Edges)
	}
}
