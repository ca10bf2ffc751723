package seating_test

import (
	"fmt"

	"github.com/matzehuels/seatplan/pkg/roster"
	"github.com/matzehuels/seatplan/pkg/seating"
)

func ExampleNormalizeEdges() {
	// Seat 3 ranks first, 7 second and 9 third.
	edges := seating.NormalizeEdges([]string{"3-9", "7-9", "3-4"}, []int{7, 3, 9})
	fmt.Println(edges)
	// Output:
	// [[1 3] [2 3]]
}

func ExampleSolve() {
	r := roster.Parse("[Muster, Anna; Muster, Ben]; Muster, Cara; Muster, David")
	edges := []seating.Edge{{1, 2}, {3, 4}}

	seats, err := seating.Solve(r, edges, 4, &seating.Options{Rand: seating.NewRand(1)})
	if err != nil {
		fmt.Println(err)
		return
	}

	var anna, ben int
	for i, p := range seats {
		switch p.FirstName {
		case "Anna":
			anna = i + 1
		case "Ben":
			ben = i + 1
		}
	}
	fmt.Println("seats:", len(seats))
	fmt.Println("neighbors:", min(anna, ben)%2 == 1 && max(anna, ben) == min(anna, ben)+1)
	// Output:
	// seats: 4
	// neighbors: true
}
