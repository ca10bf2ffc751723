package chart

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// Grid placement used by [Chart.AddSeats].
const (
	SeatGap     = 10.0
	SeatsPerRow = 10
)

// Fixed element kinds.
const (
	KindDesk   = "desk"
	KindBoard  = "board"
	KindDoor   = "door"
	KindWindow = "window"
)

var fixedKinds = []string{KindDesk, KindBoard, KindDoor, KindWindow}

// Seat is one place a person can sit.
type Seat struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rotate float64 `json:"rotate"`
}

// FixedElement is furniture drawn alongside the seats. The solver ignores it.
type FixedElement struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rotate float64 `json:"rotate"`
}

// Chart is a room layout together with its neighbor connections.
type Chart struct {
	ID          string         `json:"id" bson:"_id"`
	Name        string         `json:"name" bson:"name"`
	Seats       []Seat         `json:"seats" bson:"seats"`
	Fixed       []FixedElement `json:"fixed,omitempty" bson:"fixed,omitempty"`
	Connections []string       `json:"connections" bson:"connections"`
	Names       string         `json:"names,omitempty" bson:"names,omitempty"`
	LastSeatID  int            `json:"last_seat_id" bson:"last_seat_id"`
	CreatedAt   time.Time      `json:"created_at,omitzero" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at,omitzero" bson:"updated_at"`
}

// New returns an empty chart with a fresh ID.
func New(name string) *Chart {
	now := time.Now().UTC()
	return &Chart{
		ID:          uuid.NewString(),
		Name:        name,
		Seats:       []Seat{},
		Connections: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch sets UpdatedAt to now.
func (c *Chart) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

// AddSeat appends a seat with the next free ID.
func (c *Chart) AddSeat(x, y, rotate float64) Seat {
	c.LastSeatID++
	s := Seat{ID: c.LastSeatID, X: x, Y: y, Rotate: rotate}
	c.Seats = append(c.Seats, s)
	return s
}

// AddSeatWithID appends a seat with a known ID, as when restoring a saved
// chart. LastSeatID is raised to id if needed.
func (c *Chart) AddSeatWithID(id int, x, y, rotate float64) error {
	if id <= 0 {
		return errors.New(errors.ErrCodeInvalidChart, "seat id must be positive (got %d)", id)
	}
	if c.HasSeat(id) {
		return errors.New(errors.ErrCodeInvalidChart, "seat %d already exists", id)
	}
	c.Seats = append(c.Seats, Seat{ID: id, X: x, Y: y, Rotate: rotate})
	c.LastSeatID = max(c.LastSeatID, id)
	return nil
}

// AddSeats lays out n new seats on a grid below the existing ones and
// returns them.
func (c *Chart) AddSeats(n int) []Seat {
	rowOffset := 0.0
	if len(c.Seats) > 0 {
		for _, s := range c.Seats {
			rowOffset = max(rowOffset, s.Y+SeatGap)
		}
	}

	added := make([]Seat, 0, n)
	for i := range n {
		x := float64(i%SeatsPerRow) * SeatGap
		y := rowOffset + float64(i/SeatsPerRow)*SeatGap
		added = append(added, c.AddSeat(x, y, 0))
	}
	return added
}

// HasSeat reports whether a seat with id exists.
func (c *Chart) HasSeat(id int) bool {
	return c.seatIndex(id) >= 0
}

func (c *Chart) seatIndex(id int) int {
	return slices.IndexFunc(c.Seats, func(s Seat) bool { return s.ID == id })
}

// DeleteSeat removes a seat and every connection touching it.
func (c *Chart) DeleteSeat(id int) error {
	i := c.seatIndex(id)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "seat %d does not exist", id)
	}
	c.Seats = slices.Delete(c.Seats, i, i+1)
	c.Connections = slices.DeleteFunc(c.Connections, func(pair string) bool {
		a, b, err := seating.SplitPairID(pair)
		return err == nil && (a == id || b == id)
	})
	return nil
}

// Connect marks seats a and b as neighbors. Connecting an already connected
// pair is a no-op.
func (c *Chart) Connect(a, b int) error {
	if a == b {
		return errors.New(errors.ErrCodeInvalidEdge, "cannot connect seat %d to itself", a)
	}
	for _, id := range []int{a, b} {
		if !c.HasSeat(id) {
			return errors.New(errors.ErrCodeInvalidEdge, "seat %d does not exist", id)
		}
	}
	if c.IsConnected(a, b) {
		return nil
	}
	c.Connections = append(c.Connections, seating.PairID(a, b))
	return nil
}

// Disconnect removes the connection between a and b if there is one.
func (c *Chart) Disconnect(a, b int) {
	key := seating.PairID(a, b)
	c.Connections = slices.DeleteFunc(c.Connections, func(pair string) bool {
		return canonical(pair) == key
	})
}

// IsConnected reports whether a and b are neighbors.
func (c *Chart) IsConnected(a, b int) bool {
	key := seating.PairID(a, b)
	return slices.ContainsFunc(c.Connections, func(pair string) bool {
		return canonical(pair) == key
	})
}

// Neighbors returns the IDs connected to seat id in ascending order.
func (c *Chart) Neighbors(id int) []int {
	var out []int
	for _, pair := range c.Connections {
		a, b, err := seating.SplitPairID(pair)
		if err != nil {
			continue
		}
		switch id {
		case a:
			out = append(out, b)
		case b:
			out = append(out, a)
		}
	}
	slices.Sort(out)
	return out
}

func canonical(pair string) string {
	a, b, err := seating.SplitPairID(pair)
	if err != nil {
		return strings.TrimSpace(pair)
	}
	return seating.PairID(a, b)
}

// AddFixed places a piece of furniture.
func (c *Chart) AddFixed(kind string, x, y, rotate float64) error {
	if !slices.Contains(fixedKinds, kind) {
		return errors.New(errors.ErrCodeInvalidChart, "unknown fixed element %q (want one of %s)",
			kind, strings.Join(fixedKinds, ", "))
	}
	c.Fixed = append(c.Fixed, FixedElement{Type: kind, X: x, Y: y, Rotate: rotate})
	return nil
}

// SeatIDs returns seat IDs in chart order.
func (c *Chart) SeatIDs() []int {
	ids := make([]int, len(c.Seats))
	for i, s := range c.Seats {
		ids[i] = s.ID
	}
	return ids
}

// SeatNumbers returns seat IDs in ascending order. Seat number n is
// SeatNumbers()[n-1]; normalized edges and assignment results use these
// numbers.
func (c *Chart) SeatNumbers() []int {
	ids := c.SeatIDs()
	slices.Sort(ids)
	return ids
}

// SeatCount returns the number of seats.
func (c *Chart) SeatCount() int {
	return len(c.Seats)
}

// NormalizedEdges returns the connections as solver edges.
func (c *Chart) NormalizedEdges() []seating.Edge {
	return seating.NormalizeEdges(c.Connections, c.SeatIDs())
}

// Validate checks seat IDs and connections for consistency.
func (c *Chart) Validate() error {
	seen := make(map[int]bool, len(c.Seats))
	for _, s := range c.Seats {
		if s.ID <= 0 {
			return errors.New(errors.ErrCodeInvalidChart, "seat id must be positive (got %d)", s.ID)
		}
		if seen[s.ID] {
			return errors.New(errors.ErrCodeInvalidChart, "duplicate seat id %d", s.ID)
		}
		seen[s.ID] = true
	}

	pairs := make(map[string]bool, len(c.Connections))
	for _, pair := range c.Connections {
		a, b, err := seating.SplitPairID(pair)
		if err != nil {
			return err
		}
		if a == b {
			return errors.New(errors.ErrCodeInvalidEdge, "connection %q joins a seat to itself", pair)
		}
		if !seen[a] || !seen[b] {
			return errors.New(errors.ErrCodeInvalidEdge, "connection %q references a missing seat", pair)
		}
		key := seating.PairID(a, b)
		if pairs[key] {
			return errors.New(errors.ErrCodeInvalidEdge, "duplicate connection %q", pair)
		}
		pairs[key] = true
	}

	for _, f := range c.Fixed {
		if !slices.Contains(fixedKinds, f.Type) {
			return errors.New(errors.ErrCodeInvalidChart, "unknown fixed element %q", f.Type)
		}
	}
	return nil
}
