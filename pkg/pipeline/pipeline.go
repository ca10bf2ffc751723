// Package pipeline turns a chart and roster text into a seat assignment.
//
// This is the one path the CLI and the API share:
//
//  1. Parse: read the roster text into people and neighbor groups
//  2. Check: compare the number of people with the number of seats
//  3. Assign: keep roster order, shuffle, or run the constrained solver
//  4. Store: cache the result so it can be fetched again by ID
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Assign(ctx, ch, pipeline.Options{
//	    Names: "Muster, Anna; [Doe, Ben; Doe, Cara]",
//	})
//	if errors.Is(err, pipeline.ErrUnderfill) {
//	    // ask, then retry with AllowUnderfill
//	}
//
// The assignment mode follows the roster: a roster with neighbor groups is
// seated by [seating.Solve] on the chart's connections, a roster without
// groups is shuffled with [seating.ShuffleUnlocked], and KeepOrder seats
// people in roster order.
package pipeline

import (
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/roster"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// Assignment modes.
const (
	ModeSolve   = "solve"
	ModeShuffle = "shuffle"
	ModeOrdered = "ordered"
)

// ErrUnderfill is wrapped by the COUNT_MISMATCH error returned when there
// are fewer people than seats and AllowUnderfill is not set.
var ErrUnderfill = stderrors.New("fewer people than seats")

// ErrOverfill is wrapped by the COUNT_MISMATCH error returned when there are
// more people than seats.
var ErrOverfill = stderrors.New("more people than seats")

// =============================================================================
// Options
// =============================================================================

// Options configures one assignment.
type Options struct {
	// Names is the roster text. Empty means the chart's saved names.
	Names string

	// Roster parsing; zero values select the roster defaults.
	PersonDelimiter rune
	NameDelimiter   rune
	LockTag         string

	// KeepOrder seats people in roster order instead of shuffling.
	KeepOrder bool

	// AllowUnderfill accepts fewer people than seats.
	AllowUnderfill bool

	// Seed makes the assignment reproducible. 0 draws a fresh seed, which
	// is reported in the result.
	Seed uint64

	// Solver limits; zero values select the seating defaults.
	MaxSteps             int
	ReshuffleProbability float64

	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. Calling it
// more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.PersonDelimiter == 0 {
		o.PersonDelimiter = roster.DefaultPersonDelimiter
	}
	if o.NameDelimiter == 0 {
		o.NameDelimiter = roster.DefaultNameDelimiter
	}
	if o.LockTag == "" {
		o.LockTag = roster.DefaultLockTag
	}
	if err := errors.ValidateDelimiters(o.PersonDelimiter, o.NameDelimiter, o.LockTag); err != nil {
		return err
	}

	if o.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max steps must not be negative (got %d)", o.MaxSteps)
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = seating.DefaultMaxSteps
	}
	if o.ReshuffleProbability > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "reshuffle probability must be at most 1 (got %g)", o.ReshuffleProbability)
	}
	if o.ReshuffleProbability == 0 {
		o.ReshuffleProbability = seating.DefaultReshuffleProbability
	}
	if o.Seed == 0 {
		o.Seed = seating.NewSeed()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// RosterOptions returns the parser options.
func (o *Options) RosterOptions() roster.Options {
	return roster.Options{
		PersonDelimiter: o.PersonDelimiter,
		NameDelimiter:   o.NameDelimiter,
		LockTag:         o.LockTag,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is one finished assignment.
type Result struct {
	ID        string           `json:"id"`
	ChartID   string           `json:"chart_id,omitempty"`
	ChartName string           `json:"chart_name,omitempty"`
	ChartHash string           `json:"chart_hash,omitempty"`
	Seed      uint64           `json:"seed"`
	Mode      string           `json:"mode"`
	Seats     []SeatAssignment `json:"seats"`
	Stats     Stats            `json:"stats"`
	CreatedAt time.Time        `json:"created_at"`
}

// SeatAssignment is the person placed on one seat. Number is the seat's
// rank among the chart's seat IDs; Person is empty for an unused seat.
type SeatAssignment struct {
	SeatID int           `json:"seat_id"`
	Number int           `json:"number"`
	Person roster.Person `json:"person"`
}

// Stats contains assignment statistics.
type Stats struct {
	People    int           `json:"people"`
	Seats     int           `json:"seats"`
	Groups    int           `json:"groups"`
	Locked    int           `json:"locked"`
	Edges     int           `json:"edges"`
	Steps     int           `json:"steps"`
	ParseTime time.Duration `json:"parse_ns"`
	SolveTime time.Duration `json:"solve_ns"`
}

// Persons returns the seated people by seat number.
func (r *Result) Persons() []roster.Person {
	out := make([]roster.Person, len(r.Seats))
	for i, s := range r.Seats {
		out[i] = s.Person
	}
	return out
}

// Occupied returns the number of seats with a person on them.
func (r *Result) Occupied() int {
	n := 0
	for _, s := range r.Seats {
		if !s.Person.IsEmpty() {
			n++
		}
	}
	return n
}
