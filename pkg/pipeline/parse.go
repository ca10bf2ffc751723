package pipeline

import (
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/roster"
)

// ParseRoster parses and validates roster text with the delimiters in opts.
func ParseRoster(text string, opts Options) (roster.Roster, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r := roster.ParseWith(text, opts.RosterOptions())
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// CheckCount compares the number of people with the number of seats.
//
// No people or no seats is an INVALID_INPUT error. More people than seats
// wraps [ErrOverfill]; fewer wraps [ErrUnderfill] unless allowUnderfill is
// set. Both carry the COUNT_MISMATCH code.
func CheckCount(people, seats int, allowUnderfill bool) error {
	switch {
	case people == 0 || seats == 0:
		return errors.New(errors.ErrCodeInvalidInput, "nothing to assign (%d people, %d seats)", people, seats)
	case people > seats:
		return errors.Wrap(errors.ErrCodeCountMismatch, ErrOverfill,
			"%d seats missing: %d people, %d seats", people-seats, people, seats)
	case people < seats && !allowUnderfill:
		return errors.Wrap(errors.ErrCodeCountMismatch, ErrUnderfill,
			"not every seat will be taken: %d seats, %d people", seats, people)
	}
	return nil
}
