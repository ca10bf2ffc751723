package roster

import (
	"fmt"
	"strings"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// Default delimiters. A roster such as
//
//	Muster, Anna; [Muster, Ben; Muster, Cara]; Doe, John#
//
// holds a single person, a neighbor pair and a locked person.
const (
	DefaultPersonDelimiter = ';'
	DefaultNameDelimiter   = ','
	DefaultLockTag         = "#"
)

const (
	groupOpen  = '['
	groupClose = ']'
)

// Options configures how roster text is split into people and names.
// The zero value selects the defaults.
type Options struct {
	PersonDelimiter rune   // Separates entries (and members inside a group)
	NameDelimiter   rune   // Separates "Last, First"
	LockTag         string // Suffix marking a locked entry
}

// DefaultOptions returns the delimiters used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		PersonDelimiter: DefaultPersonDelimiter,
		NameDelimiter:   DefaultNameDelimiter,
		LockTag:         DefaultLockTag,
	}
}

func (o Options) withDefaults() Options {
	if o.PersonDelimiter == 0 {
		o.PersonDelimiter = DefaultPersonDelimiter
	}
	if o.NameDelimiter == 0 {
		o.NameDelimiter = DefaultNameDelimiter
	}
	if o.LockTag == "" {
		o.LockTag = DefaultLockTag
	}
	return o
}

// Person is one person to be seated. Identity is positional: two people with
// the same names are still different people.
type Person struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Locked    bool   `json:"locked,omitempty"`
}

// IsEmpty reports whether p carries no name. Empty persons fill seats
// nobody was assigned to.
func (p Person) IsEmpty() bool {
	return p.FirstName == "" && p.LastName == ""
}

// String returns "First Last", or just the first name.
func (p Person) String() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Entry is one roster item: a single person or a group of people who must
// sit on adjacent seats.
type Entry struct {
	Members []Person `json:"members"`
	Group   bool     `json:"group,omitempty"`
}

// Single returns an entry for one person.
func Single(p Person) Entry {
	return Entry{Members: []Person{p}}
}

// Pair returns a group entry for two neighbors.
func Pair(a, b Person) Entry {
	return Entry{Members: []Person{a, b}, Group: true}
}

// IsGroup reports whether the entry came from a bracketed group.
func (e Entry) IsGroup() bool { return e.Group }

// Roster is the ordered result of parsing roster text.
type Roster []Entry

// Flatten expands groups into their members, keeping input order.
func (r Roster) Flatten() []Person {
	out := make([]Person, 0, len(r))
	for _, e := range r {
		out = append(out, e.Members...)
	}
	return out
}

// Len returns the number of people, counting each group member.
func (r Roster) Len() int {
	n := 0
	for _, e := range r {
		n += len(e.Members)
	}
	return n
}

// HasGroups reports whether any entry is a group.
func (r Roster) HasGroups() bool {
	for _, e := range r {
		if e.Group {
			return true
		}
	}
	return false
}

// GroupCount returns the number of group entries.
func (r Roster) GroupCount() int {
	n := 0
	for _, e := range r {
		if e.Group {
			n++
		}
	}
	return n
}

// LockedCount returns the number of locked people.
func (r Roster) LockedCount() int {
	n := 0
	for _, e := range r {
		for _, p := range e.Members {
			if p.Locked {
				n++
			}
		}
	}
	return n
}

// Validate rejects groups that are not pairs. The parser keeps such groups
// so callers can report them; the solver only understands pairs.
func (r Roster) Validate() error {
	for i, e := range r {
		if e.Group && len(e.Members) != 2 {
			return errors.New(errors.ErrCodeInvalidGroup,
				"entry %d: group [%s] has %d members, neighbor groups need exactly 2",
				i+1, memberNames(e.Members), len(e.Members))
		}
	}
	return nil
}

func memberNames(ps []Person) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, "; ")
}

// Format renders r back into roster text that Parse reads as the same roster.
// Entries are joined by the person delimiter followed by a space.
func Format(r Roster, opts Options) string {
	opts = opts.withDefaults()
	sep := string(opts.PersonDelimiter) + " "

	parts := make([]string, 0, len(r))
	for _, e := range r {
		if !e.Group {
			for _, p := range e.Members {
				parts = append(parts, formatPerson(p, opts))
			}
			continue
		}
		members := make([]string, len(e.Members))
		for i, p := range e.Members {
			members[i] = formatPerson(p, opts)
		}
		parts = append(parts, fmt.Sprintf("%c%s%c", groupOpen, strings.Join(members, sep), groupClose))
	}
	return strings.Join(parts, sep)
}

func formatPerson(p Person, opts Options) string {
	s := p.FirstName
	if p.LastName != "" {
		s = p.LastName + string(opts.NameDelimiter) + " " + p.FirstName
	}
	if p.Locked {
		s += opts.LockTag
	}
	return s
}
