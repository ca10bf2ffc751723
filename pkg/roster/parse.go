package roster

import "strings"

// tokenizer states.
type state int

const (
	stateNormal state = iota // between entries, person delimiter ends an entry
	stateGroup               // inside [...], person delimiter separates members
)

type tokenizer struct {
	opts  Options
	state state
	buf   strings.Builder
	out   Roster
}

// Parse reads roster text using the default delimiters.
func Parse(text string) Roster {
	return ParseWith(text, DefaultOptions())
}

// ParseWith reads roster text into entries.
//
// Rules, applied rune by rune:
//   - '[' discards any buffered text and opens a group
//   - ']' closes an open group; a stray ']' is ignored
//   - the person delimiter ends an entry outside a group and separates
//     members inside one
//   - at end of input the buffer is flushed; an unclosed group is flushed as
//     a group
//
// Empty entries and empty groups are dropped. Groups of any size are kept;
// use [Roster.Validate] to reject groups that are not pairs.
func ParseWith(text string, opts Options) Roster {
	t := tokenizer{opts: opts.withDefaults()}
	for _, r := range text {
		t.step(r)
	}
	t.finish()
	if t.out == nil {
		return Roster{}
	}
	return t.out
}

func (t *tokenizer) step(r rune) {
	switch {
	case r == groupOpen:
		t.buf.Reset()
		t.state = stateGroup
	case r == groupClose:
		if t.state == stateGroup {
			t.flushGroup()
			t.state = stateNormal
		}
	case r == t.opts.PersonDelimiter && t.state == stateNormal:
		t.flushSingle()
	default:
		t.buf.WriteRune(r)
	}
}

func (t *tokenizer) finish() {
	if t.state == stateGroup {
		t.flushGroup()
		t.state = stateNormal
		return
	}
	t.flushSingle()
}

func (t *tokenizer) flushSingle() {
	s := strings.TrimSpace(t.buf.String())
	t.buf.Reset()
	if s == "" {
		return
	}
	t.out = append(t.out, Single(ParseEntry(s, t.opts)))
}

func (t *tokenizer) flushGroup() {
	raw := t.buf.String()
	t.buf.Reset()

	var members []Person
	for _, piece := range strings.Split(raw, string(t.opts.PersonDelimiter)) {
		if piece = strings.TrimSpace(piece); piece != "" {
			members = append(members, ParseEntry(piece, t.opts))
		}
	}
	if len(members) == 0 {
		return
	}
	t.out = append(t.out, Entry{Members: members, Group: true})
}

// ParseEntry parses a single "Last, First" entry. A trailing lock tag marks
// the person as locked. Without a name delimiter the whole entry is the first
// name. Only the first name delimiter splits.
func ParseEntry(s string, opts Options) Person {
	opts = opts.withDefaults()

	var p Person
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, opts.LockTag) {
		p.Locked = true
		s = strings.TrimSpace(strings.TrimSuffix(s, opts.LockTag))
	}

	last, first, found := strings.Cut(s, string(opts.NameDelimiter))
	if !found {
		p.FirstName = s
		return p
	}
	p.LastName = strings.TrimSpace(last)
	p.FirstName = strings.TrimSpace(first)
	return p
}
