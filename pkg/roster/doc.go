// Package roster parses free-text class lists into people and neighbor groups.
//
// # Format
//
// A roster is a delimiter-separated list of entries. Each entry is either a
// name ("Last, First" or just "First") or a bracketed group of names that
// must be seated on adjacent seats:
//
//	Muster, Anna; [Doe, Ben; Doe, Cara]; Smith, Dan#
//
// A trailing lock tag ("#" by default) marks a locked entry. Locked people are
// seated before everyone else, in roster order.
//
// # Parsing
//
// [Parse] and [ParseWith] never fail. Malformed input is resolved by fixed
// rules (see [ParseWith]); groups that are not pairs are kept and reported
// by [Roster.Validate].
//
// [Format] is the inverse of [Parse] and is used by editors that rewrite the
// roster text.
package roster
