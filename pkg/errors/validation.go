package errors

import (
	"strings"
	"unicode"
)

// ValidateChartName validates a user-supplied chart name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateChartName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidChart, "chart name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidChart, "chart name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidChart, "chart name contains invalid control characters")
		}
	}

	return nil
}

// ValidateChartID validates a chart identifier before it is used as a
// storage key or file name. It rejects anything that could escape the
// storage directory.
func ValidateChartID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "chart id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "chart id too long (max 64 characters)")
	}

	for _, r := range id {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return New(ErrCodeInvalidInput, "chart id contains invalid character %q", r)
		}
	}

	return nil
}

// ValidateDelimiters checks that a roster delimiter configuration can be
// parsed unambiguously.
//
// Validation rules:
//   - Person and name delimiters must differ
//   - Neither delimiter may be a group bracket
//   - The lock tag must be non-empty and must not contain either delimiter
func ValidateDelimiters(person, name rune, lockTag string) error {
	if person == name {
		return New(ErrCodeInvalidInput, "person and name delimiter must differ (both %q)", person)
	}

	for _, r := range []rune{person, name} {
		if r == '[' || r == ']' {
			return New(ErrCodeInvalidInput, "delimiter %q is reserved for groups", r)
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "delimiter %q must be a visible character", r)
		}
	}

	if lockTag == "" {
		return New(ErrCodeInvalidInput, "lock tag cannot be empty")
	}

	if strings.ContainsRune(lockTag, person) || strings.ContainsRune(lockTag, name) {
		return New(ErrCodeInvalidInput, "lock tag %q cannot contain a delimiter", lockTag)
	}

	if strings.ContainsAny(lockTag, "[]") {
		return New(ErrCodeInvalidInput, "lock tag %q cannot contain group brackets", lockTag)
	}

	return nil
}
