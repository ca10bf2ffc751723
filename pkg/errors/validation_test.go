package errors

import (
	"strings"
	"testing"
)

func TestValidateChartName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Class 7b", false},
		{"valid unicode", "Klasse 7b – Raum 104", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("x", 129), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChartName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChartID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "3f0c7d0e-6b7e-4c0f-9a55-1c2d3e4f5a6b", false},
		{"underscore", "room_104", false},

		{"empty", "", true},
		{"slash", "a/b", true},
		{"dots", "..", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChartID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDelimiters(t *testing.T) {
	tests := []struct {
		name    string
		person  rune
		nameD   rune
		lockTag string
		wantErr bool
	}{
		{"defaults", ';', ',', "#", false},
		{"pipe and slash", '|', '/', "*", false},

		{"same delimiter", ';', ';', "#", true},
		{"bracket person", '[', ',', "#", true},
		{"bracket name", ';', ']', "#", true},
		{"space", ' ', ',', "#", true},
		{"empty lock tag", ';', ',', "", true},
		{"lock tag contains delimiter", ';', ',', "#;", true},
		{"lock tag contains bracket", ';', ',', "[#]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDelimiters(tt.person, tt.nameD, tt.lockTag)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDelimiters(%q, %q, %q) error = %v, wantErr %v", tt.person, tt.nameD, tt.lockTag, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", GetCode(err))
			}
		})
	}
}
