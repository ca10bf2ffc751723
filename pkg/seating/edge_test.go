package seating

import (
	"reflect"
	"testing"

	"github.com/matzehuels/seatplan/pkg/errors"
)

func TestPairID(t *testing.T) {
	if got := PairID(9, 3); got != "3-9" {
		t.Errorf("PairID(9, 3) = %q, want 3-9", got)
	}
	if PairID(3, 9) != PairID(9, 3) {
		t.Error("PairID should not depend on argument order")
	}
}

func TestSplitPairID(t *testing.T) {
	tests := []struct {
		input   string
		a, b    int
		wantErr bool
	}{
		{"3-9", 3, 9, false},
		{" 12-4 ", 12, 4, false},
		{"3", 0, 0, true},
		{"a-9", 0, 0, true},
		{"3-", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, b, err := SplitPairID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SplitPairID(%q) expected error", tt.input)
				}
				if errors.GetCode(err) != errors.ErrCodeInvalidEdge {
					t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidEdge)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitPairID(%q) error: %v", tt.input, err)
			}
			if a != tt.a || b != tt.b {
				t.Errorf("SplitPairID(%q) = %d, %d, want %d, %d", tt.input, a, b, tt.a, tt.b)
			}
		})
	}
}

func TestNormalizeEdges(t *testing.T) {
	tests := []struct {
		name  string
		raw   []string
		seats []int
		want  []Edge
	}{
		{"ranks by sorted id", []string{"3-9"}, []int{7, 3, 9}, []Edge{{1, 3}}},
		{"keeps input order", []string{"7-9", "3-7"}, []int{7, 3, 9}, []Edge{{2, 3}, {1, 2}}},
		{"drops deleted seat", []string{"3-5", "3-7"}, []int{7, 3, 9}, []Edge{{1, 2}}},
		{"drops malformed", []string{"x", "3-7"}, []int{3, 7}, []Edge{{1, 2}}},
		{"drops self loop", []string{"3-3"}, []int{3}, []Edge{}},
		{"no edges", nil, []int{1, 2}, []Edge{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEdges(tt.raw, tt.seats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeEdges(%v, %v) = %v, want %v", tt.raw, tt.seats, got, tt.want)
			}
		})
	}
}

func TestNormalizeEdgesDoesNotSortInput(t *testing.T) {
	seats := []int{7, 3, 9}
	NormalizeEdges([]string{"3-9"}, seats)
	if !reflect.DeepEqual(seats, []int{7, 3, 9}) {
		t.Errorf("seat ids modified: %v", seats)
	}
}
