package roster

import (
	"reflect"
	"testing"

	"github.com/matzehuels/seatplan/pkg/errors"
)

func TestRosterCounts(t *testing.T) {
	r := Parse("A; [B; C]; D#; [E#; F]")

	if got := r.Len(); got != 6 {
		t.Errorf("Len() = %d, want 6", got)
	}
	if got := r.GroupCount(); got != 2 {
		t.Errorf("GroupCount() = %d, want 2", got)
	}
	if got := r.LockedCount(); got != 2 {
		t.Errorf("LockedCount() = %d, want 2", got)
	}
	if !r.HasGroups() {
		t.Error("HasGroups() = false, want true")
	}
	if Parse("A; B").HasGroups() {
		t.Error("HasGroups() = true for roster without groups")
	}
}

func TestRosterFlatten(t *testing.T) {
	r := Parse("A; [B; C]; D")
	got := r.Flatten()
	want := []Person{{FirstName: "A"}, {FirstName: "B"}, {FirstName: "C"}, {FirstName: "D"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %+v, want %+v", got, want)
	}

	if got := (Roster{}).Flatten(); len(got) != 0 {
		t.Errorf("empty Flatten() = %+v", got)
	}
}

func TestRosterValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"no groups", "A; B; C", false},
		{"pairs", "[A; B]; [C; D]", false},
		{"triple", "[A; B; C]", true},
		{"single member", "[A]", true},
		{"unclosed triple", "[A; B; C", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Parse(tt.input).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidGroup) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidGroup)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	r := Roster{
		Single(Person{FirstName: "Anna", LastName: "Muster"}),
		Pair(Person{FirstName: "Ben"}, Person{FirstName: "Cara", LastName: "Doe", Locked: true}),
		Single(Person{FirstName: "Dan", Locked: true}),
	}

	got := Format(r, DefaultOptions())
	want := "Muster, Anna; [Ben; Doe, Cara#]; Dan#"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if back := Parse(got); !reflect.DeepEqual(back, r) {
		t.Errorf("Parse(Format()) = %+v, want %+v", back, r)
	}
}

func TestPersonString(t *testing.T) {
	if got := (Person{FirstName: "Anna", LastName: "Muster"}).String(); got != "Anna Muster" {
		t.Errorf("String() = %q", got)
	}
	if got := (Person{FirstName: "Anna"}).String(); got != "Anna" {
		t.Errorf("String() = %q", got)
	}
	if !(Person{}).IsEmpty() {
		t.Error("zero Person should be empty")
	}
}
