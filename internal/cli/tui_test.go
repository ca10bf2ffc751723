package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		key      string
		answered bool
		yes      bool
	}{
		{"y", true, true},
		{"Y", true, true},
		{"n", true, false},
		{"enter", true, false},
		{"esc", true, false},
		{"x", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := ConfirmModel{Question: "Continue?"}
			next, _ := m.Update(key(tt.key))
			got := next.(ConfirmModel)
			if got.Answered != tt.answered || got.Yes != tt.yes {
				t.Errorf("after %q: answered=%v yes=%v", tt.key, got.Answered, got.Yes)
			}
		})
	}

	if v := (ConfirmModel{Question: "Continue?"}).View(); !strings.Contains(v, "Continue?") {
		t.Errorf("View() = %q", v)
	}
}

func TestCountdownModel(t *testing.T) {
	m := NewCountdownModel(3, "Room 101")
	if m.Init() == nil {
		t.Fatal("Init() should schedule a tick")
	}
	if v := m.View(); !strings.Contains(v, "3") || !strings.Contains(v, "Room 101") {
		t.Errorf("View() = %q", v)
	}

	var model tea.Model = m
	for i := 0; i < 3; i++ {
		model, _ = model.Update(tickMsg(time.Now()))
	}
	got := model.(CountdownModel)
	if got.Remaining != 0 || got.Cancelled {
		t.Errorf("after 3 ticks: %+v", got)
	}
	if got.View() != "" {
		t.Error("finished countdown should render nothing")
	}
}

func TestCountdownModelKeys(t *testing.T) {
	next, _ := NewCountdownModel(5, "").Update(key("q"))
	if !next.(CountdownModel).Cancelled {
		t.Error("q should cancel")
	}

	next, _ = NewCountdownModel(5, "").Update(key("enter"))
	if m := next.(CountdownModel); m.Cancelled || m.Remaining != 0 {
		t.Errorf("enter should reveal now: %+v", m)
	}
}

func TestCountdownZero(t *testing.T) {
	if err := countdown(t.Context(), 0, ""); err != nil {
		t.Errorf("countdown(0) = %v", err)
	}
}
