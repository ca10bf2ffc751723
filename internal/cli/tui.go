package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Prompt styles
var (
	promptKeyStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	countdownStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(1, 4)
	countdownDimText = lipgloss.NewStyle().Foreground(colorDim)
)

// interactive reports whether stdin and stdout are terminals.
func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// =============================================================================
// ConfirmModel - yes/no question
// =============================================================================

// ConfirmModel asks a yes/no question. Anything but "y" answers no.
type ConfirmModel struct {
	Question string
	Answered bool
	Yes      bool
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.Answered, m.Yes = true, true
		case "n", "N", "enter", "q", "esc", "ctrl+c":
			m.Answered = true
		default:
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.Answered {
		return ""
	}
	return fmt.Sprintf("%s %s %s ",
		styleIconWarning.Render(iconWarning),
		StyleWarning.Render(m.Question),
		StyleDim.Render("[")+promptKeyStyle.Render("y")+StyleDim.Render("/N]"))
}

// confirm runs a ConfirmModel. Without a terminal it answers no.
func confirm(ctx context.Context, question string) (bool, error) {
	if !interactive() {
		return false, nil
	}
	final, err := tea.NewProgram(ConfirmModel{Question: question}, tea.WithContext(ctx)).Run()
	if err != nil {
		return false, err
	}
	return final.(ConfirmModel).Yes, nil
}

// =============================================================================
// CountdownModel - reveal delay
// =============================================================================

type tickMsg time.Time

// CountdownModel counts down whole seconds before a result is revealed.
type CountdownModel struct {
	Remaining int
	Title     string
	Cancelled bool
}

// NewCountdownModel creates a countdown from seconds.
func NewCountdownModel(seconds int, title string) CountdownModel {
	return CountdownModel{Remaining: seconds, Title: title}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m CountdownModel) Init() tea.Cmd {
	if m.Remaining <= 0 {
		return tea.Quit
	}
	return tick()
}

func (m CountdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.Cancelled = true
			return m, tea.Quit
		case "enter", " ":
			m.Remaining = 0
			return m, tea.Quit
		}
	case tickMsg:
		m.Remaining--
		if m.Remaining <= 0 {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m CountdownModel) View() string {
	if m.Remaining <= 0 || m.Cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(countdownStyle.Render(fmt.Sprintf("%d", m.Remaining)))
	b.WriteString("\n")
	b.WriteString(countdownDimText.Render("⏎ reveal now  q cancel"))
	b.WriteString("\n")
	return b.String()
}

// countdown runs a CountdownModel. Without a terminal it sleeps instead.
// It returns context.Canceled when the user cancels.
func countdown(ctx context.Context, seconds int, title string) error {
	if seconds <= 0 {
		return nil
	}
	if !interactive() {
		select {
		case <-time.After(time.Duration(seconds) * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	final, err := tea.NewProgram(NewCountdownModel(seconds, title), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if final.(CountdownModel).Cancelled {
		return context.Canceled
	}
	return nil
}
