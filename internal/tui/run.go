package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfabench/dfabench/internal/lang"
)

// Run opens the interactive stepper for l and blocks until the user quits.
// Preferences are loaded before and saved after the session; failing to save
// them is not an error.
func Run(l *lang.Language[string, rune], states []string, word string) error {
	m := applyPrefs(NewModel(l, states, word), LoadPrefs())
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	if fm, ok := final.(Model); ok {
		_ = SavePrefs(prefsFrom(fm))
	}
	return nil
}
