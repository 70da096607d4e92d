package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Prefs holds stepper preferences that persist across sessions.
type Prefs struct {
	// LastWord pre-fills the editor when no word is given.
	LastWord string `json:"last_word"`
	// FullHelp expands the key help on start.
	FullHelp bool `json:"full_help"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() Prefs {
	return Prefs{}
}

// prefsPath returns the path to the stepper preferences file.
func prefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dfabench", "tui_prefs.json"), nil
}

// LoadPrefs loads user preferences from disk, returning defaults if not found.
func LoadPrefs() Prefs {
	prefs := DefaultPrefs()

	path, err := prefsPath()
	if err != nil {
		return prefs
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}

	_ = json.Unmarshal(data, &prefs) //nolint:errcheck // fall back to defaults
	return prefs
}

// SavePrefs persists user preferences to disk.
func SavePrefs(prefs Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// prefsFrom captures the preferences worth keeping from a finished session.
func prefsFrom(m Model) Prefs {
	return Prefs{LastWord: string(m.input), FullHelp: m.help.ShowAll}
}

// applyPrefs seeds a fresh model. An explicit word always wins over LastWord.
func applyPrefs(m Model, p Prefs) Model {
	m.help.ShowAll = p.FullHelp
	if m.editing && m.editor.Value() == "" && p.LastWord != "" {
		m.editor.SetValue(p.LastWord)
		m.editor.CursorEnd()
	}
	return m
}
