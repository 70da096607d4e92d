package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Forward key.Binding
	Back    key.Binding
	End     key.Binding
	Reset   key.Binding
	Edit    key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Forward: key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/l/space", "step")),
		Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "back")),
		End:     key.NewBinding(key.WithKeys("e", "end"), key.WithHelp("e", "run to end")),
		Reset:   key.NewBinding(key.WithKeys("r", "home"), key.WithHelp("r", "reset")),
		Edit:    key.NewBinding(key.WithKeys("i", "/"), key.WithHelp("i", "edit word")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy trace")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Back, k.End, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.End, k.Reset},
		{k.Edit, k.Copy, k.Help, k.Quit},
	}
}
