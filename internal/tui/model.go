package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dfabench/dfabench/internal/lang"
	"github.com/dfabench/dfabench/internal/machine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	stateStyle   = lipgloss.NewStyle().Padding(0, 1)
	currentStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("208"))
	acceptMark = lipgloss.NewStyle().Underline(true)

	consumedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nextStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	remainingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	acceptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	rejectStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type statusMsg string

// Model steps one word through a language a symbol at a time.
type Model struct {
	lang    *lang.Language[string, rune]
	states  []string
	machine *machine.Machine[string, rune]

	input []rune
	trace []lang.Step[string, rune]

	editing bool
	editor  textinput.Model
	keys    keyMap
	help    help.Model

	status   string
	quitting bool

	// copyFn is replaced in tests.
	copyFn func(string) error
}

// NewModel prepares a stepper for l. states fixes the display order; word is
// the initial input. With an empty word the editor opens first.
func NewModel(l *lang.Language[string, rune], states []string, word string) Model {
	ti := textinput.New()
	ti.Placeholder = "word to step through..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Prompt = "word> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ti.SetValue(word)

	m := Model{
		lang:    l,
		states:  states,
		machine: l.Machine(),
		input:   []rune(word),
		editor:  ti,
		keys:    defaultKeys(),
		help:    help.New(),
		copyFn:  clipboard.WriteAll,
	}
	if word == "" {
		m.editing = true
		m.editor.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.editing {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Forward):
			m.forward()
		case key.Matches(msg, m.keys.Back):
			m.back()
		case key.Matches(msg, m.keys.End):
			m.runToEnd()
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		case key.Matches(msg, m.keys.Edit):
			m.editing = true
			m.editor.SetValue(string(m.input))
			m.editor.CursorEnd()
			cmd := m.editor.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyTrace()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.input = []rune(m.editor.Value())
		m.editing = false
		m.editor.Blur()
		m.reset()
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.editor.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// Pos is the number of symbols consumed so far.
func (m Model) Pos() int { return len(m.trace) }

// Current is the state after the consumed prefix.
func (m Model) Current() string { return m.machine.Current() }

// Done reports whether the whole word has been consumed.
func (m Model) Done() bool { return m.Pos() == len(m.input) }

func (m Model) verdict() string {
	if m.lang.IsAccepting(m.Current()) {
		return acceptStyle.Render("accept")
	}
	return rejectStyle.Render("reject")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("dfabench step · " + m.lang.Name()))
	b.WriteString("\n\n")

	cells := make([]string, 0, len(m.states))
	for _, s := range m.states {
		label := s
		if m.lang.IsAccepting(s) {
			label = acceptMark.Render(s)
		}
		if s == m.Current() {
			cells = append(cells, currentStyle.Render(label))
		} else {
			cells = append(cells, stateStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(m.editor.View())
		b.WriteString("\n\nenter: start · esc: cancel\n")
		return b.String()
	}

	pos := m.Pos()
	b.WriteString("input: ")
	b.WriteString(consumedStyle.Render(string(m.input[:pos])))
	if pos < len(m.input) {
		b.WriteString(nextStyle.Render(string(m.input[pos])))
		b.WriteString(remainingStyle.Render(string(m.input[pos+1:])))
	}
	fmt.Fprintf(&b, "\nstep %d/%d  state %s  %s\n", pos, len(m.input), m.Current(), m.verdict())

	if pos > 0 {
		last := m.trace[pos-1]
		fmt.Fprintf(&b, "last: %s --%q--> %s\n", last.From, string(last.Symbol), last.To)
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
