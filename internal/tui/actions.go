package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfabench/dfabench/internal/lang"
)

// forward consumes the next symbol, if any.
func (m *Model) forward() {
	if m.Done() {
		m.status = "end of input"
		return
	}
	sym := m.input[m.Pos()]
	from := m.machine.Current()
	to := m.machine.Step(sym)
	m.trace = append(m.trace, lang.Step[string, rune]{Index: m.Pos(), Symbol: sym, From: from, To: to})
	m.status = ""
}

// back undoes one symbol. The engine cannot step backwards, so the machine is
// reset and the shorter prefix replayed.
func (m *Model) back() {
	if m.Pos() == 0 {
		m.status = "at start"
		return
	}
	keep := m.Pos() - 1
	m.reset()
	for range keep {
		m.forward()
	}
}

func (m *Model) runToEnd() {
	for !m.Done() {
		m.forward()
	}
}

func (m *Model) reset() {
	m.machine.Reset()
	m.trace = nil
	m.status = ""
}

// traceText renders the consumed transitions one per line.
func (m Model) traceText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "language: %s\n", m.lang.Name())
	fmt.Fprintf(&sb, "input: %q\n", string(m.input))
	for _, s := range m.trace {
		fmt.Fprintf(&sb, "%d %q %s -> %s\n", s.Index, string(s.Symbol), s.From, s.To)
	}
	verdict := "reject"
	if m.lang.IsAccepting(m.Current()) {
		verdict = "accept"
	}
	fmt.Fprintf(&sb, "final: %s (%s)\n", m.Current(), verdict)
	return sb.String()
}

// copyTrace copies the trace so far to the clipboard.
func (m Model) copyTrace() tea.Cmd {
	text := m.traceText()
	copyFn := m.copyFn
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied trace to clipboard")
	}
}
