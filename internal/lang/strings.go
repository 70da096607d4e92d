package lang

import "github.com/dfabench/dfabench/internal/machine"

// FinalString returns the state reached after the runes of s.
func FinalString[S comparable](l *Language[S, rune], s string) S {
	return machine.RunString(l.Machine(), s)
}

// TraceString is Trace over the runes of s.
func TraceString[S comparable](l *Language[S, rune], s string) []Step[S, rune] {
	return l.Trace([]rune(s))
}

// Matcher answers accept/reject for whole strings.
type Matcher[S comparable] struct {
	l *Language[S, rune]
}

// Strings adapts l to string input.
func Strings[S comparable](l *Language[S, rune]) Matcher[S] {
	return Matcher[S]{l: l}
}

// Name returns "fsm", the label used next to regex baselines.
func (m Matcher[S]) Name() string { return "fsm" }

// Match reports whether s is in the language.
func (m Matcher[S]) Match(s string) bool {
	return m.l.IsAccepting(FinalString(m.l, s))
}

// Language returns the wrapped language.
func (m Matcher[S]) Language() *Language[S, rune] { return m.l }
