// Package lang binds a transition relation, an initial state and a set of
// accepting states into a recognizer. Every query runs on a fresh machine so
// results never depend on earlier inputs.
package lang

import (
	"fmt"

	"github.com/dfabench/dfabench/internal/machine"
)

// Language recognizes the inputs whose final state is accepting.
// It is immutable after New and safe for concurrent use as long as its
// transition relation is.
type Language[S, Y comparable] struct {
	name      string
	delta     machine.Transition[S, Y]
	initial   S
	accepting map[S]struct{}
}

// New builds a language. A nil transition is rejected.
func New[S, Y comparable](name string, delta machine.Transition[S, Y], initial S, accepting ...S) (*Language[S, Y], error) {
	if _, err := machine.New(delta, initial); err != nil {
		return nil, fmt.Errorf("language %q: %w", name, err)
	}
	acc := make(map[S]struct{}, len(accepting))
	for _, s := range accepting {
		acc[s] = struct{}{}
	}
	return &Language[S, Y]{name: name, delta: delta, initial: initial, accepting: acc}, nil
}

// Name returns the language name.
func (l *Language[S, Y]) Name() string { return l.name }

// Initial returns the start state.
func (l *Language[S, Y]) Initial() S { return l.initial }

// Transition returns the underlying relation.
func (l *Language[S, Y]) Transition() machine.Transition[S, Y] { return l.delta }

// Machine returns a new machine at the initial state.
func (l *Language[S, Y]) Machine() *machine.Machine[S, Y] {
	return machine.MustNew(l.delta, l.initial)
}

// IsAccepting reports whether s is an accepting state.
func (l *Language[S, Y]) IsAccepting(s S) bool {
	_, ok := l.accepting[s]
	return ok
}

// Accepting returns the accepting states in no particular order.
func (l *Language[S, Y]) Accepting() []S {
	out := make([]S, 0, len(l.accepting))
	for s := range l.accepting {
		out = append(out, s)
	}
	return out
}

// Final returns the state reached after input.
func (l *Language[S, Y]) Final(input []Y) S {
	return machine.Fold(l.delta, l.initial, input)
}

// Accepts reports whether input ends in an accepting state.
func (l *Language[S, Y]) Accepts(input []Y) bool {
	return l.IsAccepting(l.Final(input))
}

// Step records one transition taken while consuming input.
type Step[S, Y any] struct {
	Index  int `json:"index"`
	Symbol Y   `json:"symbol"`
	From   S   `json:"from"`
	To     S   `json:"to"`
}

// Trace returns every transition taken over input.
func (l *Language[S, Y]) Trace(input []Y) []Step[S, Y] {
	m := l.Machine()
	steps := make([]Step[S, Y], 0, len(input))
	for i, sym := range input {
		from := m.Current()
		steps = append(steps, Step[S, Y]{Index: i, Symbol: sym, From: from, To: m.Step(sym)})
	}
	return steps
}
