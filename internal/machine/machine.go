package machine

import (
	"errors"
	"iter"
)

// ErrNilTransition is returned when a machine is constructed without a
// transition relation.
var ErrNilTransition = errors.New("machine: transition is nil")

// Transition maps the current state and one input symbol to the next state.
// Implementations must be total over every pair that can occur at runtime and
// must not mutate shared state; an explicit sink state is the usual way to
// absorb invalid input.
type Transition[S, Y any] interface {
	Next(state S, symbol Y) S
}

// TransitionFunc adapts an ordinary function to the Transition interface.
type TransitionFunc[S, Y any] func(state S, symbol Y) S

// Next calls f(state, symbol).
func (f TransitionFunc[S, Y]) Next(state S, symbol Y) S {
	return f(state, symbol)
}

// Machine executes a deterministic transition relation over input symbols.
// It owns a single current-state cell. A Machine is not safe for concurrent
// use; run independent inputs on independent machines. The zero Machine has
// no transition and panics with ErrNilTransition when run; use New.
type Machine[S, Y any] struct {
	delta   Transition[S, Y]
	initial S
	current S
	steps   int
}

// New returns a machine positioned at initial.
func New[S, Y any](delta Transition[S, Y], initial S) (*Machine[S, Y], error) {
	if isNil(delta) {
		return nil, ErrNilTransition
	}
	return &Machine[S, Y]{delta: delta, initial: initial, current: initial}, nil
}

// MustNew is like New but panics if delta is nil.
func MustNew[S, Y any](delta Transition[S, Y], initial S) *Machine[S, Y] {
	m, err := New(delta, initial)
	if err != nil {
		panic(err)
	}
	return m
}

func isNil[S, Y any](delta Transition[S, Y]) bool {
	if delta == nil {
		return true
	}
	if f, ok := delta.(TransitionFunc[S, Y]); ok && f == nil {
		return true
	}
	return false
}

// Run consumes input left to right and returns the state reached after the
// last symbol. Empty input returns the current state. Successive calls
// continue from where the previous one stopped; call Reset to start over.
func (m *Machine[S, Y]) Run(input []Y) S {
	delta := m.transition()
	for _, sym := range input {
		m.current = delta.Next(m.current, sym)
	}
	m.steps += len(input)
	return m.current
}

// RunSeq is Run for streamed input.
func (m *Machine[S, Y]) RunSeq(seq iter.Seq[Y]) S {
	delta := m.transition()
	for sym := range seq {
		m.current = delta.Next(m.current, sym)
		m.steps++
	}
	return m.current
}

// Step consumes exactly one symbol.
func (m *Machine[S, Y]) Step(symbol Y) S {
	m.current = m.transition().Next(m.current, symbol)
	m.steps++
	return m.current
}

func (m *Machine[S, Y]) transition() Transition[S, Y] {
	if m.delta == nil {
		panic(ErrNilTransition)
	}
	return m.delta
}

// Current returns the state the machine holds now.
func (m *Machine[S, Y]) Current() S { return m.current }

// Initial returns the state the machine was constructed with.
func (m *Machine[S, Y]) Initial() S { return m.initial }

// Steps returns the number of symbols consumed since construction or the last Reset.
func (m *Machine[S, Y]) Steps() int { return m.steps }

// Reset returns the machine to its initial state.
func (m *Machine[S, Y]) Reset() {
	m.current = m.initial
	m.steps = 0
}

// RunString runs m over the runes of s.
func RunString[S any](m *Machine[S, rune], s string) S {
	return m.RunSeq(Runes(s))
}

// Runes yields the runes of s in order.
func Runes(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}

// Fold computes the state reached from initial over input without keeping a
// machine around.
func Fold[S, Y any](delta Transition[S, Y], initial S, input []Y) S {
	q := initial
	for _, sym := range input {
		q = delta.Next(q, sym)
	}
	return q
}
