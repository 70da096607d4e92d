// Package table provides a data-driven transition relation for the machine
// engine. Edges are looked up by (state, symbol); symbols without an edge fall
// through to a per-state default and finally to a mandatory sink state, so a
// built Table is total.
package table

import (
	"errors"
	"fmt"
)

var (
	ErrSinkEdge           = errors.New("table: sink state cannot have outgoing transitions")
	ErrConflictingEdge    = errors.New("table: conflicting transition")
	ErrConflictingDefault = errors.New("table: conflicting default transition")
)

type key[S, Y comparable] struct {
	state  S
	symbol Y
}

// Table is an immutable transition relation. It is safe for concurrent use.
type Table[S, Y comparable] struct {
	edges    map[key[S, Y]]S
	defaults map[S]S
	sink     S
	states   []S
}

// Next returns the target of (state, symbol): an explicit edge if one exists,
// otherwise the state's default, otherwise the sink.
func (t *Table[S, Y]) Next(state S, symbol Y) S {
	if to, ok := t.edges[key[S, Y]{state, symbol}]; ok {
		return to
	}
	if to, ok := t.defaults[state]; ok {
		return to
	}
	return t.sink
}

// Sink returns the absorbing state.
func (t *Table[S, Y]) Sink() S { return t.sink }

// States lists every state mentioned while building, in order of first
// appearance. The sink is always first.
func (t *Table[S, Y]) States() []S {
	out := make([]S, len(t.states))
	copy(out, t.states)
	return out
}

// Len returns the number of explicit edges.
func (t *Table[S, Y]) Len() int { return len(t.edges) }

// Builder accumulates edges for a Table.
type Builder[S, Y comparable] struct {
	sink     S
	edges    map[key[S, Y]]S
	defaults map[S]S
	states   []S
	seen     map[S]struct{}
	errs     []error
}

// NewBuilder starts a table whose invalid input ends in sink.
func NewBuilder[S, Y comparable](sink S) *Builder[S, Y] {
	b := &Builder[S, Y]{
		sink:     sink,
		edges:    make(map[key[S, Y]]S),
		defaults: make(map[S]S),
		seen:     make(map[S]struct{}),
	}
	b.note(sink)
	return b
}

func (b *Builder[S, Y]) note(states ...S) {
	for _, s := range states {
		if _, ok := b.seen[s]; ok {
			continue
		}
		b.seen[s] = struct{}{}
		b.states = append(b.states, s)
	}
}

// On adds the edge from --symbol--> to.
func (b *Builder[S, Y]) On(from S, symbol Y, to S) *Builder[S, Y] {
	b.note(from, to)
	if from == b.sink {
		b.errs = append(b.errs, fmt.Errorf("%w: %v on %v", ErrSinkEdge, from, symbol))
		return b
	}
	k := key[S, Y]{from, symbol}
	if prev, ok := b.edges[k]; ok && prev != to {
		b.errs = append(b.errs, fmt.Errorf("%w: %v on %v goes to both %v and %v", ErrConflictingEdge, from, symbol, prev, to))
		return b
	}
	b.edges[k] = to
	return b
}

// OnEach adds the same edge for every symbol.
func (b *Builder[S, Y]) OnEach(from S, symbols []Y, to S) *Builder[S, Y] {
	for _, sym := range symbols {
		b.On(from, sym, to)
	}
	return b
}

// Otherwise sets where from goes on symbols it has no edge for. Without it
// those symbols lead to the sink.
func (b *Builder[S, Y]) Otherwise(from, to S) *Builder[S, Y] {
	b.note(from, to)
	if from == b.sink {
		if to != b.sink {
			b.errs = append(b.errs, fmt.Errorf("%w: default %v", ErrSinkEdge, to))
		}
		return b
	}
	if prev, ok := b.defaults[from]; ok && prev != to {
		b.errs = append(b.errs, fmt.Errorf("%w: %v defaults to both %v and %v", ErrConflictingDefault, from, prev, to))
		return b
	}
	b.defaults[from] = to
	return b
}

// Build validates the accumulated edges and returns the table.
func (b *Builder[S, Y]) Build() (*Table[S, Y], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	t := &Table[S, Y]{
		edges:    make(map[key[S, Y]]S, len(b.edges)),
		defaults: make(map[S]S, len(b.defaults)),
		sink:     b.sink,
		states:   append([]S(nil), b.states...),
	}
	for k, v := range b.edges {
		t.edges[k] = v
	}
	for k, v := range b.defaults {
		t.defaults[k] = v
	}
	return t, nil
}
