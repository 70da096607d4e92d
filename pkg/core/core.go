package core

import (
	"github.com/dfabench/dfabench/internal/definition"
	"github.com/dfabench/dfabench/internal/lang"
	"github.com/dfabench/dfabench/internal/machine"
	"github.com/dfabench/dfabench/internal/report"
	"github.com/dfabench/dfabench/internal/table"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Transition[S, Y any]      = machine.Transition[S, Y]
	TransitionFunc[S, Y any]  = machine.TransitionFunc[S, Y]
	Machine[S, Y any]         = machine.Machine[S, Y]
	Table[S, Y comparable]    = table.Table[S, Y]
	Builder[S, Y comparable]  = table.Builder[S, Y]
	Language[S, Y comparable] = lang.Language[S, Y]
	Step[S, Y any]            = lang.Step[S, Y]
	Definition                = definition.Definition
	Verdict                   = report.Verdict
	TraceRow                  = report.TraceRow
)

var ErrNilTransition = machine.ErrNilTransition

// New creates a machine positioned at initial.
func New[S, Y any](delta Transition[S, Y], initial S) (*Machine[S, Y], error) {
	return machine.New(delta, initial)
}

// NewTable starts a transition table whose unmatched pairs go to sink.
func NewTable[S, Y comparable](sink S) *Builder[S, Y] {
	return table.NewBuilder[S, Y](sink)
}

// NewLanguage pairs a transition relation with its initial and accepting states.
func NewLanguage[S, Y comparable](name string, delta Transition[S, Y], initial S, accepting ...S) (*Language[S, Y], error) {
	return lang.New(name, delta, initial, accepting...)
}

// Builtin returns a bundled definition by name; see Builtins.
func Builtin(name string) (*Definition, error) { return definition.Builtin(name) }

// Builtins lists the bundled definitions.
func Builtins() []string { return definition.Builtins() }

// LoadDefinition reads and validates a YAML definition file.
func LoadDefinition(path string) (*Definition, error) { return definition.Load(path) }

// Evaluate runs each word through l on a fresh machine.
func Evaluate(l *Language[string, rune], words ...string) []Verdict {
	out := make([]Verdict, len(words))
	for i, w := range words {
		final := lang.FinalString(l, w)
		out[i] = Verdict{Input: w, Final: final, Accept: l.IsAccepting(final)}
	}
	return out
}

// Trace returns the transitions taken by l over word.
func Trace(l *Language[string, rune], word string) []TraceRow {
	return report.Rows(lang.TraceString(l, word))
}
