// Package core provides a small, stable facade over dfabench's engine for
// external programs. It re-exports a narrow API surface so callers can
// depend on a stable import path without importing internal packages.
//
// Example:
//
//	d, err := core.Builtin("cat")
//	if err != nil { /* handle */ }
//	l, err := d.Compile()
//	if err != nil { /* handle */ }
//	_ = core.MarshalVerdicts(os.Stdout, core.Evaluate(l, "cat", "ca"))
package core
