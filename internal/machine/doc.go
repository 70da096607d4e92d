// Package machine is the deterministic finite-state-machine execution engine.
// A Machine pairs a caller-supplied transition relation with a current-state
// cell and folds the relation over input symbols one at a time. The package
// knows nothing about alphabets, grammars or acceptance: callers decide which
// final states mean "accept".
package machine
