// Package dfabench provides the command-line interface for dfabench. It
// wires subcommands (run, trace, step, bench, compare, def, config, history),
// resolves flags against configuration files and the environment, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/dfabench/dfabench/cmd/dfabench"
//	func main() { dfabench.Execute() }
package dfabench
