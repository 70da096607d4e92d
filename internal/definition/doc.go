// Package definition loads language definitions from YAML and compiles them
// into table-driven recognizers. A small set of definitions is embedded in
// the binary; see Builtins.
package definition
