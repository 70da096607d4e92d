// Package config loads dfabench configuration from local and global YAML
// files and DFABENCH_* environment variables with precedence rules. CLI code
// applies flags on top.
package config
