package main

import "github.com/dfabench/dfabench/cmd/dfabench"

func main() { dfabench.Execute() }
