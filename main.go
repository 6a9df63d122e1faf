// Package main is the entry point for the slinx CLI.
package main

import "slinx.dev/pkg/slinx/cmd"

func main() {
	cmd.Execute()
}
