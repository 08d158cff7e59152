// Package main provides the entry point for the sentinel file-integrity
// monitor CLI.
package main

import (
	"fmt"
	"os"
)

// exitCode carries the stable exit-code contract out of a command's
// RunE without cobra printing its own generic failure message; RunE
// implementations set it directly and return nil once they've handled
// their own error reporting.
var exitCode int

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
