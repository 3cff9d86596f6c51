// Package main provides the evermore CLI tool.
//
// Usage:
//
//	evermore [flags] <command> [args]
//
// Commands:
//
//	run      - Run the full voice reply pipeline
//	clone    - Enroll a cloned voice from a recording
//	voice    - Voice catalog management (list, clone, delete)
//	say      - Synthesize text with a known voice
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.evermore/evermore/
//	Use 'evermore config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/evermore-ai/evermore/cmd/evermore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
