// Package cli provides common utilities for the evermore command-line tool.
//
// This package includes:
//   - Configuration management (contexts with provider credentials)
//   - Output formatting (JSON, YAML, raw)
//   - Profile/request file loading (YAML/JSON)
//   - Terminal UI helpers for long-running pipeline runs
//
// Configuration is stored in ~/.evermore/<app>/ directory, supporting
// multiple contexts similar to kubectl.
//
// Example usage:
//
//	// Initialize config for your app
//	cfg, err := cli.LoadConfig("evermore")
//
//	// Get current context
//	ctx, err := cfg.GetCurrentContext()
//
//	// Output result
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli
