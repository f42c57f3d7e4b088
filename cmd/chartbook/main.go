package main

import (
	"os"

	"github.com/wonny/chartbook/cmd/chartbook/commands"
)

// main is the entry point for the chartbook CLI.
// Unified CLI entry: go run ./cmd/chartbook [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
