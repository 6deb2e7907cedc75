// Package main provides the entry point for the paperdex CLI.
package main

import (
	"os"

	"github.com/paperdex/paperdex/cmd/paperdex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
