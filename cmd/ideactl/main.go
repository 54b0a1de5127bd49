// Package main is the entry point for the ideaflow admin CLI.
package main

import (
	"os"

	"github.com/spec-kit/ideaflow/cmd/ideactl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
