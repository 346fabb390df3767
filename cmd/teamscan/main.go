// Package main is the entry point for the teamscan CLI.
package main

import (
	"os"

	"github.com/jmylchreest/teamscan/cmd/teamscan/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
