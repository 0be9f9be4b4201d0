// Package main is the entry point for the planwatch CLI.
package main

import (
	"os"

	"github.com/planwatch/planwatch/cmd/planwatch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
