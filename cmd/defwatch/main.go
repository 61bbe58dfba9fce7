// Package main is the entry point for the defwatch CLI.
package main

import (
	"os"

	"github.com/defwatch/defwatch/cmd/defwatch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
