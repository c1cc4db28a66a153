package main

import (
	"os"

	"github.com/credport/authflow/cmd/authctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintErr("Error: %v", err)
		os.Exit(1)
	}
}
