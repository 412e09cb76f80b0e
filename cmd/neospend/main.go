package main

import (
	"os"

	"github.com/neospend-dev/neospend/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
