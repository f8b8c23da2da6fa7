package main

import (
	"os"

	"santaos/cmd/santaos/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
