package main

import (
	"os"

	"github.com/Alp4ka/keyset/cmd/keyset/commands"
)

func main() {
	// Cobra reports the error itself.
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
