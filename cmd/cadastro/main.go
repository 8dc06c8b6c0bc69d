package main

import (
	"os"

	"github.com/jask/cadastro/cmd/cadastro/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
