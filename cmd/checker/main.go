package main

import (
	"os"

	"github.com/deppfellow/opl-checker/cmd/checker/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
