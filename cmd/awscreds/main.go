package main

import (
	"os"

	"github.com/majorcontext/awscreds/cmd/awscreds/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
