package main

import (
	"os"

	"github.com/catalogpro/catalog/cmd/catalog/cli"
)

func main() {
	if err := cli.NewRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
