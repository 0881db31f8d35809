package main

import (
	"os"

	"github.com/rustyeddy/pnlreport/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
