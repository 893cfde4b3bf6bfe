package main

import (
	"os"

	"github.com/cifix/cifix/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
