package main

import (
	"os"

	"github.com/ssselery/techtrack/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
