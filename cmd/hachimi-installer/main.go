package main

import (
	"os"

	"github.com/hachimi-dev/hachimi-installer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
