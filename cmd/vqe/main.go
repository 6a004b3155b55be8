package main

import (
	"os"

	"github.com/theapemachine/qhack/internal/cli"
)

func main() {
	if err := cli.NewVQECmd().Execute(); err != nil {
		os.Exit(1)
	}
}
