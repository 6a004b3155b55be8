package main

import (
	"os"

	"github.com/theapemachine/qhack/internal/cli"
)

func main() {
	if err := cli.NewSimpleCircuitsCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
