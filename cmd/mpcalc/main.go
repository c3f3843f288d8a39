package main

import (
	"os"

	"github.com/msto63/mpnum/cmd/mpcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
