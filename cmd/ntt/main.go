package main

import (
	"os"

	"ntt-parser/cmd/ntt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
