package main

import (
	"os"

	"github.com/aherrada/gridclean/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
