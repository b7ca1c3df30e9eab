package main

import (
	"os"

	"github.com/nkohli/algoprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
