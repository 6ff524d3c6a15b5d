// Package main is the entry point for the jyutping CLI.
package main

import (
	"os"

	"github.com/cantoneseslang/cantonese-pronunciation-map/cmd/jyutping/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
