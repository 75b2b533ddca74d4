// ABOUTME: Command line client for the Competitor Monitor API
// ABOUTME: Analyzes texts, images and sites against a running server

package main

import (
	"errors"
	"fmt"
	"os"
)

var (
	version = "v1.0.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd(newApp())
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
