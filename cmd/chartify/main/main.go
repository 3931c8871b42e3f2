package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/chartify/cmd/chartify"
)

func main() {
	rootCmd := chartify.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
