package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/chartify/cmd/chartify"
)

func main() {
	if err := chartify.GenManPage(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
