package main

import (
	"fmt"
	"os"

	"github.com/mateuszpolis/WinCC-Code-Extractor/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the WinCC code extractor command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
