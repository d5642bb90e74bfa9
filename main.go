package main

import (
	"fmt"
	"os"

	"github.com/temirov/check-project/cmd/cli"
	"github.com/temirov/check-project/internal/clierr"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the check-project command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}
	if !clierr.IsSilent(executionError) {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(clierr.ExitCodeOf(executionError))
}
