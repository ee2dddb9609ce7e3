// jutge - command-line client for the Jutge API.
package main

import (
	"errors"
	"os"

	"github.com/petal-labs/jutge/cli/commands"
)

// exitCoder is implemented by errors that carry a process exit code.
type exitCoder interface {
	ExitCode() int
}

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var ec exitCoder
	if errors.As(err, &ec) {
		os.Exit(ec.ExitCode())
	}
	os.Exit(1)
}
