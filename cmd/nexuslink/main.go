package main

import (
	"fmt"
	"os"
)

// cliVersion is the nexuslink CLI's own release tag, unrelated to the
// component version-constraint grammar implemented in internal/version.
const cliVersion = "0.1.0"

func version() string {
	return fmt.Sprintf("nexuslink %s", cliVersion)
}

func main() {
	cmd := newRootCmd()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if cliErr, ok := err.(*cliError); ok {
			os.Exit(cliErr.code)
		}
		os.Exit(exitUnspecified)
	}
}
