// Command graphia-core is a thin CLI surface over package document: it
// owns one Document for the process lifetime, loading it from a session
// file (if --session names one) on startup and the user driving every
// other change through the subcommands below.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes, per the open/save/transform surface's error handling design:
// a clean run is 0, a failed file open is 1, and any other unrecoverable
// core error is 2.
const (
	exitOK            = 0
	exitFailedOpen    = 1
	exitUnrecoverable = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a command error to one of the three exit codes the CLI
// surface defines. Subcommands wrap open failures in openError so this
// stays the single place that decides the process exit code.
func exitCodeFor(err error) int {
	var oe *openError
	if errors.As(err, &oe) {
		return exitFailedOpen
	}
	return exitUnrecoverable
}

// openError marks an error as a failed file open (§6: exit code 1),
// distinct from an unrecoverable core error (exit code 2).
type openError struct{ err error }

func (e *openError) Error() string { return e.err.Error() }
func (e *openError) Unwrap() error { return e.err }

func wrapOpenError(err error) error {
	if err == nil {
		return nil
	}
	return &openError{err: err}
}
