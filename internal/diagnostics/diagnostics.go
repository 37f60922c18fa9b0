// Package diagnostics is the CLI's single surface for reporting failures.
// The original has no logging library; its only error-reporting idiom is a
// one-line "Err: %s" print before continuing the REPL loop (repl.go). CLI
// commands here are one-shot rather than a loop, so a failure is reported
// the same way and then the process exits non-zero.
package diagnostics

import (
	"fmt"
	"io"
)

// Fail reports err as a single line ("Err: <message>") and returns the
// process exit code the caller should use. It never itself calls os.Exit,
// so callers (cmd/malh's main) stay in control of process teardown.
func Fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Err: %s\n", err)
	return 1
}
