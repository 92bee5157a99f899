package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mmcdole/walls/internal/domain"
	"github.com/mmcdole/walls/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	exitOK      = 0
	exitError   = 1
	exitNoMatch = 2
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// exitCode reports err on stderr and maps it to the process exit code.
// An exhausted result page is a warning, not a failure.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, domain.ErrNoMatch) {
		fmt.Fprint(stderr, tui.RenderNoMatch())
		return exitNoMatch
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}
