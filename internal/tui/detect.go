package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fdFile is satisfied by *os.File and anything else backed by a file descriptor.
type fdFile interface {
	Fd() uintptr
}

// ColorEnabled determines whether status output written to w should be styled.
//
// Returns false if:
//   - NBFIX_NO_COLOR=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (https://no-color.org)
//   - w is not a terminal (pipes, files, buffers)
//
// Returns true otherwise.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NBFIX_NO_COLOR") == "1" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(fdFile)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether prompts can be answered on r.
// Returns false in CI or when r is not a terminal.
func IsInteractive(r io.Reader) bool {
	if os.Getenv("CI") != "" {
		return false
	}
	f, ok := r.(fdFile)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
