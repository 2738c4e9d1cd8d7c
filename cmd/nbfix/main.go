package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/nbfix/internal/cli"
	"github.com/vvka-141/nbfix/pkg/nbfix"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(nbfix.ExitPanic)
		}
	}()

	if os.Getenv("NBFIX_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(nbfix.ExitCodeForError(err))
	}
}
