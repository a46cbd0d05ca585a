package main

import (
	"os"
	"sync"

	"golang.org/x/term"
)

// interactiveTerminal reports whether both stdin and stdout are attached to
// a terminal. The TUI reads keys from stdin, so a piped receipt file rules it out.
var interactiveTerminal = sync.OnceValue(func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
})
