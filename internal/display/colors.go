package display

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	reset = "\033[0m"
	bold  = "\033[1m"

	red    = "\033[31m"
	yellow = "\033[33m"

	brightRed    = "\033[91m"
	brightGreen  = "\033[92m"
	brightYellow = "\033[93m"
)

// ColorEnabled reports whether w is a terminal that should receive ANSI
// colors. NO_COLOR disables colors regardless of the terminal.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
