package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred at the top of main after the session is open
// On panic it closes the session, resets the display, prints the panic value
// and stack trace to stderr, then exits with code 1
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	if t != nil {
		t.Close()
	}
	EmergencyReset(os.Stdout)

	// \r\n in case raw mode could not be left
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Close cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiSGR0)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore the input mode
	// Best-effort; errors ignored in crash context
	resetTerminalMode()
}
