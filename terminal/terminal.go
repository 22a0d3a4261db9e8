package terminal

import (
	"errors"
	"iter"
	"os"

	"golang.org/x/term"
)

var (
	// ErrNotTerminal is returned when the input device is not an interactive terminal
	ErrNotTerminal = errors.New("terminal: input is not a terminal")

	// ErrClosed is returned by every operation after Close
	ErrClosed = errors.New("terminal: session closed")

	// ErrUnsupported is returned on platforms without a backend
	ErrUnsupported = errors.New("terminal: platform not supported")
)

// Terminal drives one character terminal session
// Exactly one session per process is assumed; implementations are not safe for
// concurrent use without external synchronization
type Terminal interface {
	// Clear erases the visible screen
	Clear() error

	// MoveCursor positions cursor (0-indexed)
	// Out-of-bound coordinates are not validated, platform behavior governs
	MoveCursor(row, col int) error

	// Relative moves by n cells, n <= 0 is a no-op
	CursorUp(n int) error
	CursorDown(n int) error
	CursorForward(n int) error
	CursorBack(n int) error

	// Print writes one character at the cursor and advances it
	Print(ch rune) error

	// Flush delivers buffered output to the terminal
	Flush() error

	// WaitEvents returns the events of one wait cycle
	// Pulling the first event blocks until input arrives; a non-nil error ends the cycle
	// Call again for the next cycle
	WaitEvents() iter.Seq2[Event, error]

	// Close restores the device state captured at construction. Safe to call multiple times
	Close() error
}

// Size returns the dimensions of the terminal attached to stdout
func Size() (width, height int) {
	return sizeOf(int(os.Stdout.Fd()))
}

// sizeOf returns the terminal size for fd, 80x24 when it cannot be queried
func sizeOf(fd int) (int, int) {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24 // Fallback
	}
	return w, h
}
