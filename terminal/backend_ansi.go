package terminal

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"os"

	"golang.org/x/term"
)

// outputBufSize is the size of the buffered writer in front of the output stream
const outputBufSize = 16384

// ansiTerm drives an xterm-compatible terminal through escape sequences
// Cursor position is left to the terminal itself, which clamps relative moves at its margins
type ansiTerm struct {
	out    *bufio.Writer
	events *byteSource
	guard  *RawMode
	closed bool
}

// NewANSI opens an escape-sequence session on the given streams
// in must be a terminal; it is switched to raw mode until Close
func NewANSI(in, out *os.File) (Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	t, err := newANSI(in, out, newRawDevice(fd))
	if err != nil {
		return nil, err
	}
	return t, nil
}

// newANSI acquires raw mode on dev before anything is written
func newANSI(in io.Reader, out io.Writer, dev modeDevice) (*ansiTerm, error) {
	guard, err := acquireRawMode(dev)
	if err != nil {
		return nil, err
	}
	return &ansiTerm{
		out:    bufio.NewWriterSize(out, outputBufSize),
		events: newByteSource(in),
		guard:  guard,
	}, nil
}

func (t *ansiTerm) Clear() error {
	if t.closed {
		return ErrClosed
	}
	_, err := t.out.Write(csiClear)
	return err
}

func (t *ansiTerm) MoveCursor(row, col int) error {
	if t.closed {
		return ErrClosed
	}
	return writeCursorPos(t.out, row, col)
}

func (t *ansiTerm) CursorUp(n int) error      { return t.moveRel(n, finalUp) }
func (t *ansiTerm) CursorDown(n int) error    { return t.moveRel(n, finalDown) }
func (t *ansiTerm) CursorForward(n int) error { return t.moveRel(n, finalForward) }
func (t *ansiTerm) CursorBack(n int) error    { return t.moveRel(n, finalBack) }

func (t *ansiTerm) moveRel(n int, final byte) error {
	if t.closed {
		return ErrClosed
	}
	if n <= 0 {
		return nil
	}
	return writeCursorRel(t.out, n, final)
}

func (t *ansiTerm) Print(ch rune) error {
	if t.closed {
		return ErrClosed
	}
	if ch < 0x80 {
		return t.out.WriteByte(byte(ch))
	}
	_, err := t.out.WriteRune(ch)
	return err
}

func (t *ansiTerm) Flush() error {
	if t.closed {
		return ErrClosed
	}
	return t.out.Flush()
}

func (t *ansiTerm) WaitEvents() iter.Seq2[Event, error] {
	if t.closed {
		return closedEvents
	}
	return t.events.cycle()
}

// Close flushes pending output and restores the original input mode
// Restoration is attempted even when the flush fails
func (t *ansiTerm) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	flushErr := t.out.Flush()
	return errors.Join(flushErr, t.guard.Release())
}

// closedEvents is the wait cycle of a closed session
func closedEvents(yield func(Event, error) bool) {
	yield(Event{}, ErrClosed)
}
