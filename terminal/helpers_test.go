package terminal

import (
	"errors"
	"fmt"
)

// fakeDevice models a device whose mode is a plain integer
type fakeDevice struct {
	mode     int
	saved    int
	sets     int
	restores int

	saveErr    error
	rawErr     error
	restoreErr error
}

const fakeRawMode = -1

func (d *fakeDevice) save() error {
	if d.saveErr != nil {
		return d.saveErr
	}
	d.saved = d.mode
	return nil
}

func (d *fakeDevice) makeRaw() error {
	if d.rawErr != nil {
		return d.rawErr
	}
	d.sets++
	d.mode = fakeRawMode
	return nil
}

func (d *fakeDevice) restore() error {
	d.restores++
	if d.restoreErr != nil {
		return d.restoreErr
	}
	d.sets++
	d.mode = d.saved
	return nil
}

// failWriter fails every write after the first n bytes
type failWriter struct {
	n       int
	written []byte
}

var errWrite = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	room := w.n - len(w.written)
	if room <= 0 {
		return 0, errWrite
	}
	if len(p) > room {
		w.written = append(w.written, p[:room]...)
		return room, errWrite
	}
	w.written = append(w.written, p...)
	return len(p), nil
}

// fakeConsole records console calls
type fakeConsole struct {
	row, col int
	calls    []string
	text     string
	batches  [][]consoleKey

	posErr   error
	setErr   error
	writeErr error
	readErr  error

	restored int
}

func (c *fakeConsole) cursorPosition() (int, int, error) {
	if c.posErr != nil {
		return 0, 0, c.posErr
	}
	return c.row, c.col, nil
}

func (c *fakeConsole) setCursorPosition(row, col int) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.row, c.col = row, col
	c.calls = append(c.calls, fmt.Sprintf("pos(%d,%d)", row, col))
	return nil
}

func (c *fakeConsole) clear() error {
	c.row, c.col = 0, 0
	c.calls = append(c.calls, "clear")
	return nil
}

func (c *fakeConsole) writeText(s string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.text += s
	c.calls = append(c.calls, fmt.Sprintf("write(%q)", s))
	return nil
}

func (c *fakeConsole) readKeys() ([]consoleKey, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	if len(c.batches) == 0 {
		return nil, nil
	}
	b := c.batches[0]
	c.batches = c.batches[1:]
	return b, nil
}

func (c *fakeConsole) restore() error {
	c.restored++
	return nil
}

// collect drains one wait cycle
func collect(t Terminal) ([]Event, error) {
	var events []Event
	for ev, err := range t.WaitEvents() {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}
