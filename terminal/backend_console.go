package terminal

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// consoleBatchSize is the maximum number of input records read per wait cycle
const consoleBatchSize = 128

// consoleKey is one key input record reduced to the fields the backend decodes
type consoleKey struct {
	Down bool
	Char rune
	Mods Modifier
}

// consoleAPI is the native console surface behind the console backend
// Coordinates are zero-based rows and columns
type consoleAPI interface {
	cursorPosition() (row, col int, err error)
	setCursorPosition(row, col int) error
	// clear blanks the whole screen buffer and homes the cursor
	clear() error
	writeText(s string) error
	// readKeys blocks until at least one input record is available
	readKeys() ([]consoleKey, error)
	// restore puts back console state captured when the session opened, except input mode
	restore() error
}

// consoleTerm drives a console through structured API calls
// The console cannot be cheaply queried per call, so position is tracked locally:
// cursor is where the console is, end is where it will be once pending text is written
type consoleTerm struct {
	api     consoleAPI
	guard   *RawMode
	cursor  Cursor
	end     Cursor
	pending strings.Builder
	closed  bool
}

// newConsole acquires raw mode on dev, then seeds the tracked position from a real query
func newConsole(api consoleAPI, dev modeDevice) (*consoleTerm, error) {
	guard, err := acquireRawMode(dev)
	if err != nil {
		return nil, err
	}
	row, col, err := api.cursorPosition()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("query cursor position: %w", err), api.restore(), guard.Release())
	}
	t := &consoleTerm{api: api, guard: guard}
	t.commit(Cursor{Row: row, Col: col})
	return t, nil
}

// commit records a position the console has accepted
func (t *consoleTerm) commit(c Cursor) {
	t.cursor = c
	t.end = c
}

// flushPending writes buffered text so that it lands before the next positioning call
// On failure the text stays queued and the tracked position is not advanced
func (t *consoleTerm) flushPending() error {
	if t.pending.Len() == 0 {
		return nil
	}
	if err := t.api.writeText(t.pending.String()); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	t.pending.Reset()
	t.commit(t.end)
	return nil
}

func (t *consoleTerm) Clear() error {
	if t.closed {
		return ErrClosed
	}
	if err := t.flushPending(); err != nil {
		return err
	}
	if err := t.api.clear(); err != nil {
		return fmt.Errorf("clear console: %w", err)
	}
	t.commit(Cursor{})
	return nil
}

func (t *consoleTerm) MoveCursor(row, col int) error {
	return t.moveTo(func(c *Cursor) { c.Set(row, col) })
}

func (t *consoleTerm) CursorUp(n int) error {
	return t.moveTo(func(c *Cursor) { c.Up(n) })
}

func (t *consoleTerm) CursorDown(n int) error {
	return t.moveTo(func(c *Cursor) { c.Down(n) })
}

func (t *consoleTerm) CursorForward(n int) error {
	return t.moveTo(func(c *Cursor) { c.Forward(n) })
}

func (t *consoleTerm) CursorBack(n int) error {
	return t.moveTo(func(c *Cursor) { c.Back(n) })
}

// moveTo writes pending text, applies step to the resulting position and commits it
// only after the console accepted it
func (t *consoleTerm) moveTo(step func(*Cursor)) error {
	if t.closed {
		return ErrClosed
	}
	if err := t.flushPending(); err != nil {
		return err
	}
	next := t.cursor
	step(&next)
	if err := t.api.setCursorPosition(next.Row, next.Col); err != nil {
		return fmt.Errorf("set cursor position: %w", err)
	}
	t.commit(next)
	return nil
}

func (t *consoleTerm) Print(ch rune) error {
	if t.closed {
		return ErrClosed
	}
	t.pending.WriteRune(ch)
	t.end.Advance(ch)
	return nil
}

func (t *consoleTerm) Flush() error {
	if t.closed {
		return ErrClosed
	}
	return t.flushPending()
}

// WaitEvents reads one batch of records; records that are not key-down are skipped
func (t *consoleTerm) WaitEvents() iter.Seq2[Event, error] {
	if t.closed {
		return closedEvents
	}
	return func(yield func(Event, error) bool) {
		keys, err := t.api.readKeys()
		if err != nil {
			yield(Event{}, fmt.Errorf("read console input: %w", err))
			return
		}
		for _, k := range keys {
			if !k.Down {
				continue
			}
			if !yield(decodeConsoleKey(k), nil) {
				return
			}
		}
	}
}

// Close writes pending text, then restores console state and input mode
func (t *consoleTerm) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return errors.Join(t.flushPending(), t.api.restore(), t.guard.Release())
}

// decodeConsoleKey maps a key-down record; a record without a character is unknown
func decodeConsoleKey(k consoleKey) Event {
	if k.Char == 0 {
		return Event{Key: KeyUnknown, Modifiers: k.Mods}
	}
	return RuneEvent(k.Char, k.Mods)
}
