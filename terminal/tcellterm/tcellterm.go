// Package tcellterm implements terminal.Terminal on top of a tcell screen.
//
// tcell owns the raw-mode lifecycle: Init acquires it and Fini restores it.
// The cursor position is tracked locally since tcell has no relative moves.
package tcellterm

import (
	"fmt"
	"iter"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcore/terminal"
)

var _ terminal.Terminal = (*Terminal)(nil)

// Terminal adapts a tcell.Screen to terminal.Terminal
type Terminal struct {
	screen tcell.Screen
	style  tcell.Style
	cursor terminal.Cursor

	// Cell holding the last printed base rune; zero-width runes attach to it
	base    terminal.Cursor
	hasBase bool

	finiOnce sync.Once
	closed   bool
}

// New opens a session on the default tcell screen
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(screen)
}

// NewWithScreen initializes screen and takes ownership of it until Close
func NewWithScreen(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return &Terminal{
		screen: screen,
		style:  tcell.StyleDefault,
	}, nil
}

// Clear erases screen content; the tracked position is kept
func (t *Terminal) Clear() error {
	if t.closed {
		return terminal.ErrClosed
	}
	t.screen.Clear()
	t.hasBase = false
	return nil
}

func (t *Terminal) MoveCursor(row, col int) error {
	if t.closed {
		return terminal.ErrClosed
	}
	t.cursor.Set(row, col)
	t.hasBase = false
	t.showCursor()
	return nil
}

func (t *Terminal) CursorUp(n int) error      { return t.moveRel(t.cursor.Up, n) }
func (t *Terminal) CursorDown(n int) error    { return t.moveRel(t.cursor.Down, n) }
func (t *Terminal) CursorForward(n int) error { return t.moveRel(t.cursor.Forward, n) }
func (t *Terminal) CursorBack(n int) error    { return t.moveRel(t.cursor.Back, n) }

func (t *Terminal) moveRel(move func(int), n int) error {
	if t.closed {
		return terminal.ErrClosed
	}
	move(n)
	t.hasBase = false
	t.showCursor()
	return nil
}

func (t *Terminal) showCursor() {
	t.screen.ShowCursor(t.cursor.Col, t.cursor.Row)
}

// Print sets content at the tracked position; off-screen positions are dropped by tcell
// Zero-width runes are combined into the cell of the previous base rune
func (t *Terminal) Print(ch rune) error {
	if t.closed {
		return terminal.ErrClosed
	}
	switch {
	case ch == '\n' || ch == '\r':
		t.hasBase = false
	case terminal.RuneAdvance(ch) == 0:
		if t.hasBase {
			mainc, combc, style, _ := t.screen.GetContent(t.base.Col, t.base.Row)
			combc = append(combc[:len(combc):len(combc)], ch)
			t.screen.SetContent(t.base.Col, t.base.Row, mainc, combc, style)
		}
	default:
		t.screen.SetContent(t.cursor.Col, t.cursor.Row, ch, nil, t.style)
		t.base = t.cursor
		t.hasBase = true
	}
	t.cursor.Advance(ch)
	return nil
}

// Flush makes pending content visible
func (t *Terminal) Flush() error {
	if t.closed {
		return terminal.ErrClosed
	}
	t.showCursor()
	t.screen.Show()
	return nil
}

// WaitEvents polls until one key event arrives; resize, mouse and other events are skipped
func (t *Terminal) WaitEvents() iter.Seq2[terminal.Event, error] {
	return func(yield func(terminal.Event, error) bool) {
		if t.closed {
			yield(terminal.Event{}, terminal.ErrClosed)
			return
		}
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// Screen finalized underneath us
				yield(terminal.Event{}, terminal.ErrClosed)
				return
			}
			if k, ok := ev.(*tcell.EventKey); ok {
				yield(decodeKey(k), nil)
				return
			}
		}
	}
}

// Close finalizes the screen exactly once, restoring the terminal
func (t *Terminal) Close() error {
	t.finiOnce.Do(func() {
		t.closed = true
		t.screen.Fini()
	})
	return nil
}

// decodeKey maps runes and ASCII control keys to KeyRune, everything else to KeyUnknown
func decodeKey(k *tcell.EventKey) terminal.Event {
	mods := decodeModifiers(k.Modifiers())
	switch key := k.Key(); {
	case key == tcell.KeyRune:
		return terminal.RuneEvent(k.Rune(), mods)
	case key >= 0 && key < 0x80:
		// tcell control keys carry their ASCII code
		return terminal.RuneEvent(rune(key), mods)
	default:
		return terminal.Event{Key: terminal.KeyUnknown, Modifiers: mods}
	}
}

func decodeModifiers(m tcell.ModMask) terminal.Modifier {
	var mods terminal.Modifier
	if m&tcell.ModShift != 0 {
		mods |= terminal.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mods |= terminal.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mods |= terminal.ModCtrl
	}
	return mods
}
