//go:build windows

package terminal

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/erikgeiser/coninput"
	"golang.org/x/sys/windows"
)

// New opens a session on the process console
func New() (Terminal, error) {
	return NewConsole()
}

// NewConsole opens a console session on the standard input and output handles
func NewConsole() (Terminal, error) {
	in, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, fmt.Errorf("get input handle: %w", err)
	}
	out, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return nil, fmt.Errorf("get output handle: %w", err)
	}

	c := &winConsole{in: in, out: out}
	if err := getConsoleCursorInfo(out, &c.cursorInfo); err != nil {
		return nil, fmt.Errorf("query cursor info: %w", err)
	}
	if err := windows.GetConsoleScreenBufferInfo(out, &c.info); err != nil {
		return nil, fmt.Errorf("query screen buffer info: %w", err)
	}

	t, err := newConsole(c, &consoleModeDevice{h: in})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// winConsole binds consoleAPI to kernel32 console calls
type winConsole struct {
	in  windows.Handle
	out windows.Handle

	// Captured at session start and put back by restore; info.Attributes is also the fill attribute for clear
	cursorInfo consoleCursorInfo
	info       windows.ConsoleScreenBufferInfo
}

func (c *winConsole) cursorPosition() (int, int, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.out, &info); err != nil {
		return 0, 0, err
	}
	return int(info.CursorPosition.Y), int(info.CursorPosition.X), nil
}

func (c *winConsole) setCursorPosition(row, col int) error {
	return windows.SetConsoleCursorPosition(c.out, windows.Coord{X: int16(col), Y: int16(row)})
}

func (c *winConsole) clear() error {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.out, &info); err != nil {
		return err
	}
	size := uint32(info.Size.X) * uint32(info.Size.Y)
	origin := windows.Coord{}
	var written uint32
	if err := fillConsoleOutputCharacter(c.out, ' ', size, origin, &written); err != nil {
		return err
	}
	if err := fillConsoleOutputAttribute(c.out, c.info.Attributes, size, origin, &written); err != nil {
		return err
	}
	return windows.SetConsoleCursorPosition(c.out, origin)
}

func (c *winConsole) writeText(s string) error {
	buf := utf16.Encode([]rune(s))
	for len(buf) > 0 {
		var written uint32
		if err := windows.WriteConsole(c.out, &buf[0], uint32(len(buf)), &written, nil); err != nil {
			return err
		}
		if written == 0 {
			return io.ErrShortWrite
		}
		buf = buf[written:]
	}
	return nil
}

func (c *winConsole) readKeys() ([]consoleKey, error) {
	records, err := coninput.ReadNConsoleInputs(c.in, consoleBatchSize)
	if err != nil {
		return nil, err
	}
	keys := make([]consoleKey, 0, len(records))
	for _, rec := range records {
		ke, ok := rec.Unwrap().(coninput.KeyEventRecord)
		if !ok {
			continue
		}
		keys = append(keys, consoleKey{
			Down: ke.KeyDown,
			Char: ke.Char,
			Mods: controlModifiers(ke.ControlKeyState),
		})
	}
	return keys, nil
}

// restore puts back cursor size and visibility, cursor position and text attribute
func (c *winConsole) restore() error {
	info := c.cursorInfo
	return errors.Join(
		setConsoleCursorInfo(c.out, &info),
		windows.SetConsoleCursorPosition(c.out, c.info.CursorPosition),
		setConsoleTextAttribute(c.out, c.info.Attributes),
	)
}

func controlModifiers(s coninput.ControlKeyState) Modifier {
	var m Modifier
	if s.Contains(coninput.SHIFT_PRESSED) {
		m |= ModShift
	}
	if s.Contains(coninput.LEFT_ALT_PRESSED) || s.Contains(coninput.RIGHT_ALT_PRESSED) {
		m |= ModAlt
	}
	if s.Contains(coninput.LEFT_CTRL_PRESSED) || s.Contains(coninput.RIGHT_CTRL_PRESSED) {
		m |= ModCtrl
	}
	return m
}

// consoleModeDevice switches the console input handle to raw key and mouse delivery
type consoleModeDevice struct {
	h    windows.Handle
	orig uint32
}

func (d *consoleModeDevice) save() error {
	return windows.GetConsoleMode(d.h, &d.orig)
}

// makeRaw enables window and mouse input; line, echo and processed input are left off
func (d *consoleModeDevice) makeRaw() error {
	mode := coninput.AddInputModes(0,
		windows.ENABLE_WINDOW_INPUT,
		windows.ENABLE_MOUSE_INPUT,
		windows.ENABLE_EXTENDED_FLAGS,
	)
	return windows.SetConsoleMode(d.h, mode)
}

func (d *consoleModeDevice) restore() error {
	return windows.SetConsoleMode(d.h, d.orig)
}
