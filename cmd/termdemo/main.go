// Command termdemo opens a terminal session, draws a greeting and moves the cursor
// with vi keys until the quit key is pressed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"unicode"

	"github.com/lixenwraith/termcore/render"
	"github.com/lixenwraith/termcore/terminal"
	"github.com/lixenwraith/termcore/terminal/tcellterm"
)

var (
	backendFlag = flag.String("backend", "auto", "Terminal backend: auto, ansi, tcell")
	debugFlag   = flag.Bool("debug", false, "Write debug log to logs/termdemo.log")
	keymapFlag  = flag.String("keymap", "", "Path to a TOML keymap file")
)

const (
	greeting    = "Hello World"
	greetingRow = 0
	greetingCol = 10
)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so deferred cleanup runs before the process exits
func realMain() int {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	keys, err := loadKeymap(*keymapFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	term, err := openTerminal(*backendFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Close()
	defer terminal.RestoreOnPanic(term)

	if err := run(term, keys); err != nil {
		term.Close()
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

// openTerminal selects a backend by name
func openTerminal(backend string) (terminal.Terminal, error) {
	switch backend {
	case "auto":
		return terminal.New()
	case "ansi":
		return terminal.NewANSI(os.Stdin, os.Stdout)
	case "tcell":
		t, err := tcellterm.New()
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func run(term terminal.Terminal, keys Keymap) error {
	width, height := terminal.Size()
	log.Printf("terminal size %dx%d, backend %s", width, height, *backendFlag)

	r := render.NewRenderer(term, width, height)
	r.Buffer().SetString(greetingCol, greetingRow, greeting)
	if _, err := r.Frame(); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if err := term.MoveCursor(greetingRow+1, 0); err != nil {
		return err
	}
	if err := term.Flush(); err != nil {
		return err
	}

	loop := &eventLoop{term: term, keys: keys}
	for {
		quit, err := loop.handleCycle()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// maxReadFailures bounds consecutive failed wait cycles before the loop gives up
const maxReadFailures = 3

// eventLoop applies decoded events to the terminal
type eventLoop struct {
	term     terminal.Terminal
	keys     Keymap
	failures int
}

// handleCycle runs one wait cycle and applies each event
// Returns true when the quit key was seen or input ended
func (l *eventLoop) handleCycle() (bool, error) {
	for ev, err := range l.term.WaitEvents() {
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, terminal.ErrClosed) {
				log.Printf("input ended: %v", err)
				return true, nil
			}
			l.failures++
			log.Printf("wait (%d/%d): %v", l.failures, maxReadFailures, err)
			if l.failures >= maxReadFailures {
				return false, fmt.Errorf("read input: %d consecutive failures: %w", l.failures, err)
			}
			continue
		}
		l.failures = 0

		log.Printf("event %s", ev)
		if err := apply(l.term, l.keys, ev); err != nil {
			if errors.Is(err, errQuit) {
				return true, nil
			}
			return false, err
		}
	}
	return false, nil
}

var errQuit = errors.New("quit")

func apply(term terminal.Terminal, keys Keymap, ev terminal.Event) error {
	var err error
	switch keys.actionFor(ev) {
	case actionQuit:
		return errQuit
	case actionLeft:
		err = term.CursorBack(1)
	case actionDown:
		err = term.CursorDown(1)
	case actionUp:
		err = term.CursorUp(1)
	case actionRight:
		err = term.CursorForward(1)
	default:
		if ev.Key != terminal.KeyRune || !unicode.IsPrint(ev.Rune) {
			return nil
		}
		err = term.Print(ev.Rune)
	}
	if err != nil {
		return err
	}
	return term.Flush()
}
