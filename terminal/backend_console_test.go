package terminal

import (
	"errors"
	"reflect"
	"testing"
)

func newTestConsole(t *testing.T, row, col int) (*consoleTerm, *fakeConsole, *fakeDevice) {
	t.Helper()
	api := &fakeConsole{row: row, col: col}
	dev := &fakeDevice{mode: 0x1f7}
	term, err := newConsole(api, dev)
	if err != nil {
		t.Fatalf("newConsole: %v", err)
	}
	return term, api, dev
}

func TestConsole_SeedsPositionFromQuery(t *testing.T) {
	term, _, _ := newTestConsole(t, 4, 9)
	if term.cursor != (Cursor{Row: 4, Col: 9}) {
		t.Errorf("cursor = %+v, want (4,9)", term.cursor)
	}
}

func TestConsole_RelativeMovesClampAtOrigin(t *testing.T) {
	term, api, _ := newTestConsole(t, 0, 0)

	term.CursorUp(5)
	term.CursorBack(5)
	if term.cursor != (Cursor{}) {
		t.Errorf("from origin: cursor = %+v, want (0,0)", term.cursor)
	}

	term.MoveCursor(3, 3)
	term.CursorUp(5)
	if term.cursor != (Cursor{Row: 0, Col: 3}) {
		t.Errorf("Up(5) from (3,3): cursor = %+v, want (0,3)", term.cursor)
	}
	if api.row != 0 || api.col != 3 {
		t.Errorf("console position = (%d,%d), want (0,3)", api.row, api.col)
	}

	term.CursorDown(40)
	term.CursorForward(100)
	if term.cursor != (Cursor{Row: 40, Col: 103}) {
		t.Errorf("unclamped moves: cursor = %+v, want (40,103)", term.cursor)
	}
}

func TestConsole_PrintBookkeeping(t *testing.T) {
	term, _, _ := newTestConsole(t, 0, 0)

	for _, r := range "ab\ncd\re\u0301" {
		term.Print(r)
	}
	if term.cursor != (Cursor{}) {
		t.Errorf("cursor before flush = %+v, want (0,0)", term.cursor)
	}
	if err := term.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if term.cursor != (Cursor{Row: 1, Col: 1}) {
		t.Errorf("cursor = %+v, want (1,1)", term.cursor)
	}
}

func TestConsole_PendingTextWrittenBeforePositioning(t *testing.T) {
	term, api, _ := newTestConsole(t, 0, 0)

	term.Print('H')
	term.Print('i')
	if len(api.calls) != 0 {
		t.Fatalf("calls before flush = %v, want none", api.calls)
	}
	term.MoveCursor(2, 0)
	term.Print('!')
	term.Flush()

	want := []string{`write("Hi")`, "pos(2,0)", `write("!")`}
	if !reflect.DeepEqual(api.calls, want) {
		t.Errorf("calls = %v, want %v", api.calls, want)
	}
}

func TestConsole_ClearHomesCursor(t *testing.T) {
	term, api, _ := newTestConsole(t, 7, 7)
	if err := term.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if term.cursor != (Cursor{}) {
		t.Errorf("cursor = %+v, want origin", term.cursor)
	}
	if !reflect.DeepEqual(api.calls, []string{"clear"}) {
		t.Errorf("calls = %v", api.calls)
	}
}

func TestConsole_FailedMoveKeepsTrackedPosition(t *testing.T) {
	term, api, _ := newTestConsole(t, 2, 2)
	api.setErr = errors.New("invalid handle")

	if err := term.MoveCursor(5, 5); err == nil {
		t.Fatal("expected error")
	}
	if term.cursor != (Cursor{Row: 2, Col: 2}) {
		t.Errorf("cursor = %+v, want unchanged (2,2)", term.cursor)
	}
}

func TestConsole_WriteFailureSurfaces(t *testing.T) {
	term, api, _ := newTestConsole(t, 0, 0)
	api.writeErr = errors.New("broken")

	term.Print('x')
	if err := term.Flush(); !errors.Is(err, api.writeErr) {
		t.Errorf("flush = %v, want write error", err)
	}
}

func TestConsole_FailedWriteKeepsTextAndPosition(t *testing.T) {
	term, api, _ := newTestConsole(t, 0, 0)
	api.writeErr = errors.New("broken")

	for _, r := range "abc" {
		term.Print(r)
	}
	if err := term.Flush(); err == nil {
		t.Fatal("expected flush error")
	}
	if term.cursor != (Cursor{}) {
		t.Errorf("cursor after failed write = %+v, want (0,0)", term.cursor)
	}

	// A relative move cannot start from a position the console never reached
	if err := term.CursorForward(1); !errors.Is(err, api.writeErr) {
		t.Errorf("forward = %v, want write error", err)
	}
	if len(api.calls) != 0 {
		t.Errorf("calls = %v, want none", api.calls)
	}

	api.writeErr = nil
	if err := term.Flush(); err != nil {
		t.Fatalf("retried flush: %v", err)
	}
	if api.text != "abc" {
		t.Errorf("written = %q, want %q", api.text, "abc")
	}
	if term.cursor != (Cursor{Row: 0, Col: 3}) {
		t.Errorf("cursor = %+v, want (0,3)", term.cursor)
	}

	if err := term.CursorForward(1); err != nil {
		t.Fatalf("forward: %v", err)
	}
	if api.row != 0 || api.col != 4 {
		t.Errorf("console position = (%d,%d), want (0,4)", api.row, api.col)
	}
}

func TestConsole_WaitEventsSkipsNonKeyDown(t *testing.T) {
	term, api, _ := newTestConsole(t, 0, 0)
	api.batches = [][]consoleKey{{
		{Down: true, Char: 'h'},
		{Down: false, Char: 'h'},
		{Down: true, Char: 'J', Mods: ModShift},
		{Down: true, Char: 0, Mods: ModCtrl},
	}}

	events, err := collect(term)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	want := []Event{
		{Key: KeyRune, Rune: 'h'},
		{Key: KeyRune, Rune: 'J', Modifiers: ModShift},
		{Key: KeyUnknown, Modifiers: ModCtrl},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestConsole_WaitEventsStopsEarly(t *testing.T) {
	term, api, _ := newTestConsole(t, 0, 0)
	api.batches = [][]consoleKey{{
		{Down: true, Char: 'a'},
		{Down: true, Char: 'b'},
	}}

	var got []rune
	for ev := range term.WaitEvents() {
		got = append(got, ev.Rune)
		break
	}
	if len(got) != 1 || got[0] != 'a' {
		t.Errorf("got %q, want only 'a'", got)
	}
}

func TestConsole_ReadErrorEndsCycle(t *testing.T) {
	term, api, _ := newTestConsole(t, 0, 0)
	api.readErr = errors.New("closed handle")

	if _, err := collect(term); !errors.Is(err, api.readErr) {
		t.Errorf("err = %v, want read error", err)
	}
}

func TestConsole_CloseRestoresState(t *testing.T) {
	term, api, dev := newTestConsole(t, 0, 0)
	term.Print('z')

	if err := term.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if api.text != "z" {
		t.Errorf("pending text not written on close: %q", api.text)
	}
	if dev.mode != 0x1f7 || api.restored != 1 {
		t.Errorf("mode = %#x restored = %d, want original mode and one restore", dev.mode, api.restored)
	}

	term.Close()
	if dev.restores != 1 || api.restored != 1 {
		t.Errorf("second close restored again")
	}
	if err := term.Print('x'); !errors.Is(err, ErrClosed) {
		t.Errorf("print after close = %v, want ErrClosed", err)
	}
}

func TestConsole_PositionQueryFailureReleasesMode(t *testing.T) {
	api := &fakeConsole{posErr: errors.New("no console")}
	dev := &fakeDevice{mode: 3}

	term, err := newConsole(api, dev)
	if term != nil || !errors.Is(err, api.posErr) {
		t.Fatalf("newConsole = (%v, %v), want (nil, query error)", term, err)
	}
	if dev.mode != 3 {
		t.Errorf("mode = %d, want restored 3", dev.mode)
	}
}
