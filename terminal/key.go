package terminal

import (
	"strconv"
	"strings"
)

// Key distinguishes decoded key variants
type Key uint8

const (
	KeyUnknown Key = iota // Unrecognized or unsupported input
	KeyRune               // Single Unicode character (check Event.Rune)
)

// Modifier flags, combinable
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// Event is a decoded key event
// Produced per input record by WaitEvents and not retained by the backend
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// RuneEvent returns a KeyRune event for r with the given modifiers
func RuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// UnknownEvent returns a KeyUnknown event
func UnknownEvent() Event {
	return Event{Key: KeyUnknown}
}

// Is reports whether the event is the unmodified character r
func (e Event) Is(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Modifiers == ModNone
}

// String returns a human-readable form, e.g. "ctrl+alt+'x'" or "unknown"
func (e Event) String() string {
	var sb strings.Builder
	if e.Modifiers != ModNone {
		sb.WriteString(e.Modifiers.String())
		sb.WriteByte('+')
	}
	switch e.Key {
	case KeyRune:
		sb.WriteString(strconv.QuoteRune(e.Rune))
	default:
		sb.WriteString("unknown")
	}
	return sb.String()
}

// String returns the set modifier names joined with '+', or "none"
func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}
