package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/termcore/terminal"
)

type action uint8

const (
	actionNone action = iota
	actionLeft
	actionDown
	actionUp
	actionRight
	actionQuit
)

// Keymap binds demo actions to single unmodified characters
type Keymap struct {
	Left  rune
	Down  rune
	Up    rune
	Right rune
	Quit  rune
}

func defaultKeymap() Keymap {
	return Keymap{Left: 'h', Down: 'j', Up: 'k', Right: 'l', Quit: 'q'}
}

// Rune aliases for keys awkward to write as bare strings
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

type keymapFile struct {
	Keys map[string]string `toml:"keys"`
}

// loadKeymap reads a keymap file; an empty path yields the defaults
func loadKeymap(path string) (Keymap, error) {
	if path == "" {
		return defaultKeymap(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Keymap{}, fmt.Errorf("keymap read: %w", err)
	}
	return parseKeymap(data)
}

// parseKeymap decodes TOML keymap data over the defaults
// Missing keys keep their default; unknown keys and tables are rejected
func parseKeymap(data []byte) (Keymap, error) {
	var raw keymapFile
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Keymap{}, fmt.Errorf("keymap parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Keymap{}, fmt.Errorf("keymap: unknown key %q", undecoded[0].String())
	}

	km := defaultKeymap()
	slots := map[string]*rune{
		"left":  &km.Left,
		"down":  &km.Down,
		"up":    &km.Up,
		"right": &km.Right,
		"quit":  &km.Quit,
	}
	for name, value := range raw.Keys {
		slot, ok := slots[name]
		if !ok {
			return Keymap{}, fmt.Errorf("keymap [keys]: unknown action %q", name)
		}
		r, err := parseKeyRune(value)
		if err != nil {
			return Keymap{}, fmt.Errorf("keymap [keys] %s: %w", name, err)
		}
		*slot = r
	}
	return km, nil
}

func parseKeyRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// actionFor maps an event to its bound action
func (k Keymap) actionFor(ev terminal.Event) action {
	switch {
	case ev.Is(k.Quit):
		return actionQuit
	case ev.Is(k.Left):
		return actionLeft
	case ev.Is(k.Down):
		return actionDown
	case ev.Is(k.Up):
		return actionUp
	case ev.Is(k.Right):
		return actionRight
	}
	return actionNone
}
