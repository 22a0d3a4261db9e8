package terminal

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Cursor tracks cursor position for backends that cannot cheaply query it
// Up and Back clamp at the origin; Down and Forward are unclamped
type Cursor struct {
	Row int
	Col int
}

// Set moves to an absolute position
func (c *Cursor) Set(row, col int) {
	c.Row = row
	c.Col = col
}

func (c *Cursor) Up(n int) {
	if n <= 0 {
		return
	}
	c.Row = max(c.Row-n, 0)
}

func (c *Cursor) Down(n int) {
	if n <= 0 {
		return
	}
	c.Row += n
}

func (c *Cursor) Forward(n int) {
	if n <= 0 {
		return
	}
	c.Col += n
}

func (c *Cursor) Back(n int) {
	if n <= 0 {
		return
	}
	c.Col = max(c.Col-n, 0)
}

// Advance applies the position effect of printing ch
// Newline resets column and advances row, carriage return resets column only,
// anything else moves right by RuneAdvance(ch)
func (c *Cursor) Advance(ch rune) {
	switch ch {
	case '\n':
		c.Col = 0
		c.Row++
	case '\r':
		c.Col = 0
	default:
		c.Col += RuneAdvance(ch)
	}
}

// RuneAdvance returns the columns a printed rune moves the cursor:
// 0 for combining and other zero-width marks, 2 for wide runes, 1 for control characters
func RuneAdvance(ch rune) int {
	if unicode.IsControl(ch) {
		return 1
	}
	return runewidth.RuneWidth(ch)
}
