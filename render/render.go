// Package render draws a screen buffer onto a terminal session.
package render

import (
	"fmt"

	"github.com/lixenwraith/termcore/screen"
	"github.com/lixenwraith/termcore/terminal"
)

// Render draws every non-empty cell of b at its (row = y, col = x) position,
// then flushes once. Empty cells are skipped and leave the terminal untouched.
// Stops at the first terminal error; the count of cells drawn so far is returned with it.
func Render(t terminal.Terminal, b *screen.Buffer) (int, error) {
	drawn := 0
	for p, cell := range b.All() {
		if cell.Empty() {
			continue
		}
		if err := t.MoveCursor(p.Y, p.X); err != nil {
			return drawn, fmt.Errorf("move to %d,%d: %w", p.Y, p.X, err)
		}
		for _, r := range cell.Grapheme.String() {
			if err := t.Print(r); err != nil {
				return drawn, fmt.Errorf("print at %d,%d: %w", p.Y, p.X, err)
			}
		}
		drawn++
	}

	if err := t.Flush(); err != nil {
		return drawn, fmt.Errorf("flush: %w", err)
	}
	return drawn, nil
}

// Renderer pairs a terminal with a frame buffer sized at construction
type Renderer struct {
	term   terminal.Terminal
	buffer *screen.Buffer
}

// NewRenderer creates a renderer with an empty width x height buffer
func NewRenderer(term terminal.Terminal, width, height int) *Renderer {
	return &Renderer{
		term:   term,
		buffer: screen.NewBuffer(width, height),
	}
}

// Buffer returns the frame buffer for drawing
func (r *Renderer) Buffer() *screen.Buffer {
	return r.buffer
}

// Frame clears the terminal and renders the buffer
func (r *Renderer) Frame() (int, error) {
	if err := r.term.Clear(); err != nil {
		return 0, fmt.Errorf("clear: %w", err)
	}
	return Render(r.term, r.buffer)
}
