// Package screen models what should be displayed: a fixed-size grid of cells,
// each optionally holding a grapheme and a display attribute.
package screen

import (
	"iter"
)

// Attr is a display attribute tag
// Only AttrNone exists; further variants are an extension point
type Attr uint8

const AttrNone Attr = 0

// Cell is one grid position
type Cell struct {
	Attr     Attr
	Grapheme Grapheme // Zero value: nothing written here
}

// Empty reports whether no grapheme is written in the cell
func (c Cell) Empty() bool {
	return c.Grapheme.IsZero()
}

// Set writes g into the cell
func (c *Cell) Set(g Grapheme) {
	c.Grapheme = g
}

// Reset returns the cell to its initial empty state
func (c *Cell) Reset() {
	*c = Cell{}
}

// Point is a grid coordinate
type Point struct {
	X, Y int
}

// Buffer is a width x height grid of cells stored row-major: cells[y*width + x]
// Dimensions are fixed at construction. Not safe for concurrent mutation
type Buffer struct {
	width  int
	height int
	cells  []Cell
}

// NewBuffer allocates a grid of empty cells; negative dimensions are treated as 0
func NewBuffer(width, height int) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Buffer{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// index returns the cell index for (x, y), false when out of range
func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// CellAt returns a copy of the cell at (x, y); false when out of range
func (b *Buffer) CellAt(x, y int) (Cell, bool) {
	idx, ok := b.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return b.cells[idx], true
}

// CellAtMut returns the cell at (x, y) for in-place mutation; nil when out of range
func (b *Buffer) CellAtMut(x, y int) *Cell {
	idx, ok := b.index(x, y)
	if !ok {
		return nil
	}
	return &b.cells[idx]
}

// All enumerates every position exactly once in row-major order (y major, x minor)
// Each call starts a fresh pass; cells are yielded by value
func (b *Buffer) All() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		for i, c := range b.cells {
			if !yield(Point{X: i % b.width, Y: i / b.width}, c) {
				return
			}
		}
	}
}

// SetString writes the graphemes of s from (x, y) rightward, clipped at the row end
// Wide graphemes advance by their display width, leaving the covered cell empty
// Returns the number of columns advanced
func (b *Buffer) SetString(x, y int, s string) int {
	start := x
	for _, g := range Graphemes(s) {
		cell := b.CellAtMut(x, y)
		if cell == nil {
			break
		}
		cell.Set(g)
		x += max(g.Width(), 1)
	}
	return max(min(x, b.width)-start, 0)
}
