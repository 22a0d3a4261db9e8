package screen

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grapheme is one user-perceived character, possibly several code points
// Immutable after construction; the zero value means "no content"
type Grapheme struct {
	text string
}

// NewGrapheme wraps s as a grapheme; s is expected to be a single cluster
// Use Graphemes to split arbitrary text
func NewGrapheme(s string) Grapheme {
	return Grapheme{text: s}
}

// String returns the textual content
func (g Grapheme) String() string {
	return g.text
}

// IsZero reports whether g holds no content
func (g Grapheme) IsZero() bool {
	return g.text == ""
}

// Width returns the display width in cells, 0 for the zero value
// The first code point decides the width of the whole cluster
func (g Grapheme) Width() int {
	if g.text == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(g.text)
	return runewidth.RuneWidth(r)
}

// Graphemes splits s into grapheme clusters
func Graphemes(s string) []Grapheme {
	out := make([]Grapheme, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, Grapheme{text: cluster})
	}
	return out
}
