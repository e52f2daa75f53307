// Package grid holds the immutable program source that automata walk.
package grid

import "strings"

// Empty is the padding glyph used to square off ragged rows. It and
// Space are both HALT symbols when an automaton lands on them.
const Empty = ""
const Space = " "

// Grid is a rectangular array of glyphs, immutable after it is built.
type Grid struct {
	rows  [][]string
	width int
}

// FromText splits src on newlines and pads every row to the width of
// the longest one with Empty, matching the Python original's
// ragged-row handling in World.fromData.
func FromText(src string) *Grid {
	lines := strings.Split(src, "\n")
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	rows := make([][]string, len(lines))
	for i, line := range lines {
		runes := []rune(line)
		row := make([]string, width)
		for j := 0; j < width; j++ {
			if j < len(runes) {
				row[j] = string(runes[j])
			} else {
				row[j] = Empty
			}
		}
		rows[i] = row
	}
	return &Grid{rows: rows, width: width}
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return len(g.rows)
}

// Width returns the number of columns every row is padded to.
func (g *Grid) Width() int {
	return g.width
}

// InBounds reports whether (row, col) is a valid, addressable cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g.rows) && col >= 0 && col < g.width
}

// Cell returns the glyph at (row, col). The caller must check
// InBounds first; Cell panics on an out-of-range index, matching the
// Python original raising IndexError for the caller (World.cell) to
// translate into a halt.
func (g *Grid) Cell(row, col int) string {
	return g.rows[row][col]
}

// Row returns a copy of row r's glyphs, used by renderers that need
// to overlay automata onto the source text (the Fancy display).
func (g *Grid) Row(r int) []string {
	row := make([]string, g.width)
	copy(row, g.rows[r])
	return row
}
