package display

import (
	"fmt"
	"io"

	"makina/interp"
)

// Simple writes log output to w and does nothing else — no grid
// redraw, no automaton overlay. It is the default display, the way a
// program with no -display flag should behave the same whether or
// not a terminal can repaint itself.
type Simple struct {
	interp.NullDisplay
	w io.Writer
}

// NewSimple returns a Simple display writing to w.
func NewSimple(w io.Writer) *Simple {
	return &Simple{w: w}
}

func (s *Simple) Log(text, end string) {
	fmt.Fprint(s.w, text, end)
}

func (s *Simple) Error(err error, pos [2]int) {
	fmt.Fprintf(s.w, "error at %s: %v\n", interp.FormatPosition(pos), err)
}
