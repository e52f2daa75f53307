package grid

import "testing"

func TestFromTextPadsRaggedRows(t *testing.T) {
	g := FromText("ab\nc")
	if got, want := g.Height(), 2; got != want {
		t.Fatalf("Height: got=%d, want=%d", got, want)
	}
	if got, want := g.Width(), 2; got != want {
		t.Fatalf("Width: got=%d, want=%d", got, want)
	}
	if got, want := g.Cell(0, 0), "a"; got != want {
		t.Fatalf("Cell(0,0): got=%q, want=%q", got, want)
	}
	if got, want := g.Cell(1, 0), "c"; got != want {
		t.Fatalf("Cell(1,0): got=%q, want=%q", got, want)
	}
	if got, want := g.Cell(1, 1), Empty; got != want {
		t.Fatalf("Cell(1,1): got=%q, want=%q (padding)", got, want)
	}
}

func TestInBounds(t *testing.T) {
	g := FromText("abc\ndef")
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{1, 2, true},
		{-1, 0, false},
		{2, 0, false},
		{0, 3, false},
		{0, -1, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.row, c.col); got != c.want {
			t.Fatalf("InBounds(%d,%d): got=%v, want=%v", c.row, c.col, got, c.want)
		}
	}
}

func TestRowIsACopy(t *testing.T) {
	g := FromText("xy")
	row := g.Row(0)
	row[0] = "z"
	if got, want := g.Cell(0, 0), "x"; got != want {
		t.Fatalf("mutating Row's result affected the grid: got=%q, want=%q", got, want)
	}
}
