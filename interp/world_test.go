package interp

import (
	"strings"
	"testing"

	"makina/grid"
)

// recordingDisplay captures Log and Error calls for assertions,
// ignoring every other hook (per-tick overlays have nothing to verify
// here).
type recordingDisplay struct {
	NullDisplay
	out strings.Builder
	err error
}

func (d *recordingDisplay) Log(text, end string) {
	d.out.WriteString(text)
	d.out.WriteString(end)
}

func (d *recordingDisplay) Error(err error, _ [2]int) {
	d.err = err
}

func runProgram(t *testing.T, src string) *recordingDisplay {
	t.Helper()
	d := &recordingDisplay{}
	w := New(grid.FromText(src), d, strings.NewReader(""))
	if err := w.Run(); err != nil && d.err == nil {
		t.Fatalf("Run returned %v but Display.Error was never called", err)
	}
	return d
}

// TestLiteralRoundTrip exercises the round-trip property from
// spec.md §8: a string literal built from unregistered glyphs and
// immediately reprinted via `r` comes back unchanged.
func TestLiteralRoundTrip(t *testing.T) {
	d := runProgram(t, "tFAB;r ")
	if got, want := d.out.String(), "FAB\n"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

// TestEscapeInLiteral is spec.md §8's escape scenario: `:` marks the
// immediately following glyph as literal even when that glyph is `;`,
// so only the second `;` actually terminates the literal.
func TestEscapeInLiteral(t *testing.T) {
	d := runProgram(t, "t:;ok;r ")
	if got, want := d.out.String(), ";ok\n"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

// TestIntLiteralOverwritesRatherThanConcats checks the `n` literal's
// OVERWRITE behavior against `t`'s CONCAT behavior: a second `n`
// literal replaces retval instead of appending to it.
func TestIntLiteralOverwritesRatherThanConcats(t *testing.T) {
	d := runProgram(t, "n1;n2;r ")
	if got, want := d.out.String(), "2\n"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

// TestForkJoinArithmetic builds a grid by hand so the fork/join
// protocol can be traced exactly:
//
//	row0: "OOOOv"       parent walks right through four no-ops, then
//	                    turns to face Down at column 4.
//	row1: " ;3n+n2; "   `+` sits at (1,4) facing Down. TurnLeft from
//	                    Down faces Left, spawning a child that reads
//	                    backwards through columns 3,2,1 ("n","3",";")
//	                    and halts on the space at column 0 with
//	                    retval=3. TurnRight from Down faces Right,
//	                    spawning a child that reads forward through
//	                    columns 5,6,7 ("n","2",";") and halts on the
//	                    space at column 8 with retval=2.
//	row2: "    r"        once both children halt, `+` joins them
//	                    (left-spawn=3, right-spawn=2, sum=5), moves
//	                    down onto `r`, and prints the sum.
func TestForkJoinArithmetic(t *testing.T) {
	src := "OOOOv\n ;3n+n2; \n    r"
	d := runProgram(t, src)
	if got, want := d.out.String(), "5\n"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

// TestConditionalBranch checks `?`'s truthy turn direction. The
// parent sets its own retval to 9 (via a literal, unrelated to the
// branch condition), then reaches `?` facing Down at (1,3); `?`
// spawns one child (its DirectionOverrides is [Straight], so the
// child shares the parent's current heading) which walks straight
// down the same column reading the int literal "1" and halts. Once
// that child halts, `?` sees a truthy condition and turns the parent
// TurnLeft (Down -> Left); the parent then prints its own retval (9,
// untouched by the branch) one cell to the left.
//
//	row0: "n9;v"   parent: retval=9, turns to face Down
//	row1: "  r?"   `?` at col3; `r` at col2 is reached after the
//	               truthy left turn
//	row2: "   n"   \
//	row3: "   1"    | the spawned child's int literal, read downward
//	row4: "   ;"   /
//	row5: "    "   child halts here
func TestConditionalBranch(t *testing.T) {
	src := "n9;v\n  r?\n   n\n   1\n   ;\n    "
	d := runProgram(t, src)
	if got, want := d.out.String(), "9\n"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

func TestUnknownGlyphIsAWorldError(t *testing.T) {
	d := runProgram(t, "@")
	if d.err == nil {
		t.Fatal("expected a world error for an unregistered glyph")
	}
	if !strings.Contains(d.err.Error(), "invalid symbol") {
		t.Fatalf("got=%v, want an invalid-symbol error", d.err)
	}
}

func TestBarrierHaltsOnMatchingOrientation(t *testing.T) {
	// The root automaton starts heading Right (Horizontal), so `H`
	// halts it immediately; nothing after the H should ever run.
	d := runProgram(t, "HPfoo;r ")
	if d.err != nil {
		t.Fatalf("unexpected world error: %v", d.err)
	}
	if got := d.out.String(); got != "" {
		t.Fatalf("got=%q, want no output (halted at H)", got)
	}
}
