package interp

import (
	"errors"
	"testing"
)

func TestIncrementOnAbsentKeyDefaultsToOne(t *testing.T) {
	m := NewMemory()
	if err := m.Increment(Str("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Read(Str("x")); got != Int(1) {
		t.Fatalf("got=%v, want=%v", got, Int(1))
	}
}

// TestDecrementOnAbsentKeyErrors pins the asymmetry between `u` and
// `d`: incrementing an absent cell starts it at 1, but decrementing
// one errors. Preserved rather than "fixed" (spec.md §9).
func TestDecrementOnAbsentKeyErrors(t *testing.T) {
	m := NewMemory()
	if err := m.Decrement(Str("x")); !errors.Is(err, ErrMissingMemory) {
		t.Fatalf("got err=%v, want ErrMissingMemory", err)
	}
}

func TestReadOnAbsentKeyDefaultsToZero(t *testing.T) {
	m := NewMemory()
	if got := m.Read(Str("never-written")); got != Int(0) {
		t.Fatalf("got=%v, want=%v", got, Int(0))
	}
}

func TestWriteThenRead(t *testing.T) {
	m := NewMemory()
	m.Write(Str("cell"), Str("payload"))
	if got := m.Read(Str("cell")); got != Str("payload") {
		t.Fatalf("got=%v, want=%v", got, Str("payload"))
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewMemory()
	m.Write(Int(1), Int(10))
	snap := m.Snapshot()
	snap[Int(1)] = Int(99)
	if got := m.Read(Int(1)); got != Int(10) {
		t.Fatalf("mutating Snapshot's result affected memory: got=%v, want=%v", got, Int(10))
	}
}
