package interp

import (
	"errors"
	"testing"
)

func TestAdd(t *testing.T) {
	cases := []struct {
		name    string
		a, b    Value
		want    Value
		wantErr bool
	}{
		{"ints", Int(2), Int(3), Int(5), false},
		{"strings", Str("foo"), Str("bar"), Str("foobar"), false},
		{"mixed kinds", Int(1), Str("x"), Empty, true},
	}
	for _, c := range cases {
		got, err := Add(c.a, c.b)
		if c.wantErr {
			if !errors.Is(err, ErrTypeError) {
				t.Fatalf("%s: got err=%v, want ErrTypeError", c.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: got=%v, want=%v", c.name, got, c.want)
		}
	}
}

func TestFloorDivAndMod(t *testing.T) {
	// Python's // and % floor toward negative infinity, unlike Go's /
	// and % which truncate toward zero.
	cases := []struct {
		a, b     int64
		wantDiv  int64
		wantMod  int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
	}
	for _, c := range cases {
		div, err := Div(Int(c.a), Int(c.b))
		if err != nil {
			t.Fatalf("Div(%d,%d): unexpected error: %v", c.a, c.b, err)
		}
		if div.Int != c.wantDiv {
			t.Fatalf("Div(%d,%d): got=%d, want=%d", c.a, c.b, div.Int, c.wantDiv)
		}
		mod, err := Mod(Int(c.a), Int(c.b))
		if err != nil {
			t.Fatalf("Mod(%d,%d): unexpected error: %v", c.a, c.b, err)
		}
		if mod.Int != c.wantMod {
			t.Fatalf("Mod(%d,%d): got=%d, want=%d", c.a, c.b, mod.Int, c.wantMod)
		}
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := Div(Int(1), Int(0)); !errors.Is(err, ErrTypeError) {
		t.Fatalf("Div by zero: got err=%v, want ErrTypeError", err)
	}
}

func TestCompareRequiresMatchingKinds(t *testing.T) {
	if _, _, err := Compare(Int(1), Str("1")); !errors.Is(err, ErrTypeError) {
		t.Fatalf("Compare(int, str): got err=%v, want ErrTypeError", err)
	}
	less, equal, err := Compare(Str("a"), Str("b"))
	if err != nil {
		t.Fatalf("Compare(str, str): unexpected error: %v", err)
	}
	if !less || equal {
		t.Fatalf("Compare(\"a\",\"b\"): got less=%v equal=%v, want less=true equal=false", less, equal)
	}
}

func TestToIntFromStr(t *testing.T) {
	got, err := ToInt(Str("  42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Int(42) {
		t.Fatalf("got=%v, want=%v", got, Int(42))
	}
	if _, err := ToInt(Str("nope")); !errors.Is(err, ErrTypeError) {
		t.Fatalf("ToInt(\"nope\"): got err=%v, want ErrTypeError", err)
	}
}

func TestIndexWithNegativeOffset(t *testing.T) {
	got, err := Index(Str("hello"), Int(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Str("o") {
		t.Fatalf("got=%v, want=%v", got, Str("o"))
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Str(""), false},
		{Str("x"), true},
		{Int(0), false},
		{Int(-1), true},
		{Bool(false), false},
		{Bool(true), true},
		{Empty, false},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Fatalf("Truthy(%v): got=%v, want=%v", c.v, got, c.want)
		}
	}
}

func TestValueIsComparableAsMapKey(t *testing.T) {
	m := map[Value]Value{Str("cell"): Int(1)}
	if _, ok := m[Str("cell")]; !ok {
		t.Fatal("Value did not behave as a usable map key")
	}
}
