package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the dynamic type carried by a Value. The source language
// has no static types: retval, memory cells, and literals all carry
// one of these at runtime (spec.md §9's "tagged sum").
type Kind int

const (
	KindEmpty Kind = iota
	KindStr
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindStr:
		return "str"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Value is the dynamically-typed payload that flows through retval,
// memory, and literal accumulation.
type Value struct {
	Kind Kind
	Str  string
	Int  int64
	Bool bool
}

// Empty is the zero Value (KindEmpty), returned alongside an error by
// the arithmetic and cast helpers. A new automaton's retval starts as
// Str(""), not Empty.
var Empty = Value{Kind: KindEmpty}

// Str wraps a string.
func Str(s string) Value { return Value{Kind: KindStr, Str: s} }

// Int wraps an integer.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Bool wraps a boolean, produced only by the comparison instructions.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// String renders a Value the way it would be printed by P/p/r or
// interpolated into a memory dump.
func (v Value) String() string {
	switch v.Kind {
	case KindStr:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// Truthy implements the language's truth-testing rules: an empty
// string or zero integer is falsy, mirroring Python's duck-typed
// bool() used by the `?` instruction's condition operand.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindStr:
		return v.Str != ""
	case KindInt:
		return v.Int != 0
	case KindBool:
		return v.Bool
	default:
		return false
	}
}

// Add implements `+`: string concatenation or integer addition.
// Mixed kinds are a TypeError, matching Python raising TypeError for
// str + int.
func Add(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindStr && b.Kind == KindStr:
		return Str(a.Str + b.Str), nil
	case a.Kind == KindInt && b.Kind == KindInt:
		return Int(a.Int + b.Int), nil
	default:
		return Empty, typeErrorf("+", a, b)
	}
}

// Sub implements `-` (left minus right).
func Sub(a, b Value) (Value, error) {
	if a.Kind != KindInt || b.Kind != KindInt {
		return Empty, typeErrorf("-", a, b)
	}
	return Int(a.Int - b.Int), nil
}

// Mul implements `*`.
func Mul(a, b Value) (Value, error) {
	if a.Kind != KindInt || b.Kind != KindInt {
		return Empty, typeErrorf("*", a, b)
	}
	return Int(a.Int * b.Int), nil
}

// Div implements `/` as integer floor division, matching Python's //.
func Div(a, b Value) (Value, error) {
	if a.Kind != KindInt || b.Kind != KindInt {
		return Empty, typeErrorf("/", a, b)
	}
	if b.Int == 0 {
		return Empty, fmt.Errorf("%w: division by zero", ErrTypeError)
	}
	return Int(floorDiv(a.Int, b.Int)), nil
}

// Mod implements `%` as Python-style floored modulo.
func Mod(a, b Value) (Value, error) {
	if a.Kind != KindInt || b.Kind != KindInt {
		return Empty, typeErrorf("%%", a, b)
	}
	if b.Int == 0 {
		return Empty, fmt.Errorf("%w: modulo by zero", ErrTypeError)
	}
	return Int(a.Int - floorDiv(a.Int, b.Int)*b.Int), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Compare implements the four comparison instructions. All of them
// require both operands to be the same kind (Int or Str); anything
// else is a TypeError.
func Compare(a, b Value) (less, equal bool, err error) {
	switch {
	case a.Kind == KindInt && b.Kind == KindInt:
		return a.Int < b.Int, a.Int == b.Int, nil
	case a.Kind == KindStr && b.Kind == KindStr:
		return a.Str < b.Str, a.Str == b.Str, nil
	default:
		return false, false, typeErrorf("compare", a, b)
	}
}

// ToInt implements `m`/`N`: casts a Value to an integer the way
// Python's int() does for str, int and bool arguments.
func ToInt(v Value) (Value, error) {
	switch v.Kind {
	case KindInt:
		return v, nil
	case KindBool:
		if v.Bool {
			return Int(1), nil
		}
		return Int(0), nil
	case KindStr:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return Empty, fmt.Errorf("%w: cannot convert %q to int", ErrTypeError, v.Str)
		}
		return Int(i), nil
	default:
		return Empty, fmt.Errorf("%w: cannot convert empty value to int", ErrTypeError)
	}
}

// ToStr implements `s`/`S`: casts any Value to its string rendering.
func ToStr(v Value) Value {
	return Str(v.String())
}

// Len implements `L`: only strings have a length, matching Python
// raising TypeError for len() of an int.
func Len(v Value) (Value, error) {
	if v.Kind != KindStr {
		return Empty, fmt.Errorf("%w: object of kind %v has no len()", ErrTypeError, v.Kind)
	}
	return Int(int64(len([]rune(v.Str)))), nil
}

// Index implements `T`: indexing a string by an integer offset.
func Index(seq, idx Value) (Value, error) {
	if seq.Kind != KindStr {
		return Empty, fmt.Errorf("%w: object of kind %v is not indexable", ErrTypeError, seq.Kind)
	}
	if idx.Kind != KindInt {
		return Empty, fmt.Errorf("%w: index must be an integer", ErrTypeError)
	}
	runes := []rune(seq.Str)
	i := idx.Int
	if i < 0 {
		i += int64(len(runes))
	}
	if i < 0 || i >= int64(len(runes)) {
		return Empty, fmt.Errorf("%w: index %d out of range", ErrTypeError, idx.Int)
	}
	return Str(string(runes[i])), nil
}

func typeErrorf(op string, a, b Value) error {
	return fmt.Errorf("%w: unsupported operand kinds for %s: %v and %v", ErrTypeError, op, a.Kind, b.Kind)
}

// DumpMemory renders memory for the `x` instruction deterministically
// (sorted by key rendering), since Go map iteration order is
// unspecified and a debugging dump should be reproducible between
// runs.
func DumpMemory(m map[Value]Value) string {
	keys := make([]Value, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := keys[i].String(), keys[j].String()
		if si != sj {
			return si < sj
		}
		return keys[i].Kind < keys[j].Kind
	})
	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", k.String(), m[k].String())
	}
	b.WriteString("}")
	return b.String()
}
