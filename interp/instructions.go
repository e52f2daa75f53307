package interp

import (
	"fmt"
	"io"
)

// installCatalogue registers every glyph of spec.md §4.4 onto r. It is
// the Go equivalent of the Python original's module-level @reg.i(...)
// decorations — one table, built once, at World construction time
// (mirroring the teacher's createInstructions() building the CPU's
// opcode table in cpu.go).
func installCatalogue(r *Registry) {
	installLiterals(r)
	installFlowControl(r)
	installIO(r)
	installArithmetic(r)
	installComparisons(r)
	installMemoryOps(r)
	installMisc(r)
}

// installLiterals wires `t`/`n` (literal framing) and the `;`/`:`
// glyphs that terminate and escape a literal. The actual fold logic
// lives in the `;` handler below; `t`/`n` just arm it.
func installLiterals(r *Registry) {
	r.Register(&Instruction{
		Glyph: "t",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			a.State = Reading
			a.literalType = &LiteralType{Target: KindStr, Behavior: Concat}
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph: "n",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			a.State = Reading
			a.literalType = &LiteralType{Target: KindInt, Behavior: Overwrite}
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph: ";",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			if a.State != Reading {
				return nil, nil
			}
			cache := a.retcache.String()
			var converted Value
			switch a.literalType.Target {
			case KindStr:
				converted = Str(cache)
			case KindInt:
				v, err := ToInt(Str(cache))
				if err != nil {
					return nil, err
				}
				converted = v
			}
			switch a.literalType.Behavior {
			case Concat:
				sum, err := Add(a.RetVal, converted)
				if err != nil {
					return nil, err
				}
				a.RetVal = sum
			case Overwrite:
				a.RetVal = converted
			}
			a.State = Normal
			a.literalType = nil
			a.retcache.Reset()
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph:           ":",
		ObeyWhenReading: true,
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			if a.State == Reading {
				a.ignoreNext = true
			}
			return nil, nil
		},
	})
}

// installFlowControl wires the direction glyphs, the crossroads
// no-op, the two barrier instructions, and the jump/u-turn pair.
func installFlowControl(r *Registry) {
	dir := func(glyph string, d Direction) {
		r.Register(&Instruction{
			Glyph:           glyph,
			ObeyWhenReading: true,
			Handler: func(a *Automaton, _ []Value) (*Value, error) {
				a.Direction = d
				return nil, nil
			},
		})
	}
	dir("^", Up)
	dir("v", Down)
	dir("<", Left)
	dir(">", Right)

	r.Register(&Instruction{
		Glyph:           "O",
		ObeyWhenReading: true,
		Handler:         func(a *Automaton, _ []Value) (*Value, error) { return nil, nil },
	})
	r.Register(&Instruction{
		Glyph:           "H",
		ObeyWhenReading: true,
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			if a.Direction.Horizontal() {
				a.Halt()
			}
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph:           "I",
		ObeyWhenReading: true,
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			if a.Direction.Vertical() {
				a.Halt()
			}
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph:           "J",
		ObeyWhenReading: true,
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			a.Move(a.Direction)
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph:           "U",
		ObeyWhenReading: true,
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			a.Turn(UTurn)
			a.Move(a.Direction)
			return nil, nil
		},
	})
}

// installIO wires print/read and the retval-print shorthand. Reads
// pull one line from the World's input reader (spec.md §6 — the only
// I/O the core performs itself is this line-oriented stdin read).
func installIO(r *Registry) {
	r.Register(&Instruction{
		Glyph:  "P",
		Params: 1,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			a.world.display.Log(args[0].String(), "\n")
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph:  "p",
		Params: 1,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			a.world.display.Log(args[0].String(), "")
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph: "r",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			a.world.display.Log(a.RetVal.String(), "\n")
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph: "i",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			line, err := a.world.readLine()
			if err != nil {
				return nil, err
			}
			v := Str(line)
			return &v, nil
		},
	})
	r.Register(&Instruction{
		Glyph: "E",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			line, err := a.world.readLine()
			if err != nil {
				return nil, err
			}
			v, err := ToInt(Str(line))
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	})
}

// installArithmetic wires the five binary operators. Each spawns two
// children (default overrides [TurnLeft, TurnRight]); args[0] is the
// LEFT-spawn's result, args[1] the RIGHT-spawn's.
func installArithmetic(r *Registry) {
	binop := func(glyph string, f func(a, b Value) (Value, error)) {
		r.Register(&Instruction{
			Glyph:  glyph,
			Params: 2,
			Handler: func(a *Automaton, args []Value) (*Value, error) {
				v, err := f(args[0], args[1])
				if err != nil {
					return nil, err
				}
				return &v, nil
			},
		})
	}
	binop("+", Add)
	binop("-", Sub)
	binop("*", Mul)
	binop("/", Div)
	binop("%", Mod)
}

// installComparisons wires `l g e o`. Their contract, preserved from
// the Python original, evaluates RIGHT-spawn OP LEFT-spawn rather
// than the more obvious left-to-right order (spec.md §9 Open
// Questions) — args[0] is the LEFT spawn, args[1] the RIGHT spawn.
func installComparisons(r *Registry) {
	cmp := func(glyph string, f func(left, right Value) (bool, error)) {
		r.Register(&Instruction{
			Glyph:  glyph,
			Params: 2,
			Handler: func(a *Automaton, args []Value) (*Value, error) {
				result, err := f(args[0], args[1])
				if err != nil {
					return nil, err
				}
				v := Bool(result)
				return &v, nil
			},
		})
	}
	lessThan := func(x, y Value) (bool, error) {
		less, _, err := Compare(x, y)
		return less, err
	}
	cmp("l", func(left, right Value) (bool, error) { return lessThan(right, left) })
	cmp("g", func(left, right Value) (bool, error) { return lessThan(left, right) })
	cmp("e", func(left, right Value) (bool, error) {
		lt, err := lessThan(left, right)
		return !lt, err
	})
	cmp("o", func(left, right Value) (bool, error) {
		lt, err := lessThan(right, left)
		return !lt, err
	})
}

// installMemoryOps wires `w C u d x`.
func installMemoryOps(r *Registry) {
	r.Register(&Instruction{
		Glyph:  "w",
		Params: 2,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			a.world.memory.Write(args[1], args[0])
			return nil, nil
		},
	})
	r.Register(&Instruction{
		Glyph:  "C",
		Params: 1,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			v := a.world.memory.Read(args[0])
			return &v, nil
		},
	})
	r.Register(&Instruction{
		Glyph:  "u",
		Params: 1,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			return nil, a.world.memory.Increment(args[0])
		},
	})
	r.Register(&Instruction{
		Glyph:  "d",
		Params: 1,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			return nil, a.world.memory.Decrement(args[0])
		},
	})
	r.Register(&Instruction{
		Glyph: "x",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			a.world.display.Log(DumpMemory(a.world.memory.Snapshot()), "\n")
			return nil, nil
		},
	})
}

// installMisc wires indexing, length, casts, and the conditional
// branch.
func installMisc(r *Registry) {
	r.Register(&Instruction{
		Glyph:  "T",
		Params: 2,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			v, err := Index(args[0], args[1])
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	})
	r.Register(&Instruction{
		Glyph:  "L",
		Params: 1,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			v, err := Len(args[0])
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	})
	r.Register(&Instruction{
		Glyph:  "m",
		Params: 1,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			v, err := ToInt(args[0])
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	})
	r.Register(&Instruction{
		Glyph:  "s",
		Params: 1,
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			v := ToStr(args[0])
			return &v, nil
		},
	})
	r.Register(&Instruction{
		Glyph: "N",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			v, err := ToInt(a.RetVal)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	})
	r.Register(&Instruction{
		Glyph: "S",
		Handler: func(a *Automaton, _ []Value) (*Value, error) {
			v := ToStr(a.RetVal)
			return &v, nil
		},
	})
	r.Register(&Instruction{
		Glyph:              "?",
		Params:             1,
		DirectionOverrides: []Rotation{Straight},
		Handler: func(a *Automaton, args []Value) (*Value, error) {
			if args[0].Truthy() {
				a.Turn(TurnLeft)
			} else {
				a.Turn(TurnRight)
			}
			return nil, nil
		},
	})
}

// readLine reads one line from the World's input source for `i`/`E`,
// stripping the trailing newline. io.EOF surfaces as an error the way
// any other world-level error does (spec.md §7) — there is no
// "end of input" sentinel value in the language. It writes the
// "Input > " prompt first, mirroring the original's `input("Input > ")`.
func (w *World) readLine() (string, error) {
	w.display.Log("Input > ", "")
	line, err := w.stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if err == io.EOF && line == "" {
		return "", fmt.Errorf("reading input: %w", io.EOF)
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
