package interp

import "fmt"

// Handler is an instruction's action. It receives the acting
// automaton and, for parameterized instructions, the already-joined
// operand values in spawn order. A non-nil returned *Value becomes
// the automaton's new retval, mirroring the Python original's
// convention that a handler's return value (if not None) overwrites
// retval.
type Handler func(a *Automaton, args []Value) (*Value, error)

// Instruction is a registry entry: a record, not a subclass
// (spec.md §9 — "registry as data, not subclassing").
type Instruction struct {
	Glyph              string
	Handler            Handler
	ObeyWhenReading    bool
	Params             int
	DirectionOverrides []Rotation
}

// Registry is the immutable glyph -> Instruction table (spec.md §4.3).
type Registry struct {
	byGlyph map[string]*Instruction
}

// NewRegistry builds an empty registry; the language's instruction
// catalogue is installed onto it by installCatalogue (instructions.go).
func NewRegistry() *Registry {
	return &Registry{byGlyph: make(map[string]*Instruction)}
}

// Register adds instr to the table. Panics on a duplicate glyph or a
// params count above 2 — both are program-construction bugs, not
// runtime user errors (spec.md §7's AssertionError is raised at
// decoration time in the Python original; registering the catalogue
// is this implementation's equivalent of module load time).
func (r *Registry) Register(instr *Instruction) {
	if instr.Params > 2 {
		panic(fmt.Sprintf("instruction %q: %v", instr.Glyph, ErrTooManyParams))
	}
	if _, exists := r.byGlyph[instr.Glyph]; exists {
		panic(fmt.Sprintf("instruction %q already registered", instr.Glyph))
	}
	r.byGlyph[instr.Glyph] = instr
}

// isHalt reports whether glyph is a HALT symbol: the empty padding
// glyph or a literal space (spec.md §3).
func isHalt(glyph string) bool {
	return glyph == "" || glyph == " "
}

// dispatch implements spec.md §4.3's two dispatch modes. Step calls
// it in every state once the automaton is due to act; Waiting is
// treated like Normal here because invoke distinguishes a
// parameterized instruction's fork (Normal) and join (Waiting) halves.
func (r *Registry) dispatch(glyph string, a *Automaton) (*Value, error) {
	if a.State == Reading {
		return r.dispatchReading(glyph, a)
	}
	instr, ok := r.byGlyph[glyph]
	if !ok {
		if isHalt(glyph) {
			a.Halt()
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownGlyph, glyph)
	}
	return r.invoke(instr, a)
}

// dispatchReading implements the READING-mode half of spec.md §4.3.
//
// An escaped glyph (ignoreNext set by `:`) is appended verbatim before
// anything else is checked — including the `;` terminator and HALT
// symbols. This is stronger than the catalogue entry for `:` states
// ("literal even if otherwise obey-when-reading"), but it is the only
// reading that makes the escape scenario in spec.md §8 work: `t:;ok;r`
// prints `;ok`, which requires the first `;` to be swallowed into the
// literal rather than terminating it.
func (r *Registry) dispatchReading(glyph string, a *Automaton) (*Value, error) {
	if a.ignoreNext {
		a.ignoreNext = false
		a.retcache.WriteString(glyph)
		return nil, nil
	}
	if glyph == ";" {
		return r.invoke(r.byGlyph[";"], a)
	}
	if isHalt(glyph) {
		a.retcache.Reset()
		a.Halt()
		return nil, nil
	}
	if instr, ok := r.byGlyph[glyph]; ok && instr.ObeyWhenReading {
		return r.invoke(instr, a)
	}
	a.retcache.WriteString(glyph)
	return nil, nil
}

// invoke runs instr, handling the fork/join protocol for
// parameterized instructions (spec.md §4.3).
func (r *Registry) invoke(instr *Instruction, a *Automaton) (*Value, error) {
	if instr.Params == 0 {
		return instr.Handler(a, nil)
	}
	if a.State == Waiting {
		a.State = Normal
		args := a.collectChildReturns()
		return instr.Handler(a, args)
	}
	overrides := instr.DirectionOverrides
	if overrides == nil {
		overrides = []Rotation{TurnLeft, TurnRight}
	}
	a.State = Waiting
	for i := 0; i < instr.Params && i < len(overrides); i++ {
		child := a.SpawnChild()
		child.Turn(overrides[i])
		child.Move(child.Direction)
	}
	return nil, nil
}
