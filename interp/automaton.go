package interp

import (
	"strings"

	"github.com/golang/glog"
)

// State is one of the four automaton states from spec.md §3/§4.5.
type State int

const (
	Normal State = iota
	Waiting
	Reading
	Halted
)

func (s State) String() string {
	switch s {
	case Normal:
		return "NORMAL"
	case Waiting:
		return "WAITING"
	case Reading:
		return "READING"
	case Halted:
		return "HALTED"
	default:
		return "?"
	}
}

// ConsecutiveBehavior governs how `;` folds a finished literal into
// retval.
type ConsecutiveBehavior int

const (
	Overwrite ConsecutiveBehavior = iota
	Concat
)

// LiteralType records what an automaton in Reading state is
// building: the target Kind to convert retcache into, and how the
// converted value combines with the existing retval.
type LiteralType struct {
	Target     Kind
	Behavior   ConsecutiveBehavior
}

// Automaton is a mobile interpreter cursor: position, heading, mode,
// an accumulator for literals, a parent's awaited children, and a
// return value. Spawned children are owned by their parent (a tree,
// not a cycle); the only shared mutable state is the World's grid,
// memory, and live list (spec.md §9).
type Automaton struct {
	world *World

	Position  [2]int
	Direction Direction
	State     State

	literalType *LiteralType
	retcache    strings.Builder
	ignoreNext  bool

	RetVal   Value
	children []*Automaton
}

// newAutomaton constructs an automaton at position facing direction,
// already appended to world's live list (mirroring the Python
// original's Automaton.__init__ appending itself to tickingList).
func newAutomaton(world *World, position [2]int, direction Direction) *Automaton {
	a := &Automaton{
		world:     world,
		Position:  position,
		Direction: direction,
		State:     Normal,
		RetVal:    Str(""),
	}
	world.live = append(world.live, a)
	world.display.OnNewAutomaton(a)
	if glog.V(2) {
		glog.Infof("spawn automaton %p facing %s at %s", a, a.Direction, FormatPosition(a.Position))
	}
	return a
}

// SpawnChild creates a child automaton at this automaton's current
// position and heading (a deep copy, per spec.md §9 — the child does
// not alias the parent's position array).
func (a *Automaton) SpawnChild() *Automaton {
	child := newAutomaton(a.world, a.Position, a.Direction)
	a.children = append(a.children, child)
	a.world.display.OnAutomatonChild(a, child)
	return child
}

// collectChildReturns gathers the ordered return values of every
// spawned child and clears the child list, implementing
// Automaton.retvals() from the Python original.
func (a *Automaton) collectChildReturns() []Value {
	vals := make([]Value, len(a.children))
	for i, c := range a.children {
		vals[i] = c.RetVal
	}
	a.children = nil
	return vals
}

func (a *Automaton) allChildrenHalted() bool {
	for _, c := range a.children {
		if c.State != Halted {
			return false
		}
	}
	return true
}

// Turn rotates the automaton's heading in place.
func (a *Automaton) Turn(r Rotation) {
	a.Direction = a.Direction.Turn(r)
}

// Move steps the automaton one cell along d (callers that want the
// current heading pass a.Direction explicitly). If the resulting
// position falls outside the grid, the automaton halts.
//
// The boundary test uses `>` against the grid shape rather than `>=`,
// one past the true edge on the high side, matching the Python
// original's `self.position[...] > self.world.array.shape[...]`
// comparison (spec.md §9 Open Questions: preserved, not tightened).
func (a *Automaton) Move(d Direction) {
	dr, dc := d.Delta()
	a.Position[0] += dr
	a.Position[1] += dc
	if a.Position[0] < 0 || a.Position[0] > a.world.grid.Height() ||
		a.Position[1] < 0 || a.Position[1] > a.world.grid.Width() {
		a.Halt()
		return
	}
	a.world.display.OnAutomatonMove(a, d)
}

// Halt removes the automaton from the World's live list and marks it
// terminal.
func (a *Automaton) Halt() {
	a.world.removeLive(a)
	a.State = Halted
	a.world.display.OnAutomatonHalted(a)
	if glog.V(2) {
		glog.Infof("halt automaton %p at %s, retval=%s", a, FormatPosition(a.Position), a.RetVal)
	}
}

// Step advances the automaton by at most one instruction dispatch,
// following the mode-dispatched rules of spec.md §4.2.
func (a *Automaton) Step() error {
	switch a.State {
	case Normal, Reading:
		if !a.world.grid.InBounds(a.Position[0], a.Position[1]) {
			a.Halt()
			return nil
		}
		glyph := a.world.grid.Cell(a.Position[0], a.Position[1])
		if glog.V(2) {
			glog.Infof("step automaton %p at %s: glyph=%q state=%s", a, FormatPosition(a.Position), glyph, a.State)
		}
		val, err := a.world.registry.dispatch(glyph, a)
		if err != nil {
			return err
		}
		if val != nil {
			a.RetVal = *val
		}
		if a.State != Halted && a.State != Waiting {
			a.Move(a.Direction)
		}
	case Waiting:
		if !a.allChildrenHalted() {
			return nil
		}
		if !a.world.grid.InBounds(a.Position[0], a.Position[1]) {
			a.Halt()
			return nil
		}
		glyph := a.world.grid.Cell(a.Position[0], a.Position[1])
		if glog.V(2) {
			glog.Infof("step automaton %p at %s: glyph=%q state=%s", a, FormatPosition(a.Position), glyph, a.State)
		}
		val, err := a.world.registry.dispatch(glyph, a)
		if err != nil {
			return err
		}
		if val != nil {
			a.RetVal = *val
		}
		if a.State != Halted {
			a.Move(a.Direction)
		}
	}
	return nil
}
