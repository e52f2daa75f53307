package interp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/golang/glog"

	"makina/grid"
)

// World owns the whole run: the grid, the shared memory, every live
// automaton, and the Display it reports to. It is the Go analogue of
// the teacher's Bus — the thing every moving part shares a pointer to
// (spec.md §5).
type World struct {
	grid     *grid.Grid
	memory   *Memory
	registry *Registry
	display  Display
	stdin    *bufio.Reader

	live []*Automaton

	// err is set the first time an automaton's Step reports an error;
	// once set, Run stops scheduling further ticks.
	err error
}

// New builds a World over grid g, with a single root automaton at
// (0,0) heading Right (spec.md §3), reporting to display and reading
// `i`/`E` input from stdin.
func New(g *grid.Grid, display Display, stdin io.Reader) *World {
	if display == nil {
		display = NullDisplay{}
	}
	registry := NewRegistry()
	installCatalogue(registry)
	w := &World{
		grid:     g,
		memory:   NewMemory(),
		registry: registry,
		display:  display,
		stdin:    bufio.NewReader(stdin),
	}
	newAutomaton(w, [2]int{0, 0}, Right)
	return w
}

// FromText parses src as a program grid and builds a World for it.
func FromText(src string, display Display, stdin io.Reader) *World {
	return New(grid.FromText(src), display, stdin)
}

// removeLive drops a from the live list. Called by Automaton.Halt.
func (w *World) removeLive(a *Automaton) {
	for i, live := range w.live {
		if live == a {
			w.live = append(w.live[:i], w.live[i+1:]...)
			return
		}
	}
}

// Err returns the first world-level error encountered, or nil if the
// run completed (or is still in progress) cleanly.
func (w *World) Err() error {
	return w.err
}

// tick steps every automaton alive at the start of the tick exactly
// once, in the order it was spawned (spec.md §5's ordering
// guarantee). A child spawned mid-tick is appended to w.live
// immediately but is excluded from THIS tick's snapshot, so it only
// starts stepping on the next tick. Returns whether any automaton is
// still alive after the tick; a step error ends the tick early and
// returns false.
func (w *World) tick() bool {
	snapshot := make([]*Automaton, len(w.live))
	copy(snapshot, w.live)
	for _, a := range snapshot {
		if a.State == Halted {
			continue
		}
		if err := a.Step(); err != nil {
			w.reportError(err, a)
			return false
		}
	}
	w.display.Blit(w)
	return len(w.live) > 0
}

// Run drives ticks until every automaton has halted or a world-level
// error occurs. It returns the same error Err() would after returning.
func (w *World) Run() error {
	for w.err == nil {
		if !w.tick() {
			break
		}
	}
	return w.err
}

func (w *World) reportError(err error, a *Automaton) {
	w.err = err
	glyph := ""
	if w.grid.InBounds(a.Position[0], a.Position[1]) {
		glyph = w.grid.Cell(a.Position[0], a.Position[1])
	}
	glog.Errorf("makina: error at %s (glyph %q): %v", FormatPosition(a.Position), glyph, err)
	w.display.Error(err, a.Position)
}

// Registry exposes the installed instruction table, mainly for tests
// that want to assert on individual instructions without going
// through a full program run.
func (w *World) Registry() *Registry {
	return w.registry
}

// Memory exposes the shared memory store, mainly for tests.
func (w *World) Memory() *Memory {
	return w.memory
}

// Grid exposes the parsed program grid.
func (w *World) Grid() *grid.Grid {
	return w.grid
}

// Live returns the automata currently alive, in spawn order. Displays
// use this during Blit to draw an overlay; the core never calls it.
func (w *World) Live() []*Automaton {
	out := make([]*Automaton, len(w.live))
	copy(out, w.live)
	return out
}

// FormatPosition renders a position the way glog-backed error
// messages cite it ("(row, col)"), kept here so every caller —
// displays and the CLI alike — logs positions identically.
func FormatPosition(pos [2]int) string {
	return fmt.Sprintf("(%d, %d)", pos[0], pos[1])
}
