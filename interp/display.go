package interp

// Display is the small observer interface the core depends on
// (spec.md §6). Any subset is implementable; Simple/Fancy/Turtle are
// provided by the sibling display package, kept out of this package
// so the core never imports a renderer.
type Display interface {
	// Log writes one message. end is appended verbatim after text,
	// matching P (end="\n") and p (end="").
	Log(text string, end string)
	// Blit is called once per tick; a renderer may redraw or ignore it.
	Blit(w *World)
	// Error reports a world-level error at the given automaton
	// position (row, col).
	Error(err error, pos [2]int)
	OnNewAutomaton(a *Automaton)
	OnAutomatonMove(a *Automaton, d Direction)
	OnAutomatonChild(parent, child *Automaton)
	OnAutomatonHalted(a *Automaton)
}

// NullDisplay implements Display with every hook a no-op except Log,
// which is silently dropped too — useful as an embeddable base the
// way the teacher's ui.Display base struct gives every renderer
// default no-op lifecycle hooks that SimpleDisplay only partially
// overrides.
type NullDisplay struct{}

func (NullDisplay) Log(string, string)                    {}
func (NullDisplay) Blit(*World)                            {}
func (NullDisplay) Error(error, [2]int)                     {}
func (NullDisplay) OnNewAutomaton(*Automaton)               {}
func (NullDisplay) OnAutomatonMove(*Automaton, Direction)   {}
func (NullDisplay) OnAutomatonChild(*Automaton, *Automaton) {}
func (NullDisplay) OnAutomatonHalted(*Automaton)            {}
