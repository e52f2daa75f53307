// Package display holds the concrete Display implementations the CLI
// can select between. The interp package only depends on the small
// Display interface it defines itself; nothing in interp imports this
// package, the way nes never imports ui.
package display

import (
	"fmt"
	"io"

	"makina/interp"
)

// entry pairs a display's constructor with the one-line description
// `-list` prints for it. Grounded on the teacher's NewMapper — a
// factory keyed by a small integer/string identifier rather than a
// type switch or reflection.
type entry struct {
	description string
	new         func(io.Writer) interp.Display
}

var registry = map[string]entry{
	"simple": {
		description: "prints log output to stdout, nothing else (default)",
		new:         func(w io.Writer) interp.Display { return NewSimple(w) },
	},
	"fancy": {
		description: "a redrawing terminal UI showing the grid, live automata, and a log pane",
		new:         func(w io.Writer) interp.Display { return NewFancy(w) },
	},
	"turtle": {
		description: "an OpenGL window tracing each automaton's path as a polyline",
		new:         func(w io.Writer) interp.Display { return NewTurtle(w) },
	},
}

// New builds the named display, writing any of its own stdout-bound
// text to w. An unknown name is a ConfigurationError (spec.md §7's
// ErrUnknownDisplay), not a panic — it is driven entirely by user
// input (the CLI's -display flag).
func New(name string, w io.Writer) (interp.Display, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", interp.ErrUnknownDisplay, name)
	}
	return e.new(w), nil
}

// Names returns every registered display name, for `-list`.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Describe returns the one-line description for a registered display
// name, or "" if name isn't registered.
func Describe(name string) string {
	return registry[name].description
}
