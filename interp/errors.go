package interp

import "errors"

// Sentinel error kinds from spec.md §7, compared with errors.Is the
// way the teacher's root-level main.go compared errProgramFinished
// and friends.
var (
	// ErrUnknownGlyph is raised when a NORMAL-mode glyph is neither
	// registered nor a HALT symbol.
	ErrUnknownGlyph = errors.New("invalid symbol")
	// ErrTypeError covers incompatible operand kinds and failed `E`
	// parses.
	ErrTypeError = errors.New("type error")
	// ErrMissingMemory is raised by `d` on an absent key.
	ErrMissingMemory = errors.New("no such memory cell")
	// ErrTooManyParams is raised when a parameterized instruction is
	// registered with more than 2 operands (spec.md §4.3's N ∈ {1,2}).
	ErrTooManyParams = errors.New("cannot have more than 2 params")
	// ErrUnknownDisplay is a ConfigurationError: the CLI's -display
	// flag named an unregistered renderer.
	ErrUnknownDisplay = errors.New("unknown display")
)
