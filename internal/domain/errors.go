// Package domain implements the structural parser for system file trees,
// the graphical-interface manifest parser and the mask evaluation engine.
package domain

import (
	"errors"
	"fmt"

	m "slinx.dev/pkg/slinx/internal/model"
)

// ErrCycle reports a system file that is reachable from itself through
// subsystem references. Wrapped by the ParseError returned for the file
// that closes the cycle.
var ErrCycle = errors.New("cyclic system reference")

// ParseError reports malformed structure in the requested file. IO failures
// and structural failures at the requested file abort the operation with
// this error; anything smaller is contained and surfaces as an absent value
// plus a diagnostic.
type ParseError struct {
	// Path is the offending file.
	Path m.Path

	// Hint locates or describes the failure inside the file.
	Hint string

	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Path, e.Hint, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Hint)
}

func (e *ParseError) Unwrap() error { return e.Err }
