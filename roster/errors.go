/*
errors.go - Error types for roster loading and attribution

ERROR CATEGORIES:
  1. Source errors - the roster document is missing or unreadable
  2. Lookup errors - a session references initials not in the registry

Lookup errors are fatal for the run: a primary or substitute code that is
not in the registry is a data-entry mistake the operator has to fix in the
roster, so the error carries the offending initials and session date. There
are no retries and no partial reports - a failed run produces nothing.
*/
package roster

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrSourceUnavailable is returned when the roster document cannot be
	// opened or a required sheet is missing.
	ErrSourceUnavailable = errors.New("roster source unavailable")

	// ErrUnknownDirector is returned when a session resolves to initials
	// that are not present in the registry.
	ErrUnknownDirector = errors.New("unknown director initials")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownDirectorError identifies the roster entry the operator must fix.
type UnknownDirectorError struct {
	Initials string
	Date     time.Time
}

func (e *UnknownDirectorError) Error() string {
	return fmt.Sprintf("unknown director initials %q on session %s",
		e.Initials, e.Date.Format("02 Jan 2006"))
}

func (e *UnknownDirectorError) Unwrap() error {
	return ErrUnknownDirector
}

// SourceError wraps a roster-document failure with its location.
type SourceError struct {
	Path  string
	Cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("roster source %s: %v", e.Path, e.Cause)
}

func (e *SourceError) Unwrap() error {
	return ErrSourceUnavailable
}
