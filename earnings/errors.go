/*
errors.go - Error types for the earnings package

PURPOSE:
  The calculation itself never fails. Errors only come from the edges:
  parsing user input (dates, HH:MM times) and editing the workspace.

USAGE:
  iv, err := earnings.ParseWorkInterval(date, start, end)
  if errors.Is(err, earnings.ErrInvalidClock) {
      // show "use HH:MM" to the user
  }

SEE ALSO:
  - date.go: Parsers returning these errors
  - workspace.go: Workspace edits returning these errors
*/
package earnings

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidClock is returned for times not in 24-hour HH:MM form.
	ErrInvalidClock = errors.New("invalid time of day")

	// ErrDayNotSelected is returned when editing a day that is not in the workspace.
	ErrDayNotSelected = errors.New("day not selected")

	// ErrInvalidMode is returned for an unknown rate mode.
	ErrInvalidMode = errors.New("invalid rate mode")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ParseError records which input could not be parsed.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrInvalidMode)
}

// IsNotFound returns true if the error indicates a missing day.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDayNotSelected)
}
