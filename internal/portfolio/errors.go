package portfolio

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedAMC marks an upload for an AMC with no registered layout
// profile. Callers treat it as a no-op result, not a hard failure.
var ErrUnrecognizedAMC = errors.New("no layout profile registered for AMC")

// ErrNoTerminalRow marks a table that never hit a terminal label ("Grand
// Total" etc.). The layout is not what the profile expects, so nothing is
// committed.
var ErrNoTerminalRow = errors.New("no terminal row found in table")

// ErrEmptyTable marks a file with no rows past the profile's header offset.
var ErrEmptyTable = errors.New("table has no data rows")

// MissingColumnError reports a profile-required column that could not be
// located among the known aliases. The upload aborts without touching stored
// holdings.
type MissingColumnError struct {
	AMC   string
	Field Field
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found for %s", e.Field, e.AMC)
}
