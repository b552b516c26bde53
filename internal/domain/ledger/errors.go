package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrLedgerNotLoaded  = errors.New("attendance ledger has not been loaded")
	ErrEmployeeNotFound = errors.New("employee not found in roster")
	ErrUnknownSource    = errors.New("unsupported source format")

	// Causes carried by MalformedInputError
	ErrMissingColumn    = errors.New("required column missing")
	ErrDuplicateColumn  = errors.New("column appears more than once")
	ErrEmptyIdentifier  = errors.New("identifier is empty")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time of day")
	ErrInvalidEventType = errors.New("invalid event type")
)

// Source names used in load errors.
const (
	SourceRoster     = "roster"
	SourceSchedule   = "schedule"
	SourceAttendance = "attendance"
)

// MalformedInputError aborts a load: a source is missing a required column or
// a value could not be parsed. Row is 0 for whole-source problems.
type MalformedInputError struct {
	Source string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("malformed %s input", e.Source)
	if e.Row > 0 {
		msg += fmt.Sprintf(" at row %d", e.Row)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(", column %q", e.Column)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(", value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError aborts a join whose right side has a repeated key.
type DuplicateKeyError struct {
	Source    string
	Key       string
	FirstRow  int
	SecondRow int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s key %s at rows %d and %d", e.Source, e.Key, e.FirstRow, e.SecondRow)
}
