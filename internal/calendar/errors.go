package calendar

import (
	"errors"
	"fmt"
	"time"

	"cn-data/internal/model"
)

// ErrNegativeSessions is returned when the session offset is below zero.
var ErrNegativeSessions = errors.New("session offset must not be negative")

// DateNotFoundError is returned when a date has no calendar entry.
type DateNotFoundError struct {
	Date time.Time
}

func (e *DateNotFoundError) Error() string {
	return fmt.Sprintf("date %s not found in trading calendar", model.FormatDate(e.Date))
}

// InsufficientRangeError is returned when the calendar ends before enough open sessions were found.
type InsufficientRangeError struct {
	Needed   int // open sessions requested
	Consumed int // open sessions found before running out
	Rows     int // calendar length
}

func (e *InsufficientRangeError) Error() string {
	return fmt.Sprintf("trading calendar too short: need %d open sessions, found %d in %d rows", e.Needed, e.Consumed, e.Rows)
}
