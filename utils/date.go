package utils

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDate parses a calendar date in YYYY-MM-DD form to midnight UTC, the
// day-granularity form appointment dates are stored in.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
