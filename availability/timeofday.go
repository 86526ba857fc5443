package availability

import (
	"fmt"
	"regexp"
)

// Times of day travel as "HH:MM" strings and are converted to
// minutes-since-midnight for interval arithmetic. Parsing is strict:
// malformed input is an error, never a silent fallback to midnight,
// so two bad inputs can never compare as equal intervals.

var timeOfDayRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeOfDay converts an "HH:MM" string to minutes since midnight.
func ParseTimeOfDay(s string) (int, error) {
	m := timeOfDayRe.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrInvalidTimeFormat
	}
	var hours, minutes int
	fmt.Sscanf(m[1], "%d", &hours)
	fmt.Sscanf(m[2], "%d", &minutes)
	return hours*60 + minutes, nil
}

// FormatMinutes converts minutes since midnight back to zero-padded "HH:MM".
// Input outside [0, 1440) is the caller's bug.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidRange reports whether [start, end) is a non-empty interval.
func ValidRange(start, end int) bool {
	return end > start
}

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
