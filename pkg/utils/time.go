package utils

import "time"

// DateLayout is the date-only format accepted in request payloads.
const DateLayout = "2006-01-02"

// ParseDate parses a date-only string into a UTC midnight timestamp.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// EndOfDay pushes a date-only timestamp to the last instant of that day, so
// inclusive range filters catch records created during it.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}
