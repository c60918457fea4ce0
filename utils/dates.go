// utils/dates.go
package utils

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a calendar date in "YYYY-MM-DD" form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseClock validates a time-of-day string in "HH:MM" form and returns
// its offset from midnight in minutes.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, errors.New("time must be in HH:MM format")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddClock adds a duration in minutes to a "HH:MM" time of day. It fails
// when the result would cross midnight; appointments do not span days.
func AddClock(start string, minutes int) (string, error) {
	offset, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	end := offset + minutes
	if end >= 24*60 {
		return "", errors.New("time range crosses midnight")
	}
	return fmt.Sprintf("%02d:%02d", end/60, end%60), nil
}
