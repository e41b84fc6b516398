package planner

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrInvalidWeekStart = errors.New("week start must be an ISO date")

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MondayOf returns midnight UTC of the Monday on or before t's calendar day.
func MondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ParseWeekStart accepts a plain date (2006-01-02) or an RFC 3339 timestamp
// and returns the Monday of that week.
func ParseWeekStart(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidWeekStart
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return MondayOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeekStart, raw)
	}
	return MondayOf(t), nil
}

// DaysUntil counts whole days from from to to, rounding partial days up.
func DaysUntil(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// WeekIndexForDate finds the Monday-Sunday week among weekStarts that holds date.
func WeekIndexForDate(date time.Time, weekStarts []time.Time) (int, bool) {
	target := MondayOf(date)
	for i, start := range weekStarts {
		if MondayOf(start).Equal(target) {
			return i, true
		}
	}
	return 0, false
}
