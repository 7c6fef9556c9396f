// Package calendar handles the game's ISO date strings: parsing, formatting,
// reign arithmetic and the weekly advance of simulated time.
package calendar

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Layouts accepted for stored dates.
const (
	// DateLayout is a calendar day without a clock component.
	DateLayout      = "2006-01-02"
	// TimestampLayout matches ISO-8601 UTC timestamps with millisecond precision.
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	daysPerWeek      = 7
	yearsPerContract = 1
)

// ErrInvalidDate is returned when a stored date cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Parse reads a stored date. It returns the instant and the layout the input
// used so callers can write back in the same shape.
func Parse(s string) (time.Time, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "", fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, DateLayout, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), TimestampLayout, nil
	}
	return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Format renders t with layout. Timestamps are always written in UTC.
func Format(t time.Time, layout string) string {
	if layout == TimestampLayout {
		return t.UTC().Format(TimestampLayout)
	}
	return t.Format(layout)
}

// Timestamp renders t as an ISO-8601 UTC timestamp.
func Timestamp(t time.Time) string {
	return Format(t, TimestampLayout)
}

// AddDays shifts a stored date by n calendar days, keeping its layout.
func AddDays(s string, n int) (string, error) {
	t, layout, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n), layout), nil
}

// AddWeek shifts a stored date by exactly seven days.
func AddWeek(s string) (string, error) {
	return AddDays(s, daysPerWeek)
}

// AddYears shifts a stored date by n years, keeping its layout.
func AddYears(s string, n int) (string, error) {
	t, layout, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(n, 0, 0), layout), nil
}

// ContractExpiry returns signed plus one year.
func ContractExpiry(signed string) (string, error) {
	return AddYears(signed, yearsPerContract)
}

// DaysBetween returns ceil(|end-start|) in whole days.
func DaysBetween(start, end string) (int, error) {
	s, _, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, _, err := Parse(end)
	if err != nil {
		return 0, err
	}
	diff := e.Sub(s)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24)), nil
}
