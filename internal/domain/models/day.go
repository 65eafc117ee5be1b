package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted textual form of a trade date (ISO 8601, date only).
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned whenever a trade date cannot be parsed strictly as YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// Day is a calendar date without time of day or location.
//
// The zero value is not a valid day; use ParseDay or DayOf to build one.
// Day is comparable and can be used as a map key.
type Day struct {
	year  int
	month time.Month
	day   int
}

// ParseDay parses s strictly using DateLayout. Leading/trailing spaces,
// single-digit months or days and time components are all rejected.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DayOf(t), nil
}

// DayOf returns the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// NewDay builds a Day from its components, normalizing overflow the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Time returns midnight UTC of d.
func (d Day) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Day) Compare(o Day) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

// Before reports whether d is an earlier calendar date than o.
func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }

// After reports whether d is a later calendar date than o.
func (d Day) After(o Day) bool { return d.Compare(o) > 0 }

// Equal reports whether d and o are the same calendar date.
func (d Day) Equal(o Day) bool { return d == o }

// IsZero reports whether d is the zero Day, which is not a valid date.
func (d Day) IsZero() bool { return d == Day{} }

// String renders d using DateLayout.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
