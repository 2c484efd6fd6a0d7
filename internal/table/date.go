package table

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// CalendarDate is a day without time of day or time zone.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the day against the month, leap years included.
func NewDate(year int, month time.Month, day int) (CalendarDate, bool) {
	if year < 1 || month < time.January || month > time.December {
		return CalendarDate{}, false
	}
	if day < 1 || day > daysIn(year, month) {
		return CalendarDate{}, false
	}
	return CalendarDate{Year: year, Month: month, Day: day}, true
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// Compare orders dates by year, then month, then day.
func (d CalendarDate) Compare(o CalendarDate) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }

func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// In returns midnight of d in loc.
func (d CalendarDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At combines d with a time of day in loc.
func (d CalendarDate) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

// String formats the date the way the sheets do: DD/MM/YYYY.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

func (d CalendarDate) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseFrenchDate parses D/M/YYYY or DD/MM/YYYY. A trailing time of day is
// accepted and dropped. Two-digit years are rejected.
func ParseFrenchDate(s string) (CalendarDate, bool) {
	d, _, ok := parseFrench(s)
	return d, ok
}

// ParseFrenchDateTime parses a French date optionally followed by H:MM or
// HH:MM:SS. A date without a time yields midnight.
func ParseFrenchDateTime(s string) (CalendarDate, TimeOfDay, bool) {
	return parseFrench(s)
}

func parseFrench(s string) (CalendarDate, TimeOfDay, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return CalendarDate{}, TimeOfDay{}, false
	}

	date, ok := parseDatePart(fields[0])
	if !ok {
		return CalendarDate{}, TimeOfDay{}, false
	}

	var clock TimeOfDay
	if len(fields) == 2 {
		clock, ok = ParseTimeOfDay(fields[1])
		if !ok {
			return CalendarDate{}, TimeOfDay{}, false
		}
	}

	return date, clock, true
}

func parseDatePart(s string) (CalendarDate, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return CalendarDate{}, false
	}

	day, ok := digits(parts[0], 1, 2)
	if !ok {
		return CalendarDate{}, false
	}
	month, ok := digits(parts[1], 1, 2)
	if !ok {
		return CalendarDate{}, false
	}
	year, ok := digits(parts[2], 4, 4)
	if !ok {
		return CalendarDate{}, false
	}

	return NewDate(year, time.Month(month), day)
}

// digits parses an unsigned run of minLen to maxLen ASCII digits.
func digits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}

	return n, true
}
