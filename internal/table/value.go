package table

import (
	"math"
	"strconv"
	"strings"
)

// Value is a coerced cell. Text and number values are always valid; date and
// time values are invalid when the cell was empty or malformed.
type Value struct {
	kind  Kind
	valid bool
	raw   string
	num   float64
	date  CalendarDate
	clock TimeOfDay
}

// Coerce converts a raw cell according to kind. It never fails: an empty
// or malformed cell yields the kind's empty value.
func Coerce(raw string, kind Kind) Value {
	s := strings.TrimSpace(raw)

	switch kind {
	case KindNumber:
		return Value{kind: kind, valid: true, raw: s, num: parseNumber(s)}
	case KindDateFR:
		d, ok := ParseFrenchDate(s)
		return Value{kind: kind, valid: ok, raw: s, date: d}
	case KindDateTimeFR:
		d, t, ok := ParseFrenchDateTime(s)
		return Value{kind: kind, valid: ok, raw: s, date: d, clock: t}
	case KindTimeOfDay:
		t, ok := ParseTimeOfDay(s)
		return Value{kind: kind, valid: ok, raw: s, clock: t}
	default:
		return Value{kind: KindText, valid: true, raw: s}
	}
}

func parseNumber(s string) float64 {
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// French-locale sheets write 12,5
		if strings.Count(s, ",") != 1 || strings.Contains(s, ".") {
			return 0
		}
		f, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0
		}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (v Value) Kind() Kind { return v.kind }

// Valid reports whether the value holds a parsed date or time. It is false
// for the absent sentinel.
func (v Value) Valid() bool { return v.valid }

// Raw returns the trimmed source cell.
func (v Value) Raw() string { return v.raw }

func (v Value) Number() float64 { return v.num }

func (v Value) Date() (CalendarDate, bool) {
	if !v.valid || (v.kind != KindDateFR && v.kind != KindDateTimeFR) {
		return CalendarDate{}, false
	}
	return v.date, true
}

func (v Value) Time() (TimeOfDay, bool) {
	if !v.valid || (v.kind != KindTimeOfDay && v.kind != KindDateTimeFR) {
		return TimeOfDay{}, false
	}
	return v.clock, true
}

// String renders the value for display. Absent dates and times render empty.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDateFR:
		if !v.valid {
			return ""
		}
		return v.date.String()
	case KindDateTimeFR:
		if !v.valid {
			return ""
		}
		return v.date.String() + " " + v.clock.String()
	case KindTimeOfDay:
		if !v.valid {
			return ""
		}
		return v.clock.String()
	}
	return v.raw
}
