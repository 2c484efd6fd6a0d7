package table

import (
	"fmt"
	"math"
	"strings"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func NewTimeOfDay(hour, minute, second int) (TimeOfDay, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}, true
}

// ParseTimeOfDay parses H:MM, HH:MM or H[H]:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, false
	}

	hour, ok := digits(parts[0], 1, 2)
	if !ok {
		return TimeOfDay{}, false
	}
	minute, ok := digits(parts[1], 2, 2)
	if !ok {
		return TimeOfDay{}, false
	}
	second := 0
	if len(parts) == 3 {
		second, ok = digits(parts[2], 2, 2)
		if !ok {
			return TimeOfDay{}, false
		}
	}

	return NewTimeOfDay(hour, minute, second)
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) String() string {
	if t.Second == 0 {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// DurationMinutes returns the minutes from start to end. An end earlier than
// start is taken to be on the next day.
func DurationMinutes(start, end TimeOfDay) float64 {
	elapsed := end.Seconds() - start.Seconds()
	if elapsed < 0 {
		elapsed += secondsPerDay
	}
	return float64(elapsed) / 60
}

// Totals past this many minutes render as the bound.
const maxFormatMinutes = 60 * math.MaxInt32

// FormatMinutes renders minutes as HH:MM, rounded to the nearest minute.
// Totals past 24 hours keep counting hours.
func FormatMinutes(minutes float64) string {
	if minutes < 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return "00:00"
	}

	minutes = min(minutes, maxFormatMinutes)

	hours := int(minutes / 60)
	mins := int(math.Round(minutes - float64(hours)*60))

	// Handle case where rounding minutes reaches 60
	if mins >= 60 {
		hours++
		mins -= 60
	}

	return fmt.Sprintf("%02d:%02d", hours, mins)
}
