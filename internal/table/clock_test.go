package table

import (
	"math"
	"testing"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, ok := ParseTimeOfDay(s)
	if !ok {
		t.Fatalf("ParseTimeOfDay(%q) reported absent", s)
	}
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TimeOfDay
		ok       bool
	}{
		{"Short", "8:00", TimeOfDay{8, 0, 0}, true},
		{"Padded", "08:05", TimeOfDay{8, 5, 0}, true},
		{"Seconds", "23:59:59", TimeOfDay{23, 59, 59}, true},
		{"Midnight", "00:00", TimeOfDay{}, true},
		{"Spaces", " 10:30 ", TimeOfDay{10, 30, 0}, true},
		{"Empty", "", TimeOfDay{}, false},
		{"Hour 24", "24:00", TimeOfDay{}, false},
		{"Minute 60", "10:60", TimeOfDay{}, false},
		{"Single minute digit", "10:5", TimeOfDay{}, false},
		{"No colon", "1030", TimeOfDay{}, false},
		{"Letters", "ab:cd", TimeOfDay{}, false},
		{"Too many parts", "10:30:00:00", TimeOfDay{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimeOfDay(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("ParseTimeOfDay(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected float64
	}{
		{"Morning", "08:00", "10:30", 150},
		{"Overnight", "23:30", "00:15", 45},
		{"Same time", "12:00", "12:00", 0},
		{"Seconds", "08:00:00", "08:01:30", 1.5},
		{"Almost a day", "00:01", "00:00", 1439},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DurationMinutes(mustTime(t, tt.start), mustTime(t, tt.end))
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("DurationMinutes(%s, %s) = %v; want %v", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Zero", 0, "00:00"},
		{"Two and a half hours", 150, "02:30"},
		{"Under an hour", 45, "00:45"},
		{"Rounding down", 59.4, "00:59"},
		{"Rounding up to the hour", 59.6, "01:00"},
		{"Over a day", 1500, "25:00"},
		{"Negative", -10, "00:00"},
		{"NaN", math.NaN(), "00:00"},
		{"Huge total is clamped", 1e300, "2147483647:00"},
		{"Just past the bound", 60*math.MaxInt32 + 30, "2147483647:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMinutes(tt.input)
			if got != tt.expected {
				t.Errorf("FormatMinutes(%v) = %s; want %s", tt.input, got, tt.expected)
			}
		})
	}
}
