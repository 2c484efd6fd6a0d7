package table

import (
	"slices"

	"golang.org/x/text/cases"
)

// Record is one mapped data row. Fields follow the header order of the
// source sheet; the key set is the ColumnSpec's.
type Record struct {
	names  []string
	keys   []string
	values []Value
}

func (r Record) Len() int { return len(r.values) }

func (r Record) Names() []string { return slices.Clone(r.names) }

// At returns the name and value of the i-th field.
func (r Record) At(i int) (string, Value) {
	return r.names[i], r.values[i]
}

// Value looks a field up by name, ignoring case and surrounding spaces.
func (r Record) Value(name string) (Value, bool) {
	key := headerKey(cases.Fold(), name)
	for i, k := range r.keys {
		if k == key {
			return r.values[i], true
		}
	}
	return Value{}, false
}

// Text returns the trimmed cell behind name, whatever its kind.
func (r Record) Text(name string) string {
	v, _ := r.Value(name)
	return v.Raw()
}

func (r Record) Number(name string) float64 {
	v, _ := r.Value(name)
	return v.Number()
}

func (r Record) Date(name string) (CalendarDate, bool) {
	v, ok := r.Value(name)
	if !ok {
		return CalendarDate{}, false
	}
	return v.Date()
}

func (r Record) Time(name string) (TimeOfDay, bool) {
	v, ok := r.Value(name)
	if !ok {
		return TimeOfDay{}, false
	}
	return v.Time()
}

// Strings renders every field for display, in field order.
func (r Record) Strings() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = v.String()
	}
	return out
}
