// Package aggregate groups mapped sheet records and computes per-group
// counts, durations and most recent dates.
package aggregate

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/nconklindev/portail/internal/table"
)

// Group holds the figures accumulated for one key.
type Group struct {
	Key          string
	Count        int
	TotalMinutes float64
	LastDate     table.CalendarDate
	HasLastDate  bool

	durations []float64
}

// Average returns TotalMinutes / Count, or 0 for an empty group.
func (g Group) Average() float64 {
	if g.Count == 0 {
		return 0
	}
	return g.TotalMinutes / float64(g.Count)
}

// Median returns the median of the durations that were present. Records
// without a duration do not take part.
func (g Group) Median() float64 {
	if len(g.durations) == 0 {
		return 0
	}
	m, err := stats.Median(g.durations)
	if err != nil {
		return 0
	}
	return m
}

// Result is the output of By. Keys keep the order in which they were first
// seen in the input.
type Result struct {
	groups map[string]*Group
	order  []string
}

// KeyFunc extracts the grouping key of a record.
type KeyFunc func(table.Record) string

// DurationFunc returns a record's duration in minutes, or false when the
// record has none.
type DurationFunc func(table.Record) (float64, bool)

// By groups records by keyFn. Every record counts toward its group; only
// present durations add to the total. dateField names the date column used
// for LastDate and may be empty. An empty key is a group like any other.
func By(records []table.Record, keyFn KeyFunc, dateField string, durationFn DurationFunc) Result {
	res := Result{groups: make(map[string]*Group)}

	for _, r := range records {
		key := keyFn(r)
		g, ok := res.groups[key]
		if !ok {
			g = &Group{Key: key}
			res.groups[key] = g
			res.order = append(res.order, key)
		}

		g.Count++

		if durationFn != nil {
			if minutes, ok := durationFn(r); ok {
				g.TotalMinutes += minutes
				g.durations = append(g.durations, minutes)
			}
		}

		if dateField != "" {
			if d, ok := r.Date(dateField); ok && (!g.HasLastDate || d.After(g.LastDate)) {
				g.LastDate = d
				g.HasLastDate = true
			}
		}
	}

	return res
}

// Count groups records by keyFn and only counts them.
func Count(records []table.Record, keyFn KeyFunc) Result {
	return By(records, keyFn, "", nil)
}

// Field returns a KeyFunc reading the text of a column.
func Field(name string) KeyFunc {
	return func(r table.Record) string {
		return r.Text(name)
	}
}

// FieldOr is Field with a fallback key for blank cells.
func FieldOr(name, fallback string) KeyFunc {
	return func(r table.Record) string {
		if v := r.Text(name); v != "" {
			return v
		}
		return fallback
	}
}

// Between returns a DurationFunc computing the minutes between two time
// columns. Records where either time is absent have no duration.
func Between(startField, endField string) DurationFunc {
	return func(r table.Record) (float64, bool) {
		start, ok := r.Time(startField)
		if !ok {
			return 0, false
		}
		end, ok := r.Time(endField)
		if !ok {
			return 0, false
		}
		return table.DurationMinutes(start, end), true
	}
}

func (r Result) Len() int { return len(r.order) }

// Keys returns the group keys in first-seen order.
func (r Result) Keys() []string { return slices.Clone(r.order) }

// SortedKeys returns the group keys in lexical order.
func (r Result) SortedKeys() []string {
	keys := slices.Clone(r.order)
	slices.Sort(keys)
	return keys
}

func (r Result) Get(key string) (Group, bool) {
	g, ok := r.groups[key]
	if !ok {
		return Group{}, false
	}
	return g.clone(), true
}

// Groups returns every group in first-seen order.
func (r Result) Groups() []Group {
	out := make([]Group, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.groups[key].clone())
	}
	return out
}

// Count returns the number of records over all groups.
func (r Result) Count() int {
	n := 0
	for _, g := range r.groups {
		n += g.Count
	}
	return n
}

// TotalMinutes sums the durations of all groups in key order.
func (r Result) TotalMinutes() float64 {
	total := 0.0
	for _, key := range r.order {
		total += r.groups[key].TotalMinutes
	}
	return total
}

func (g *Group) clone() Group {
	c := *g
	c.durations = slices.Clone(g.durations)
	return c
}

// Percent returns part/total as a rounded percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
