package table

import (
	"slices"
	"strings"
)

type Order int

const (
	Ascending Order = iota
	Descending
)

// SortByDate returns a copy of records ordered by the calendar value of
// field. Records without a valid date go last in either order; ties keep
// their sheet order.
func SortByDate(records []Record, field string, order Order) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		da, okA := a.Date(field)
		db, okB := b.Date(field)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}

		c := da.Compare(db)
		if order == Descending {
			c = -c
		}
		return c
	})
	return out
}

// Latest returns the record with the most recent date in field.
func Latest(records []Record, field string) (Record, bool) {
	sorted := SortByDate(records, field, Descending)
	if len(sorted) == 0 {
		return Record{}, false
	}
	if _, ok := sorted[0].Date(field); !ok {
		return Record{}, false
	}
	return sorted[0], true
}

// FilterDateRange keeps records whose date lies in [from, to]. A nil bound
// is open. With any bound set, records without a valid date are dropped.
func FilterDateRange(records []Record, field string, from, to *CalendarDate) []Record {
	if from == nil && to == nil {
		return slices.Clone(records)
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		d, ok := r.Date(field)
		if !ok {
			continue
		}
		if from != nil && d.Before(*from) {
			continue
		}
		if to != nil && d.After(*to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Filter keeps the records for which keep returns true.
func Filter(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Distinct returns the sorted non-blank values of field.
func Distinct(records []Record, field string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v := strings.TrimSpace(r.Text(field))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
