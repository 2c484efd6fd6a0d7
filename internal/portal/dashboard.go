package portal

import (
	"cmp"
	"slices"
	"time"

	"github.com/nconklindev/portail/internal/aggregate"
	"github.com/nconklindev/portail/internal/table"
)

// withBlock drops the rows that carry no BS code.
func withBlock(records []table.Record) []table.Record {
	return table.Filter(records, func(r table.Record) bool {
		return r.Text(ColBS) != ""
	})
}

// Progress is the share of sanitary blocks visited on a day.
type Progress struct {
	Day     table.CalendarDate
	Visited int
	Total   int
	Percent int
}

// SanitaryProgress counts the distinct blocks of data visited on day
// against the blocks listed in list. Visited blocks missing from a non-empty
// list still count, so Percent may exceed 100 when the list is stale.
func SanitaryProgress(data, list []table.Record, day table.CalendarDate) Progress {
	today := table.FilterDateRange(withBlock(data), ColDate, &day, &day)
	visited := aggregate.Count(today, aggregate.Field(ColBS))
	blocks := aggregate.Count(withBlock(list), aggregate.Field(ColBS))

	return Progress{
		Day:     day,
		Visited: visited.Len(),
		Total:   blocks.Len(),
		Percent: aggregate.Percent(visited.Len(), blocks.Len()),
	}
}

// Event is a planned deployment from the calendar sheet.
type Event struct {
	Date    table.CalendarDate
	Site    string
	Infra   string
	Start   string
	End     string
	Details string
}

const unspecified = "Non spécifié"

func eventOf(r table.Record) Event {
	ev := Event{
		Site:    orDefault(r.Text(ColSite), unspecified),
		Infra:   orDefault(r.Text(ColInfra), unspecified),
		Start:   "-",
		End:     "-",
		Details: r.Text(ColDetails),
	}
	ev.Date, _ = r.Date(ColDate)
	if t, ok := r.Time(ColDebut); ok {
		ev.Start = t.String()
	}
	if t, ok := r.Time(ColFin); ok {
		ev.End = t.String()
	}
	return ev
}

// Agenda returns the calendar entries planned on day, in sheet order.
func Agenda(calendar []table.Record, day table.CalendarDate) []Event {
	entries := table.FilterDateRange(calendar, ColDate, &day, &day)

	out := make([]Event, 0, len(entries))
	for _, r := range entries {
		out = append(out, eventOf(r))
	}
	return out
}

// CalendarMonth returns the deployments of a month ordered by day, then by
// start time. Entries without a valid date are left out.
func CalendarMonth(calendar []table.Record, year int, month time.Month) []Event {
	first, _ := table.NewDate(year, month, 1)
	last := first.AddDays(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day() - 1)

	entries := table.FilterDateRange(calendar, ColDate, &first, &last)
	out := make([]Event, 0, len(entries))
	for _, r := range entries {
		out = append(out, eventOf(r))
	}
	slices.SortStableFunc(out, func(a, b Event) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(startKey(a.Start), startKey(b.Start))
	})
	return out
}

// startKey orders "-" after any time.
func startKey(s string) string {
	if s == "-" {
		return "~"
	}
	return s
}

var monthNames = [...]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// MonthName is the French name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// EventColumns are the headers matching EventRow.
var EventColumns = []string{"Date", "Site", "Infra", "Début", "Fin", "Détails"}

func EventRow(ev Event) []string {
	return []string{ev.Date.String(), ev.Site, ev.Infra, ev.Start, ev.End, ev.Details}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
