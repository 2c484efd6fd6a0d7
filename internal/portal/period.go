package portal

import "github.com/nconklindev/portail/internal/table"

// Period is a date window of the BS statistics page.
type Period int

const (
	PeriodToday Period = iota
	PeriodWeek
	PeriodMonth
	PeriodAll
)

var periodLabels = [...]string{
	PeriodToday: "Aujourd'hui",
	PeriodWeek:  "7 derniers jours",
	PeriodMonth: "30 derniers jours",
	PeriodAll:   "Tout",
}

func (p Period) String() string {
	if p < 0 || int(p) >= len(periodLabels) {
		return "Tout"
	}
	return periodLabels[p]
}

// Next cycles through the periods.
func (p Period) Next() Period {
	return (p + 1) % Period(len(periodLabels))
}

// Bounds returns the inclusive window ending on today. PeriodAll has no
// bounds.
func (p Period) Bounds(today table.CalendarDate) (from, to *table.CalendarDate) {
	var days int
	switch p {
	case PeriodToday:
		days = 1
	case PeriodWeek:
		days = 7
	case PeriodMonth:
		days = 30
	default:
		return nil, nil
	}
	start := today.AddDays(-(days - 1))
	end := today
	return &start, &end
}
