package portal

import (
	"strconv"
	"strings"

	"github.com/nconklindev/portail/internal/aggregate"
	"github.com/nconklindev/portail/internal/table"
)

// LatLng is a GPS position recorded with a visit.
type LatLng struct {
	Lat float64
	Lng float64
}

// ParsePosition reads a "lat, lng" cell. Out of range or malformed values
// yield false.
func ParsePosition(s string) (LatLng, bool) {
	latS, lngS, ok := strings.Cut(s, ",")
	if !ok {
		return LatLng{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latS), 64)
	if err != nil {
		return LatLng{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngS), 64)
	if err != nil {
		return LatLng{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return LatLng{}, false
	}
	return LatLng{Lat: lat, Lng: lng}, true
}

// Visit is one passage of an agent at a sanitary block.
type Visit struct {
	BS       string
	Date     table.CalendarDate
	HasDate  bool
	Zone     string
	Category string

	Position    LatLng
	HasPosition bool

	Start, End       table.TimeOfDay
	HasStart, HasEnd bool
	Minutes          float64
	HasDuration      bool
}

// VisitColumns are the headers matching Visit.Row.
var VisitColumns = []string{"BS", "Date", "Zone", "Catégorie", "Début", "Fin", "Durée", "Position"}

// Row renders the visit for a table.
func (v Visit) Row() []string {
	date, start, end, pos := "-", "-", "-", "-"
	if v.HasDate {
		date = v.Date.String()
	}
	if v.HasStart {
		start = v.Start.String()
	}
	if v.HasEnd {
		end = v.End.String()
	}
	if v.HasPosition {
		pos = strconv.FormatFloat(v.Position.Lat, 'f', 5, 64) + ", " + strconv.FormatFloat(v.Position.Lng, 'f', 5, 64)
	}
	return []string{v.BS, date, v.Zone, v.Category, start, end, v.Duration(), pos}
}

// Duration formats the visit duration as HH:MM, "-" when unknown.
func (v Visit) Duration() string {
	if !v.HasDuration {
		return "-"
	}
	return table.FormatMinutes(v.Minutes)
}

// Visits types the records of the bs-data source. Rows without a BS code
// are dropped.
func Visits(records []table.Record) []Visit {
	out := make([]Visit, 0, len(records))
	for _, r := range records {
		bs := r.Text(ColBS)
		if bs == "" {
			continue
		}

		v := Visit{
			BS:       bs,
			Zone:     r.Text(ColZone),
			Category: r.Text(ColCategorie),
		}
		v.Date, v.HasDate = r.Date(ColDate)
		v.Position, v.HasPosition = ParsePosition(r.Text(ColPos))

		v.Start, v.HasStart = r.Time(ColHeureDebut)
		v.End, v.HasEnd = r.Time(ColHeureFin)
		if v.HasStart && v.HasEnd {
			v.Minutes = table.DurationMinutes(v.Start, v.End)
			v.HasDuration = true
		}

		out = append(out, v)
	}
	return out
}

// BlockSummary is the time spent per sanitary block over a period.
type BlockSummary struct {
	Blocks       aggregate.Result
	TotalMinutes float64
	Visits       int
}

// BlockStats aggregates bs-data records per BS code over [from, to]. A nil
// bound is open. Rows without a BS code are not visits and are left out.
func BlockStats(records []table.Record, from, to *table.CalendarDate) BlockSummary {
	inRange := table.FilterDateRange(withBlock(records), ColDate, from, to)
	res := aggregate.By(inRange, aggregate.Field(ColBS), ColDate, aggregate.Between(ColHeureDebut, ColHeureFin))

	return BlockSummary{
		Blocks:       res,
		TotalMinutes: res.TotalMinutes(),
		Visits:       res.Count(),
	}
}

// Rows renders the summary as table rows sorted by BS code: BS, visits,
// total, average, last visit.
func (s BlockSummary) Rows() [][]string {
	rows := make([][]string, 0, s.Blocks.Len())
	for _, key := range s.Blocks.SortedKeys() {
		g, _ := s.Blocks.Get(key)
		last := "-"
		if g.HasLastDate {
			last = g.LastDate.String()
		}
		rows = append(rows, []string{
			g.Key,
			strconv.Itoa(g.Count),
			table.FormatMinutes(g.TotalMinutes),
			table.FormatMinutes(g.Average()),
			last,
		})
	}
	return rows
}

// BlockColumns are the headers matching BlockSummary.Rows.
var BlockColumns = []string{"BS", "Passages", "Temps total", "Temps moyen", "Dernier passage"}
