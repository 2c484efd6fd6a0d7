package portal

import (
	"fmt"
	"time"

	"github.com/nconklindev/portail/internal/table"
)

// Loader maps a cached source with a column spec. *cache.Store satisfies it.
type Loader interface {
	Records(name string, spec table.ColumnSpec) ([]table.Record, error)
	LastFetch() time.Time
}

// Service answers the portal's questions from a Loader.
type Service struct {
	loader Loader
}

func NewService(loader Loader) *Service {
	return &Service{loader: loader}
}

// Records returns the mapped records of a source.
func (s *Service) Records(name string) ([]table.Record, error) {
	def, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	records, err := s.loader.Records(name, def.Spec)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", name, err)
	}
	return records, nil
}

func (s *Service) tables(names ...string) (map[string][]table.Record, error) {
	out := make(map[string][]table.Record, len(names))
	for _, name := range names {
		records, err := s.Records(name)
		if err != nil {
			return nil, err
		}
		out[name] = records
	}
	return out, nil
}

// Overview is everything the dashboard shows.
type Overview struct {
	Reports     []Report
	Progress    Progress
	Tomorrow    []Event
	Demandes    DemandeSummary
	LastRefresh time.Time
}

// Overview builds the dashboard for the day of now.
func (s *Service) Overview(now time.Time) (Overview, error) {
	tables, err := s.tables(
		SourceVacations, SourceMecanisation, SourceRemise,
		SourceBSData, SourceBSList, SourceCalendar, SourceDemandes,
	)
	if err != nil {
		return Overview{}, err
	}

	today := table.DateOf(now)
	return Overview{
		Reports:     LatestReports(tables),
		Progress:    SanitaryProgress(tables[SourceBSData], tables[SourceBSList], today),
		Tomorrow:    Agenda(tables[SourceCalendar], today.AddDays(1)),
		Demandes:    DemandeStats(tables[SourceDemandes], now),
		LastRefresh: s.loader.LastFetch(),
	}, nil
}

// BlockStats aggregates the BS visits over [from, to].
func (s *Service) BlockStats(from, to *table.CalendarDate) (BlockSummary, error) {
	records, err := s.Records(SourceBSData)
	if err != nil {
		return BlockSummary{}, err
	}
	return BlockStats(records, from, to), nil
}

// BSReports returns the BS reports of zone, newest first, along with every
// zone present. An empty zone keeps all reports.
func (s *Service) BSReports(zone string) ([]table.Record, []string, error) {
	records, err := s.Records(SourceBSReports)
	if err != nil {
		return nil, nil, err
	}

	zones := table.Distinct(records, ColZone)
	if zone != "" {
		records = table.Filter(records, func(r table.Record) bool {
			return r.Text(ColZone) == zone
		})
	}
	return table.SortByDate(records, ColDate, table.Descending), zones, nil
}

// Demandes returns the demandes newest first with their summary.
func (s *Service) Demandes(now time.Time) ([]table.Record, DemandeSummary, error) {
	records, err := s.Records(SourceDemandes)
	if err != nil {
		return nil, DemandeSummary{}, err
	}
	return RecentDemandes(records), DemandeStats(records, now), nil
}

// Visits returns the BS visits dated within [from, to], newest first.
func (s *Service) Visits(from, to *table.CalendarDate) ([]Visit, error) {
	records, err := s.Records(SourceBSData)
	if err != nil {
		return nil, err
	}
	inRange := table.FilterDateRange(records, ColDate, from, to)
	return Visits(table.SortByDate(inRange, ColDate, table.Descending)), nil
}

// Reports lists the reports of c within [from, to], newest first.
func (s *Service) Reports(c Category, from, to *table.CalendarDate) ([]Report, error) {
	records, err := s.Records(c.Source)
	if err != nil {
		return nil, err
	}
	return ReportList(c, records, from, to), nil
}

// Calendar returns the deployments planned in a month.
func (s *Service) Calendar(year int, month time.Month) ([]Event, error) {
	records, err := s.Records(SourceCalendar)
	if err != nil {
		return nil, err
	}
	return CalendarMonth(records, year, month), nil
}
