package portal

import (
	"github.com/nconklindev/portail/internal/table"
)

// Category is a kind of intervention report.
type Category struct {
	Key       string
	Title     string
	Source    string
	DateField string
	URLField  string
	// LabelField and DetailField name the columns describing a report,
	// empty if none.
	LabelField  string
	DetailField string
}

var reportCategories = []Category{
	{Key: "vacations", Title: "Vacation", Source: SourceVacations, DateField: ColDate, URLField: ColPDFURL, LabelField: ColChefEquipe, DetailField: ColUser},
	{Key: "mecanisation", Title: "Mécanisation", Source: SourceMecanisation, DateField: ColDate, URLField: ColPDFURL, LabelField: ColLieu, DetailField: ColType},
	{Key: "remise-en-etat", Title: "Remise en état", Source: SourceRemise, DateField: ColDate, URLField: ColPDFURL, LabelField: ColLieu},
}

// ReportCategories lists the categories of the latest reports panel.
func ReportCategories() []Category {
	out := make([]Category, len(reportCategories))
	copy(out, reportCategories)
	return out
}

// ReportCategory looks a category up by its key.
func ReportCategory(key string) (Category, bool) {
	for _, c := range reportCategories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Report is one intervention report of a category.
type Report struct {
	Category string
	Date     table.CalendarDate
	Label    string
	Detail   string
	URL      string
	Found    bool
}

// DateString formats the report date, or "-" when there is none.
func (r Report) DateString() string {
	if !r.Found {
		return "-"
	}
	return r.Date.String()
}

func reportOf(c Category, r table.Record) Report {
	rep := Report{Category: c.Title, URL: r.Text(c.URLField)}
	rep.Date, rep.Found = r.Date(c.DateField)
	if c.LabelField != "" {
		rep.Label = r.Text(c.LabelField)
	}
	if c.DetailField != "" {
		rep.Detail = r.Text(c.DetailField)
	}
	return rep
}

// LatestReport picks the record of records with the most recent date.
func LatestReport(c Category, records []table.Record) Report {
	latest, ok := table.Latest(records, c.DateField)
	if !ok {
		return Report{Category: c.Title}
	}
	return reportOf(c, latest)
}

// LatestReports returns the latest report of every category, in the order
// of ReportCategories. tables maps source names to their records.
func LatestReports(tables map[string][]table.Record) []Report {
	out := make([]Report, 0, len(reportCategories))
	for _, c := range reportCategories {
		out = append(out, LatestReport(c, tables[c.Source]))
	}
	return out
}

// ReportList returns the reports of c dated within [from, to], newest
// first. With both bounds nil, undated reports are kept at the end.
func ReportList(c Category, records []table.Record, from, to *table.CalendarDate) []Report {
	inRange := table.FilterDateRange(records, c.DateField, from, to)
	sorted := table.SortByDate(inRange, c.DateField, table.Descending)

	out := make([]Report, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, reportOf(c, r))
	}
	return out
}

// ReportColumns are the headers matching ReportRow.
var ReportColumns = []string{"Date", "Lieu / chef d'équipe", "Détail", "PDF"}

func ReportRow(r Report) []string {
	return []string{r.DateString(), r.Label, r.Detail, r.URL}
}
