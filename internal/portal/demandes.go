package portal

import (
	"time"

	"github.com/nconklindev/portail/internal/aggregate"
	"github.com/nconklindev/portail/internal/table"
)

const (
	StatusEnAttente = "En attente"
	StatusEnCours   = "En cours"
	StatusRealisee  = "Réalisée"
)

// DemandeSummary holds the figures of the ADP requests page.
type DemandeSummary struct {
	Total     int
	EnAttente int
	EnCours   int
	Realisees int
	// Recent counts requests created in the 24 hours before now.
	Recent   int
	ByStatus    aggregate.Result
	ByZone      aggregate.Result
	ByType      aggregate.Result
	ByDemandeur aggregate.Result
}

// CompletionRate is the rounded share of completed requests.
func (s DemandeSummary) CompletionRate() int {
	return aggregate.Percent(s.Realisees, s.Total)
}

// DemandeStats summarizes the demandes records relative to now. Creation
// timestamps are read in now's location.
func DemandeStats(records []table.Record, now time.Time) DemandeSummary {
	s := DemandeSummary{
		Total:       len(records),
		ByStatus:    aggregate.Count(records, aggregate.FieldOr(ColStatut, "Inconnu")),
		ByZone:      aggregate.Count(records, aggregate.FieldOr(ColZone, "Non spécifiée")),
		ByType:      aggregate.Count(records, aggregate.FieldOr(ColPrestation, unspecified)),
		ByDemandeur: aggregate.Count(records, aggregate.FieldOr(ColDemandeur, unspecified)),
	}

	s.EnAttente = countOf(s.ByStatus, StatusEnAttente)
	s.EnCours = countOf(s.ByStatus, StatusEnCours)
	s.Realisees = countOf(s.ByStatus, StatusRealisee)

	since := now.Add(-24 * time.Hour)
	for _, r := range records {
		v, ok := r.Value(ColDate)
		if !ok {
			continue
		}
		d, okDate := v.Date()
		t, okTime := v.Time()
		if !okDate || !okTime {
			continue
		}
		created := d.At(t, now.Location())
		if created.After(since) && !created.After(now) {
			s.Recent++
		}
	}

	return s
}

// RecentDemandes returns the requests newest first.
func RecentDemandes(records []table.Record) []table.Record {
	return table.SortByDate(records, ColDate, table.Descending)
}

func countOf(r aggregate.Result, key string) int {
	g, ok := r.Get(key)
	if !ok {
		return 0
	}
	return g.Count
}
