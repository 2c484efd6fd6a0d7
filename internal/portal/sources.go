// Package portal turns the portal's sheets into the figures the dashboard
// shows: latest reports, sanitary block visits, the deployment agenda and
// the ADP requests.
package portal

import (
	"github.com/nconklindev/portail/internal/cache"
	"github.com/nconklindev/portail/internal/config"
	"github.com/nconklindev/portail/internal/table"
)

const (
	SourceVacations    = "vacations"
	SourceMecanisation = "mecanisation"
	SourceRemise       = "remise-en-etat"
	SourceBSReports    = "bs-reports"
	SourceBSData       = "bs-data"
	SourceBSList       = "bs-list"
	SourceCalendar     = "calendar"
	SourceDemandes     = "demandes"
)

// Column headers as written in the sheets.
const (
	ColID         = "ID"
	ColHorod      = "Horod"
	ColUser       = "User"
	ColDate       = "Date"
	ColChefEquipe = "Chef equipe"
	ColPDFURL     = "PDF URL"
	ColPDF        = "PDF"
	ColLieu       = "Lieu"
	ColType       = "Type"
	ColBS         = "BS"
	ColZone       = "Zone"
	ColAgent      = "Agent"
	ColNom        = "Nom"
	ColCategorie  = "Catégorie"
	ColPos        = "Pos"
	ColHeureDebut = "Heure début"
	ColHeureFin   = "Heure fin"
	ColSite       = "Site"
	ColInfra      = "Infra"
	ColDebut      = "Début"
	ColFin        = "Fin"
	ColDetails    = "Détails"
	ColPrestation = "Type de Prestation"
	ColDetail     = "Détail prestation"
	ColDemandeur  = "Demandeur"
	ColStatut     = "Statut Prestation"
	ColEcheance   = "Date prévue de réalisation"
	ColRealisee   = "Date effective de réalisation"
)

// Definition describes one sheet range the portal reads.
type Definition struct {
	Name  string
	Title string
	Range string
	Spec  table.ColumnSpec
	sheet func(config.Config) string
}

var definitions = []Definition{
	{
		Name:  SourceVacations,
		Title: "Vacations",
		Range: "PdfR!A1:G",
		Spec: table.ColumnSpec{
			table.TextColumn(ColID),
			table.DateTimeColumn(ColHorod),
			table.TextColumn(ColUser),
			table.DateColumn(ColDate),
			table.TextColumn(ColChefEquipe),
			table.TextColumn(ColPDFURL),
		},
		sheet: func(c config.Config) string { return c.SheetVacations },
	},
	{
		Name:  SourceMecanisation,
		Title: "Mécanisation",
		Range: "Pdf!B1:E",
		Spec: table.ColumnSpec{
			table.DateColumn(ColDate),
			table.TextColumn(ColLieu),
			table.TextColumn(ColType),
			table.TextColumn(ColPDFURL),
		},
		sheet: func(c config.Config) string { return c.SheetMecanisation },
	},
	{
		Name:  SourceRemise,
		Title: "Remise en état",
		Range: "Pdf!B1:D",
		Spec: table.ColumnSpec{
			table.DateColumn(ColDate),
			table.TextColumn(ColLieu),
			table.TextColumn(ColPDFURL),
		},
		sheet: func(c config.Config) string { return c.SheetRemise },
	},
	{
		Name:  SourceBSReports,
		Title: "Comptes rendus BS",
		Range: "Pdf!A1:F",
		Spec: table.ColumnSpec{
			table.TextColumn(ColID),
			table.DateColumn(ColDate),
			table.TextColumn(ColBS),
			table.TextColumn(ColZone),
			table.TextColumn(ColAgent),
			table.TextColumn(ColPDF),
		},
		sheet: func(c config.Config) string { return c.SheetBS },
	},
	{
		Name:  SourceBSData,
		Title: "Passages BS",
		Range: "Data!A1:K",
		Spec: table.ColumnSpec{
			table.TextColumn(ColBS),
			table.DateColumn(ColDate),
			table.TextColumn(ColZone),
			table.TextColumn(ColCategorie),
			table.TextColumn(ColPos),
			table.TimeColumn(ColHeureDebut),
			table.TimeColumn(ColHeureFin),
		},
		sheet: func(c config.Config) string { return c.SheetBS },
	},
	{
		Name:  SourceBSList,
		Title: "Blocs sanitaires",
		Range: "BS!A1:C",
		Spec: table.ColumnSpec{
			table.TextColumn(ColBS),
			table.TextColumn(ColZone),
			table.TextColumn(ColNom),
		},
		sheet: func(c config.Config) string { return c.SheetBS },
	},
	{
		Name:  SourceCalendar,
		Title: "Calendrier",
		Range: "Calendrier!B1:G",
		Spec: table.ColumnSpec{
			table.DateColumn(ColDate),
			table.TextColumn(ColSite),
			table.TextColumn(ColInfra),
			table.TimeColumn(ColDebut),
			table.TimeColumn(ColFin),
			table.TextColumn(ColDetails),
		},
		sheet: func(c config.Config) string { return c.SheetCalendar },
	},
	{
		Name:  SourceDemandes,
		Title: "Demandes ADP",
		Range: "Sequoia!A1:S",
		Spec: table.ColumnSpec{
			table.TextColumn(ColID),
			table.DateTimeColumn(ColDate),
			table.TextColumn(ColPrestation),
			table.TextColumn(ColDetail),
			table.TextColumn(ColZone),
			table.TextColumn(ColDemandeur),
			table.TextColumn(ColStatut),
			table.DateColumn(ColEcheance),
			table.DateColumn(ColRealisee),
		},
		sheet: func(c config.Config) string { return c.SheetDemandes },
	},
}

// Definitions returns every source the portal knows about.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition of a source by name.
func Lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Sources lists the cache sources for cfg. Against the API only sources
// with a configured spreadsheet id are read; offline modes read them all.
func Sources(cfg config.Config) []cache.Source {
	remote := cfg.Mode() == config.ModeRemote

	var out []cache.Source
	for _, d := range definitions {
		id := d.sheet(cfg)
		if remote && id == "" {
			continue
		}
		out = append(out, cache.Source{Name: d.Name, SpreadsheetID: id, Range: d.Range})
	}
	return out
}
