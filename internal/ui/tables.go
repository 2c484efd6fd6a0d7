package ui

import (
	"github.com/nconklindev/portail/internal/portal"
	"github.com/nconklindev/portail/internal/table"

	btable "github.com/charmbracelet/bubbles/table"
)

var (
	blockWidths   = []int{8, 10, 12, 12, 16}
	visitWidths   = []int{8, 12, 8, 14, 8, 8, 8, 22}
	archiveWidths = []int{12, 24, 20, 48}
	eventWidths   = []int{12, 14, 12, 8, 8, 30}
)

var reportColumns = []btable.Column{
	{Title: "Date", Width: 12},
	{Title: "BS", Width: 8},
	{Title: "Zone", Width: 8},
	{Title: "Agent", Width: 22},
	{Title: "PDF", Width: 48},
}

var demandeColumns = []btable.Column{
	{Title: "ID", Width: 10},
	{Title: "Date", Width: 20},
	{Title: "Prestation", Width: 24},
	{Title: "Zone", Width: 8},
	{Title: "Demandeur", Width: 20},
	{Title: "Statut", Width: 12},
}

func columns(titles []string, widths []int) []btable.Column {
	cols := make([]btable.Column, len(titles))
	for i, title := range titles {
		cols[i] = btable.Column{Title: title, Width: widths[i]}
	}
	return cols
}

// fillTable loads the rows of the current page into the table.
func (m *Model) fillTable() {
	var (
		cols []btable.Column
		rows []btable.Row
	)

	switch m.state {
	case stateBlocks:
		if m.showVisits {
			cols = columns(portal.VisitColumns, visitWidths)
			for _, v := range m.visits {
				rows = append(rows, btable.Row(v.Row()))
			}
			break
		}
		cols = columns(portal.BlockColumns, blockWidths)
		for _, r := range m.blocks.Rows() {
			rows = append(rows, btable.Row(r))
		}

	case stateArchive:
		cols = columns(portal.ReportColumns, archiveWidths)
		for _, r := range m.archive {
			rows = append(rows, btable.Row(portal.ReportRow(r)))
		}

	case stateCalendar:
		cols = columns(portal.EventColumns, eventWidths)
		for _, ev := range m.events {
			rows = append(rows, btable.Row(portal.EventRow(ev)))
		}

	case stateReports:
		cols = reportColumns
		for _, r := range m.filtered(m.reports, portal.ColBS, portal.ColZone, portal.ColAgent) {
			rows = append(rows, btable.Row{
				r.Text(portal.ColDate),
				r.Text(portal.ColBS),
				r.Text(portal.ColZone),
				r.Text(portal.ColAgent),
				r.Text(portal.ColPDF),
			})
		}

	case stateDemandes:
		cols = demandeColumns
		for _, r := range m.filtered(m.demandes, portal.ColPrestation, portal.ColZone, portal.ColDemandeur, portal.ColStatut) {
			rows = append(rows, btable.Row{
				r.Text(portal.ColID),
				r.Text(portal.ColDate),
				r.Text(portal.ColPrestation),
				r.Text(portal.ColZone),
				r.Text(portal.ColDemandeur),
				r.Text(portal.ColStatut),
			})
		}

	default:
		return
	}

	// Rows must never be wider than the columns while switching pages.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *Model) filtered(records []table.Record, fields ...string) []table.Record {
	term := m.search.Value()
	if term == "" {
		return records
	}
	return table.Search(records, term, fields...)
}
