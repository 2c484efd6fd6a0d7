package ui

import (
	"fmt"
	"strings"

	"github.com/nconklindev/portail/internal/portal"
	"github.com/nconklindev/portail/internal/table"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return m.viewLoading()
	case stateError:
		return m.viewError()
	}

	var s strings.Builder
	s.WriteString(m.viewHeader())
	s.WriteString("\n\n")

	switch m.state {
	case stateDashboard:
		s.WriteString(m.viewDashboard())
	case stateBlocks:
		s.WriteString(m.viewBlocks())
	case stateReports:
		s.WriteString(m.viewReports())
	case stateArchive:
		s.WriteString(m.viewArchive())
	case stateCalendar:
		s.WriteString(m.viewCalendar())
	case stateDemandes:
		s.WriteString(m.viewDemandes())
	}

	s.WriteString("\n")
	s.WriteString(m.viewStatus())
	return s.String()
}

func (m Model) viewHeader() string {
	title := TitleStyle.Render("🧹 Portail Client")

	tabs := make([]string, 0, len(views))
	for _, v := range views {
		style := TabStyle
		if v == m.state {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(viewTitles[v]))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) viewLoading() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🧹 Portail Client"))
	s.WriteString("\n\n")
	s.WriteString(m.spinner.View())
	s.WriteString(" Chargement des données...")
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ " + msgLoadError))
	s.WriteString("\n\n")
	if m.err != nil {
		s.WriteString(m.err.Error())
		s.WriteString("\n\n")
	}
	s.WriteString(HelpStyle.Render("r: réessayer • q: quitter"))

	return BoxStyle.Render(s.String())
}

func field(label, value string) string {
	return LabelStyle.Render(label+" ") + ValueStyle.Render(value)
}

func (m Model) viewDashboard() string {
	ov := m.overview

	var reports strings.Builder
	reports.WriteString(ValueStyle.Render("Derniers rapports"))
	reports.WriteString("\n")
	for _, r := range ov.Reports {
		reports.WriteString("\n")
		reports.WriteString(field(r.Category, r.DateString()))
		if r.Label != "" {
			reports.WriteString(LabelStyle.Render(" · " + r.Label))
		}
		if r.URL != "" {
			reports.WriteString("\n")
			reports.WriteString(LinkStyle.Render(r.URL))
		}
	}

	var progress strings.Builder
	progress.WriteString(ValueStyle.Render("Blocs sanitaires du jour"))
	progress.WriteString("\n\n")
	progress.WriteString(m.progress.ViewAs(min(float64(ov.Progress.Percent)/100, 1)))
	progress.WriteString("\n")
	progress.WriteString(field("Traités", fmt.Sprintf("%d / %d (%d%%)", ov.Progress.Visited, ov.Progress.Total, ov.Progress.Percent)))

	var agenda strings.Builder
	agenda.WriteString(ValueStyle.Render("Déploiements de demain"))
	agenda.WriteString("\n")
	if len(ov.Tomorrow) == 0 {
		agenda.WriteString("\n")
		agenda.WriteString(LabelStyle.Render(msgNoData))
	}
	for _, ev := range ov.Tomorrow {
		agenda.WriteString("\n")
		agenda.WriteString(field(ev.Start+"-"+ev.End, ev.Site+" · "+ev.Infra))
		if ev.Details != "" {
			agenda.WriteString(LabelStyle.Render(" " + ev.Details))
		}
	}

	d := ov.Demandes
	var demandes strings.Builder
	demandes.WriteString(ValueStyle.Render("Demandes ADP"))
	demandes.WriteString("\n\n")
	demandes.WriteString(field("Total", fmt.Sprint(d.Total)))
	demandes.WriteString("\n")
	demandes.WriteString(field(portal.StatusEnAttente, fmt.Sprint(d.EnAttente)))
	demandes.WriteString("\n")
	demandes.WriteString(field(portal.StatusEnCours, fmt.Sprint(d.EnCours)))
	demandes.WriteString("\n")
	demandes.WriteString(field(portal.StatusRealisee, fmt.Sprintf("%d (%d%%)", d.Realisees, d.CompletionRate())))
	demandes.WriteString("\n")
	demandes.WriteString(field("Dernières 24h", fmt.Sprint(d.Recent)))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(reports.String()),
		PanelStyle.Render(progress.String()),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(agenda.String()),
		PanelStyle.Render(demandes.String()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m Model) viewTable(summary string) string {
	var s strings.Builder
	s.WriteString(SubtitleStyle.Render(summary))
	s.WriteString("\n")
	if len(m.table.Rows()) == 0 {
		s.WriteString(LabelStyle.Render(msgNoData))
		s.WriteString("\n")
		return s.String()
	}
	s.WriteString(m.table.View())
	s.WriteString("\n")
	return s.String()
}

func (m Model) viewBlocks() string {
	summary := fmt.Sprintf("Période : %s • %d passages • temps total %s",
		m.period, m.blocks.Visits, table.FormatMinutes(m.blocks.TotalMinutes))
	if m.showVisits {
		summary += " • détail des passages"
	}
	return m.viewTable(summary)
}

func (m Model) viewArchive() string {
	summary := fmt.Sprintf("%s • Période : %s • %d rapports",
		m.reportCategory().Title, m.archivePeriod, len(m.archive))
	return m.viewTable(summary)
}

func (m Model) viewCalendar() string {
	summary := fmt.Sprintf("%s %d • %d déploiements",
		portal.MonthName(m.month.Month()), m.month.Year(), len(m.events))
	return m.viewTable(summary)
}

func (m Model) viewReports() string {
	zone := m.zone
	if zone == "" {
		zone = "toutes"
	}
	return m.viewTable(fmt.Sprintf("Zone : %s", zone)) + m.viewSearch()
}

func (m Model) viewDemandes() string {
	d := m.demandeStats
	summary := fmt.Sprintf("%d demandes • %d en attente • %d en cours • %d réalisées",
		d.Total, d.EnAttente, d.EnCours, d.Realisees)
	return m.viewTable(summary) + m.viewSearch()
}

func (m Model) viewSearch() string {
	if !m.searching && m.search.Value() == "" {
		return ""
	}
	return m.search.View() + "\n"
}

func (m Model) viewStatus() string {
	var parts []string

	if last := m.store.LastFetch(); !last.IsZero() {
		parts = append(parts, "Mis à jour à "+last.Format("15:04:05"))
	}
	if m.refreshing {
		parts = append(parts, m.spinner.View()+" actualisation")
	}

	help := "tab: page • r: actualiser • q: quitter"
	switch m.state {
	case stateBlocks:
		help = "p: période • v: passages • " + help
	case stateArchive:
		help = "c: catégorie • p: période • " + help
	case stateCalendar:
		help = "[/]: mois • " + help
	case stateReports:
		help = "z: zone • /: rechercher • " + help
	case stateDemandes:
		help = "/: rechercher • " + help
	}

	var s strings.Builder
	if m.err != nil {
		s.WriteString(ErrorStyle.Render(msgLoadError + " : " + m.err.Error()))
		s.WriteString("\n")
	}
	s.WriteString(LabelStyle.Render(strings.Join(parts, " • ")))
	s.WriteString(HelpStyle.Render(help))
	return s.String()
}
