package ui

import (
	"context"
	"log"
	"time"

	"github.com/nconklindev/portail/internal/portal"
	"github.com/nconklindev/portail/internal/table"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLoading state = iota
	stateDashboard
	stateBlocks
	stateReports
	stateArchive
	stateCalendar
	stateDemandes
	stateError
)

// views are the pages tab cycles through.
var views = []state{stateDashboard, stateBlocks, stateReports, stateArchive, stateCalendar, stateDemandes}

var viewTitles = map[state]string{
	stateDashboard: "Tableau de bord",
	stateBlocks:    "Blocs sanitaires",
	stateReports:   "Comptes rendus BS",
	stateArchive:   "Rapports",
	stateCalendar:  "Calendrier",
	stateDemandes:  "Demandes ADP",
}

const (
	msgLoadError = "Erreur lors du chargement des données"
	msgNoData    = "Aucune donnée trouvée"
)

// Refresher is the part of the cache the UI drives.
type Refresher interface {
	Refresh(ctx context.Context, names ...string) error
	LastFetch() time.Time
	Interval() time.Duration
	Stale(now time.Time) bool
}

type Model struct {
	state      state
	store      Refresher
	service    *portal.Service
	now        func() time.Time
	timeout    time.Duration
	refreshing bool

	spinner  spinner.Model
	progress progress.Model
	table    btable.Model
	search   textinput.Model

	searching     bool
	period        portal.Period
	showVisits    bool
	zone          string
	zones         []string
	category      int
	archivePeriod portal.Period
	month         time.Time

	overview     portal.Overview
	blocks       portal.BlockSummary
	visits       []portal.Visit
	reports      []table.Record
	archive      []portal.Report
	events       []portal.Event
	demandes     []table.Record
	demandeStats portal.DemandeSummary

	err    error
	width  int
	height int
}

type dataLoadedMsg struct {
	err error
}

type tickMsg time.Time

// New returns the dashboard model. timeout bounds every refresh.
func New(store Refresher, service *portal.Service, timeout time.Duration) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = ValueStyle

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "rechercher"
	ti.CharLimit = 64

	tb := btable.New(btable.WithFocused(true), btable.WithHeight(12))
	styles := btable.DefaultStyles()
	styles.Header = styles.Header.Foreground(colorAccent).Bold(true)
	styles.Selected = styles.Selected.Foreground(colorLight).Bold(true)
	tb.SetStyles(styles)

	return Model{
		state:    stateLoading,
		store:    store,
		service:  service,
		now:      time.Now,
		timeout:  timeout,
		spinner:  sp,
		progress: progress.New(progress.WithGradient("#FF8C42", "#FF9F5A"), progress.WithWidth(40)),
		table:    tb,
		search:   ti,
		period:   portal.PeriodWeek,

		archivePeriod: portal.PeriodAll,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh(), m.scheduleTick())
}

func (m Model) refresh() tea.Cmd {
	store, timeout := m.store, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return dataLoadedMsg{err: store.Refresh(ctx)}
	}
}

// scheduleTick arms the next staleness check. Only Init and tickMsg call it
// so a single tick chain runs whatever the number of manual refreshes.
func (m Model) scheduleTick() tea.Cmd {
	interval := m.store.Interval()
	if interval <= 0 {
		return nil
	}
	// A refresh is at most a quarter interval late.
	every := max(interval/4, time.Second)
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Leave room for the title, tabs and help line.
		height := msg.Height - 12
		if height < 5 {
			height = 5
		}
		m.table.SetHeight(height)
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading && !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.refreshing || m.state == stateLoading || !m.store.Stale(m.now()) {
			return m, m.scheduleTick()
		}
		m.refreshing = true
		return m, tea.Batch(m.spinner.Tick, m.refresh(), m.scheduleTick())

	case dataLoadedMsg:
		return m.loaded(msg), nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	if m.isTableView() {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) loaded(msg dataLoadedMsg) Model {
	m.refreshing = false
	m.err = msg.err

	if msg.err != nil {
		log.Printf("[ui] refresh failed: %v", msg.err)
		if m.store.LastFetch().IsZero() {
			m.state = stateError
			return m
		}
	}

	if m.state == stateLoading || m.state == stateError {
		m.state = stateDashboard
	}
	return m.reload()
}

// reload recomputes every page from the cache and refills the table.
func (m Model) reload() Model {
	now := m.now()

	var err error
	if m.overview, err = m.service.Overview(now); err != nil {
		m.err = err
	}

	today := table.DateOf(now)
	from, to := m.period.Bounds(today)
	if m.blocks, err = m.service.BlockStats(from, to); err != nil {
		m.err = err
	}
	m.visits = nil
	if m.showVisits {
		if m.visits, err = m.service.Visits(from, to); err != nil {
			m.err = err
		}
	}

	if m.reports, m.zones, err = m.service.BSReports(m.zone); err != nil {
		m.err = err
	}

	from, to = m.archivePeriod.Bounds(today)
	if m.archive, err = m.service.Reports(m.reportCategory(), from, to); err != nil {
		m.err = err
	}

	if m.month.IsZero() {
		m.month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if m.events, err = m.service.Calendar(m.month.Year(), m.month.Month()); err != nil {
		m.err = err
	}

	if m.demandes, m.demandeStats, err = m.service.Demandes(now); err != nil {
		m.err = err
	}

	m.fillTable()
	return m
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		if m.refreshing || m.state == stateLoading {
			return m, nil
		}
		m.refreshing = true
		return m, tea.Batch(m.spinner.Tick, m.refresh())
	}

	if m.state == stateLoading || m.state == stateError {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.state = m.step(1)
		m.fillTable()
		return m, nil

	case "shift+tab":
		m.state = m.step(-1)
		m.fillTable()
		return m, nil

	case "p":
		switch m.state {
		case stateBlocks:
			m.period = m.period.Next()
			return m.reload(), nil
		case stateArchive:
			m.archivePeriod = m.archivePeriod.Next()
			return m.reload(), nil
		}

	case "v":
		if m.state == stateBlocks {
			m.showVisits = !m.showVisits
			return m.reload(), nil
		}

	case "c":
		if m.state == stateArchive {
			m.category = (m.category + 1) % len(portal.ReportCategories())
			return m.reload(), nil
		}

	case "[", "]":
		if m.state == stateCalendar {
			delta := 1
			if msg.String() == "[" {
				delta = -1
			}
			m.month = m.month.AddDate(0, delta, 0)
			return m.reload(), nil
		}

	case "z":
		if m.state == stateReports {
			m.zone = nextZone(m.zones, m.zone)
			return m.reload(), nil
		}

	case "/":
		if m.state == stateReports || m.state == stateDemandes {
			m.searching = true
			return m, m.search.Focus()
		}

	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.fillTable()
			return m, nil
		}
	}

	if m.isTableView() {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.fillTable()
	return m, cmd
}

func (m Model) step(delta int) state {
	for i, v := range views {
		if v == m.state {
			return views[(i+delta+len(views))%len(views)]
		}
	}
	return stateDashboard
}

func (m Model) isTableView() bool {
	return m.state != stateDashboard && m.state != stateLoading && m.state != stateError
}

func (m Model) reportCategory() portal.Category {
	return portal.ReportCategories()[m.category]
}

// nextZone cycles "" (all zones) then every zone in order.
func nextZone(zones []string, current string) string {
	if len(zones) == 0 {
		return ""
	}
	if current == "" {
		return zones[0]
	}
	for i, z := range zones {
		if z == current && i+1 < len(zones) {
			return zones[i+1]
		}
	}
	return ""
}
