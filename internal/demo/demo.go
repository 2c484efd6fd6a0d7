// Package demo generates plausible sheet contents for running the portal
// without an API key.
package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bxcodec/faker/v4"
	"github.com/google/uuid"

	"github.com/nconklindev/portail/internal/portal"
	"github.com/nconklindev/portail/internal/table"
)

var (
	zones      = []string{"T1", "T2", "T3"}
	sites      = []string{"CDG Terminal 1", "CDG Terminal 2E", "CDG Terminal 3", "Orly 1-2-3", "Orly 4"}
	infras     = []string{"Satellite S3", "Jetée Est", "Hall K", "Parking PR", "Gare TGV"}
	machines   = []string{"Autolaveuse", "Balayeuse", "Monobrosse", "Injecteur-extracteur"}
	categories = []string{"Nettoyage", "Contrôle", "Réassort", "Intervention"}
	prestation = []string{"Nettoyage ponctuel", "Vitrerie", "Désinfection", "Enlèvement encombrants"}
	statuses   = []string{portal.StatusEnAttente, portal.StatusEnCours, portal.StatusRealisee}
)

const blocks = 12

// Generator produces demo tables. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// New returns a generator anchored at now and seeded with seed.
func New(now time.Time, seed uint64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now,
	}
}

// Tables returns fresh demo rows for every portal source, keyed by source
// name.
func Tables(now time.Time) map[string]table.RawTable {
	return New(now, uint64(now.UnixNano())).Tables()
}

func (g *Generator) Tables() map[string]table.RawTable {
	return map[string]table.RawTable{
		portal.SourceVacations:    g.vacations(10),
		portal.SourceMecanisation: g.mecanisation(6),
		portal.SourceRemise:       g.remise(4),
		portal.SourceBSList:       g.blockList(),
		portal.SourceBSData:       g.blockData(30),
		portal.SourceBSReports:    g.blockReports(15),
		portal.SourceCalendar:     g.calendar(7),
		portal.SourceDemandes:     g.demandes(20),
	}
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.IntN(len(values))]
}

// daysAgo returns a moment n days before now at a random working hour.
func (g *Generator) daysAgo(n int) time.Time {
	day := g.now.AddDate(0, 0, -n)
	y, m, d := day.Date()
	return time.Date(y, m, d, 6+g.rng.IntN(14), g.rng.IntN(60), g.rng.IntN(60), 0, g.now.Location())
}

func frDate(t time.Time) string {
	return table.DateOf(t).String()
}

func frDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

func pdfURL(kind string) string {
	return fmt.Sprintf("https://portail.example.invalid/%s/%s.pdf", kind, uuid.NewString())
}

func shortID() string {
	return uuid.NewString()[:8]
}

func blockCode(i int) string {
	return fmt.Sprintf("BS%02d", i+1)
}

func (g *Generator) vacations(n int) table.RawTable {
	raw := table.RawTable{{portal.ColID, portal.ColHorod, portal.ColUser, portal.ColDate, portal.ColChefEquipe, portal.ColPDFURL}}
	for i := range n {
		at := g.daysAgo(i + g.rng.IntN(2))
		raw = append(raw, []string{shortID(), frDateTime(at), faker.Name(), frDate(at), faker.LastName(), pdfURL("cr")})
	}
	return raw
}

func (g *Generator) mecanisation(n int) table.RawTable {
	raw := table.RawTable{{portal.ColDate, portal.ColLieu, portal.ColType, portal.ColPDFURL}}
	for i := range n {
		at := g.daysAgo(2*i + g.rng.IntN(2))
		raw = append(raw, []string{frDate(at), g.pick(sites), g.pick(machines), pdfURL("meca")})
	}
	return raw
}

func (g *Generator) remise(n int) table.RawTable {
	raw := table.RawTable{{portal.ColDate, portal.ColLieu, portal.ColPDFURL}}
	for i := range n {
		at := g.daysAgo(3*i + g.rng.IntN(3))
		raw = append(raw, []string{frDate(at), g.pick(sites), pdfURL("rem")})
	}
	return raw
}

func blockZone(i int) string {
	return zones[i%len(zones)]
}

func (g *Generator) blockList() table.RawTable {
	raw := table.RawTable{{portal.ColBS, portal.ColZone, portal.ColNom}}
	for i := range blocks {
		raw = append(raw, []string{blockCode(i), blockZone(i), fmt.Sprintf("Bloc sanitaire %d", i+1)})
	}
	return raw
}

// blockData covers the last days days, today included.
func (g *Generator) blockData(days int) table.RawTable {
	raw := table.RawTable{{portal.ColBS, portal.ColDate, portal.ColZone, portal.ColCategorie, portal.ColPos, portal.ColHeureDebut, portal.ColHeureFin}}
	for d := range days {
		visits := 4 + g.rng.IntN(7)
		for range visits {
			b := g.rng.IntN(blocks)
			start := g.daysAgo(d)
			end := start.Add(time.Duration(5+g.rng.IntN(36)) * time.Minute)
			pos := fmt.Sprintf("%.5f, %.5f", 49.0040+g.rng.Float64()*0.0100, 2.5400+g.rng.Float64()*0.0300)
			raw = append(raw, []string{
				blockCode(b), frDate(start), blockZone(b), g.pick(categories), pos,
				start.Format("15:04"), end.Format("15:04"),
			})
		}
	}
	return raw
}

func (g *Generator) blockReports(n int) table.RawTable {
	raw := table.RawTable{{portal.ColID, portal.ColDate, portal.ColBS, portal.ColZone, portal.ColAgent, portal.ColPDF}}
	for i := range n {
		b := g.rng.IntN(blocks)
		at := g.daysAgo(i)
		raw = append(raw, []string{shortID(), frDate(at), blockCode(b), blockZone(b), faker.Name(), pdfURL("bs")})
	}
	return raw
}

// calendar plans one or two deployments per day over the next days days.
func (g *Generator) calendar(days int) table.RawTable {
	raw := table.RawTable{{portal.ColDate, portal.ColSite, portal.ColInfra, portal.ColDebut, portal.ColFin, portal.ColDetails}}
	for d := range days {
		at := g.now.AddDate(0, 0, d)
		for range 1 + g.rng.IntN(2) {
			start := 6 + g.rng.IntN(10)
			raw = append(raw, []string{
				frDate(at), g.pick(sites), g.pick(infras),
				fmt.Sprintf("%02d:00", start), fmt.Sprintf("%02d:30", start+2),
				g.pick(machines),
			})
		}
	}
	return raw
}

func (g *Generator) demandes(n int) table.RawTable {
	raw := table.RawTable{{
		portal.ColID, portal.ColDate, portal.ColPrestation, portal.ColDetail, portal.ColZone,
		portal.ColDemandeur, portal.ColStatut, portal.ColEcheance, portal.ColRealisee,
	}}
	for i := range n {
		created := g.now.Add(-time.Duration(i*11+g.rng.IntN(10)) * time.Hour)
		status := g.pick(statuses)
		done := ""
		if status == portal.StatusRealisee {
			done = frDate(created.AddDate(0, 0, 1))
		}
		raw = append(raw, []string{
			shortID(), frDateTime(created), g.pick(prestation), faker.Sentence(), g.pick(zones),
			faker.Name(), status, frDate(created.AddDate(0, 0, 3)), done,
		})
	}
	return raw
}
