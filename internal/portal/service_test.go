package portal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nconklindev/portail/internal/table"
)

type mapLoader struct {
	tables  map[string]table.RawTable
	fetched time.Time
	err     error
}

func (l mapLoader) Records(name string, spec table.ColumnSpec) ([]table.Record, error) {
	if l.err != nil {
		return nil, l.err
	}
	return table.MapRows(l.tables[name], spec)
}

func (l mapLoader) LastFetch() time.Time { return l.fetched }

func TestService_Overview(t *testing.T) {
	fetched := time.Date(2025, time.March, 15, 11, 55, 0, 0, time.UTC)
	svc := NewService(mapLoader{
		fetched: fetched,
		tables: map[string]table.RawTable{
			SourceBSData: bsData,
			SourceBSList: {
				{"BS", "Zone", "Nom"},
				{"BS01", "T1", "Hall A"},
				{"BS02", "T2", "Hall B"},
			},
			SourceCalendar: {
				{"Date", "Site", "Infra", "Début", "Fin", "Détails"},
				{"16/03/2025", "Orly", "Sud", "08:00", "12:00", ""},
			},
			SourceDemandes: demandesRaw,
			SourceMecanisation: {
				{"Date", "Lieu", "Type", "PDF URL"},
				{"12/03/2025", "T1", "Autolaveuse", "https://x/m.pdf"},
			},
		},
	})

	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	ov, err := svc.Overview(now)
	require.NoError(t, err)

	assert.Equal(t, fetched, ov.LastRefresh)
	require.Len(t, ov.Reports, 3)
	assert.False(t, ov.Reports[0].Found)
	assert.Equal(t, "12/03/2025", ov.Reports[1].DateString())
	assert.Equal(t, 100, ov.Progress.Percent)
	require.Len(t, ov.Tomorrow, 1)
	assert.Equal(t, "Orly", ov.Tomorrow[0].Site)
	assert.Equal(t, 5, ov.Demandes.Total)
}

func TestService_BSReports(t *testing.T) {
	svc := NewService(mapLoader{tables: map[string]table.RawTable{
		SourceBSReports: {
			{"ID", "Date", "BS", "Zone", "Agent", "PDF"},
			{"1", "01/03/2025", "BS01", "T1", "A", "https://x/1.pdf"},
			{"2", "03/03/2025", "BS02", "T2", "B", "https://x/2.pdf"},
			{"3", "02/03/2025", "BS03", "T1", "C", "https://x/3.pdf"},
		},
	}})

	all, zones, err := svc.BSReports("")
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, zones)
	require.Len(t, all, 3)
	assert.Equal(t, "2", all[0].Text(ColID))

	t1, _, err := svc.BSReports("T1")
	require.NoError(t, err)
	require.Len(t, t1, 2)
	assert.Equal(t, "3", t1[0].Text(ColID))
	assert.Equal(t, "1", t1[1].Text(ColID))
}

func TestService_LoaderError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(mapLoader{err: boom})

	_, err := svc.Overview(time.Now())
	assert.ErrorIs(t, err, boom)

	_, err = svc.BlockStats(nil, nil)
	assert.ErrorIs(t, err, boom)
}

func TestService_UnknownSource(t *testing.T) {
	_, err := NewService(mapLoader{}).Records("nope")
	assert.Error(t, err)
}

func TestService_Lists(t *testing.T) {
	svc := NewService(mapLoader{tables: map[string]table.RawTable{
		SourceBSData: bsData,
		SourceVacations: {
			{"ID", "Horod", "User", "Date", "Chef equipe", "PDF URL"},
			{"1", "", "Marie", "03/03/2025", "Durand", "https://x/v1.pdf"},
			{"2", "", "Paul", "10/03/2025", "Martin", "https://x/v2.pdf"},
		},
		SourceCalendar: {
			{"Date", "Site", "Infra", "Début", "Fin", "Détails"},
			{"16/03/2025", "Orly", "Sud", "08:00", "12:00", ""},
			{"02/04/2025", "CDG", "T1", "08:00", "12:00", ""},
		},
	}})

	t.Run("visits of a day", func(t *testing.T) {
		day := date(t, "15/03/2025")
		visits, err := svc.Visits(&day, &day)
		require.NoError(t, err)
		require.Len(t, visits, 3)
		assert.Equal(t, "BS01", visits[0].BS)
	})

	t.Run("vacation reports", func(t *testing.T) {
		vac, ok := ReportCategory("vacations")
		require.True(t, ok)
		reports, err := svc.Reports(vac, nil, nil)
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, "Martin", reports[0].Label)
		assert.Equal(t, "Paul", reports[0].Detail)
	})

	t.Run("calendar month", func(t *testing.T) {
		events, err := svc.Calendar(2025, time.April)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "CDG", events[0].Site)
	})
}
