package table

import (
	"slices"
	"testing"
	"time"
)

func mapDates(t *testing.T, dates ...string) []Record {
	t.Helper()
	raw := RawTable{{"Date", "Zone"}}
	for i, d := range dates {
		raw = append(raw, []string{d, string(rune('A' + i))})
	}
	records, err := MapRows(raw, ColumnSpec{DateColumn("Date"), TextColumn("Zone")})
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}
	return records
}

func zones(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Text("Zone"))
	}
	return out
}

func TestSortByDate_CalendarOrder(t *testing.T) {
	// A string sort would put "10/1/2025" before "2/1/2025".
	records := mapDates(t, "10/1/2025", "2/1/2025")

	asc := SortByDate(records, "Date", Ascending)
	if got := zones(asc); !slices.Equal(got, []string{"B", "A"}) {
		t.Errorf("ascending = %v; want [B A]", got)
	}

	desc := SortByDate(records, "Date", Descending)
	if got := zones(desc); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("descending = %v; want [A B]", got)
	}

	if got := zones(records); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("input was reordered: %v", got)
	}
}

func TestSortByDate_AbsentLast(t *testing.T) {
	records := mapDates(t, "", "01/02/2025", "n/a", "31/12/2024", "01/02/2025")

	tests := []struct {
		name     string
		order    Order
		expected []string
	}{
		{"Ascending", Ascending, []string{"D", "B", "E", "A", "C"}},
		{"Descending", Descending, []string{"B", "E", "D", "A", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := zones(SortByDate(records, "Date", tt.order))
			if !slices.Equal(got, tt.expected) {
				t.Errorf("got %v; want %v", got, tt.expected)
			}
		})
	}
}

func TestLatest(t *testing.T) {
	records := mapDates(t, "02/01/2025", "10/01/2025", "")
	r, ok := Latest(records, "Date")
	if !ok || r.Text("Zone") != "B" {
		t.Errorf("Latest = %q %v; want B", r.Text("Zone"), ok)
	}

	if _, ok := Latest(mapDates(t, "", "?"), "Date"); ok {
		t.Errorf("no valid date should mean no latest record")
	}
	if _, ok := Latest(nil, "Date"); ok {
		t.Errorf("empty input should mean no latest record")
	}
}

func TestFilterDateRange(t *testing.T) {
	records := mapDates(t, "01/05/2025", "15/05/2025", "31/05/2025", "", "01/06/2025")
	from := CalendarDate{2025, time.May, 15}
	to := CalendarDate{2025, time.May, 31}

	tests := []struct {
		name     string
		from     *CalendarDate
		to       *CalendarDate
		expected []string
	}{
		{"No bounds keeps everything", nil, nil, []string{"A", "B", "C", "D", "E"}},
		{"Inclusive range", &from, &to, []string{"B", "C"}},
		{"From only", &from, nil, []string{"B", "C", "E"}},
		{"To only", nil, &to, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := zones(FilterDateRange(records, "Date", tt.from, tt.to))
			if !slices.Equal(got, tt.expected) {
				t.Errorf("got %v; want %v", got, tt.expected)
			}
		})
	}
}

func TestDistinct(t *testing.T) {
	raw := RawTable{{"Zone"}, {"T2"}, {" T1 "}, {""}, {"T2"}, {"Satellite"}}
	records, err := MapRows(raw, ColumnSpec{TextColumn("Zone")})
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}

	expected := []string{"Satellite", "T1", "T2"}
	if got := Distinct(records, "Zone"); !slices.Equal(got, expected) {
		t.Errorf("Distinct = %v; want %v", got, expected)
	}
}

func TestSearch(t *testing.T) {
	raw := RawTable{
		{"Titre", "Demandeur"},
		{"Nettoyage Début de ligne", "Alice"},
		{"Réparation", "Élodie"},
		{"Contrôle", "Bob"},
	}
	records, err := MapRows(raw, ColumnSpec{TextColumn("Titre"), TextColumn("Demandeur")})
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}

	tests := []struct {
		name     string
		term     string
		fields   []string
		expected int
	}{
		{"Accent insensitive", "debut", nil, 1},
		{"Case insensitive", "REPARATION", nil, 1},
		{"Restricted fields", "elodie", []string{"Titre"}, 0},
		{"Named field", "elodie", []string{"Demandeur"}, 1},
		{"Empty term", "  ", nil, 3},
		{"No match", "zzz", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(records, tt.term, tt.fields...)
			if len(got) != tt.expected {
				t.Errorf("Search(%q) matched %d; want %d", tt.term, len(got), tt.expected)
			}
		})
	}
}
