package table

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestMapRows(t *testing.T) {
	raw := RawTable{
		{"Date", "Zone", "Valeur"},
		{"15/05/2025", "T1", ""},
	}
	spec := ColumnSpec{DateColumn("Date"), TextColumn("Zone"), NumberColumn("Valeur")}

	records, err := MapRows(raw, spec)
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	r := records[0]
	d, ok := r.Date("Date")
	if !ok || d != (CalendarDate{2025, time.May, 15}) {
		t.Errorf("Date = %v %v", d, ok)
	}
	if r.Text("Zone") != "T1" {
		t.Errorf("Zone = %q", r.Text("Zone"))
	}
	v, ok := r.Value("Valeur")
	if !ok || !v.Valid() || v.Number() != 0 {
		t.Errorf("Valeur = %v %v; want a valid 0", v.Number(), ok)
	}
}

func TestMapRows_HeaderMatching(t *testing.T) {
	raw := RawTable{
		{"  ZONE ", "heure DÉBUT", "Autre"},
		{"T2", "8:00", "x"},
	}
	spec := ColumnSpec{TextColumn("zone"), TimeColumn("Heure début")}

	records, err := MapRows(raw, spec)
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}

	r := records[0]
	if r.Text("Zone") != "T2" {
		t.Errorf("Zone = %q", r.Text("Zone"))
	}
	if clock, ok := r.Time("HEURE DÉBUT"); !ok || clock != (TimeOfDay{8, 0, 0}) {
		t.Errorf("Heure début = %v %v", clock, ok)
	}
	if _, ok := r.Value("Autre"); ok {
		t.Errorf("columns outside the ColumnSpec must not be mapped")
	}
}

func TestMapRows_ShortRowsAndMissingColumns(t *testing.T) {
	raw := RawTable{
		{"BS", "Date", "Heure début", "Heure fin"},
		{"BS-01", "02/01/2025", "08:00", "09:00"},
		{"BS-02"},
		{},
	}
	spec := ColumnSpec{
		TextColumn("BS"),
		DateColumn("Date"),
		TimeColumn("Heure début"),
		TimeColumn("Heure fin"),
		NumberColumn("Surface"),
	}

	records, err := MapRows(raw, spec)
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	short := records[1]
	if short.Text("BS") != "BS-02" {
		t.Errorf("BS = %q", short.Text("BS"))
	}
	if _, ok := short.Date("Date"); ok {
		t.Errorf("missing date cell should be absent")
	}
	if _, ok := short.Time("Heure fin"); ok {
		t.Errorf("missing time cell should be absent")
	}

	for i, r := range records {
		if r.Number("Surface") != 0 {
			t.Errorf("record %d: column missing from header should coerce to 0", i)
		}
	}
	if records[2].Text("BS") != "" {
		t.Errorf("empty row should map to empty text")
	}
}

func TestMapRows_FieldOrder(t *testing.T) {
	raw := RawTable{
		{"Zone", "Agent", "Date"},
		{"T1", "Alice", "01/01/2025"},
	}
	spec := ColumnSpec{DateColumn("Date"), TextColumn("Missing"), TextColumn("Zone")}

	records, err := MapRows(raw, spec)
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}

	expected := []string{"Zone", "Date", "Missing"}
	if got := records[0].Names(); !slices.Equal(got, expected) {
		t.Errorf("Names() = %v; want %v", got, expected)
	}
}

func TestMapRows_PreservesRowOrder(t *testing.T) {
	raw := RawTable{
		{"Date"},
		{"10/01/2025"},
		{"02/01/2025"},
		{"05/01/2025"},
	}

	records, err := MapRows(raw, ColumnSpec{TextColumn("Date")})
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}

	var got []string
	for _, r := range records {
		got = append(got, r.Text("Date"))
	}
	expected := []string{"10/01/2025", "02/01/2025", "05/01/2025"}
	if !slices.Equal(got, expected) {
		t.Errorf("got %v; want %v", got, expected)
	}
}

func TestMapRows_EmptyData(t *testing.T) {
	spec := ColumnSpec{TextColumn("Zone")}
	tests := []struct {
		name string
		raw  RawTable
	}{
		{"Nil", nil},
		{"No rows", RawTable{}},
		{"Header only", RawTable{{"Zone"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := MapRows(tt.raw, spec)
			if err != nil {
				t.Fatalf("MapRows failed: %v", err)
			}
			if records == nil || len(records) != 0 {
				t.Errorf("expected an empty, non-nil slice, got %#v", records)
			}
		})
	}
}

func TestMapRows_InvalidSpec(t *testing.T) {
	raw := RawTable{{"Zone"}, {"T1"}}
	tests := []struct {
		name     string
		spec     ColumnSpec
		expected error
	}{
		{"Nil spec", nil, ErrEmptySpec},
		{"Blank name", ColumnSpec{TextColumn("  ")}, ErrEmptyColumnName},
		{"Duplicate", ColumnSpec{TextColumn("Zone"), NumberColumn("zone ")}, ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapRows(raw, tt.spec)
			if !errors.Is(err, tt.expected) {
				t.Errorf("MapRows() error = %v; want %v", err, tt.expected)
			}
		})
	}
}

func TestMapRows_DoesNotAlias(t *testing.T) {
	raw := RawTable{{"Zone"}, {"T1"}}
	records, err := MapRows(raw, ColumnSpec{TextColumn("Zone")})
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}

	raw[1][0] = "changed"
	if records[0].Text("Zone") != "T1" {
		t.Errorf("record changed with its source table")
	}

	names := records[0].Names()
	names[0] = "changed"
	if records[0].Names()[0] != "Zone" {
		t.Errorf("record names are mutable from outside")
	}
}
