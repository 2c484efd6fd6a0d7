package sheets

import (
	"testing"

	"github.com/nconklindev/portail/internal/table"
	"github.com/nconklindev/portail/internal/types"
)

func TestDetectSpec(t *testing.T) {
	tests := []struct {
		name     string
		data     *types.FileData
		expected table.ColumnSpec
	}{
		{
			name: "Detects dates, times and numbers",
			data: &types.FileData{
				Headers: []string{"BS", "Date", "Heure début", "Surface"},
				Rows: [][]string{
					{"BS-01", "15/05/2025", "08:00", "12,5"},
					{"BS-02", "2/6/2025", "9:30", "40"},
				},
			},
			expected: table.ColumnSpec{
				table.TextColumn("BS"),
				table.DateColumn("Date"),
				table.TimeColumn("Heure début"),
				table.NumberColumn("Surface"),
			},
		},
		{
			name: "Mixed date and timestamp",
			data: &types.FileData{
				Headers: []string{"Horod"},
				Rows:    [][]string{{"15/05/2025 08:00"}, {"16/05/2025"}},
			},
			expected: table.ColumnSpec{table.DateTimeColumn("Horod")},
		},
		{
			name: "Handles empty cells and skips blank headers",
			data: &types.FileData{
				Headers: []string{"Valeur", "", "Vide"},
				Rows:    [][]string{{""}, {"8.0", "x"}},
			},
			expected: table.ColumnSpec{table.NumberColumn("Valeur"), table.TextColumn("Vide")},
		},
		{
			name: "One bad cell makes it text",
			data: &types.FileData{
				Headers: []string{"Date"},
				Rows:    [][]string{{"15/05/2025"}, {"bientôt"}},
			},
			expected: table.ColumnSpec{table.TextColumn("Date")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSpec(tt.data)
			if len(got) != len(tt.expected) {
				t.Fatalf("DetectSpec() = %v; want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("DetectSpec() = %v; want %v", got, tt.expected)
				}
			}
		})
	}
}
