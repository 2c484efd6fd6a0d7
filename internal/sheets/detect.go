package sheets

import (
	"strconv"
	"strings"

	"github.com/nconklindev/portail/internal/table"
	"github.com/nconklindev/portail/internal/types"
)

// DetectSpec guesses a ColumnSpec for a file opened without one, looking at
// the first RowDetectionLimit data rows. A column is typed only when every
// non-empty sampled cell parses as that kind. Blank headers are skipped.
func DetectSpec(data *types.FileData) table.ColumnSpec {
	var spec table.ColumnSpec
	seen := make(map[string]bool)

	for i, header := range data.Headers {
		name := strings.TrimSpace(header)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		spec = append(spec, table.Column{Name: name, Kind: detectKind(data, i)})
	}

	return spec
}

func detectKind(data *types.FileData, col int) table.Kind {
	candidates := []table.Kind{table.KindDateFR, table.KindDateTimeFR, table.KindTimeOfDay, table.KindNumber}
	matches := make(map[table.Kind]bool, len(candidates))
	for _, k := range candidates {
		matches[k] = true
	}

	checkedRows := 0
	for j := 0; j < len(data.Rows) && j < RowDetectionLimit; j++ {
		if col >= len(data.Rows[j]) {
			continue
		}
		val := strings.TrimSpace(data.Rows[j][col])
		if val == "" {
			continue
		}
		checkedRows++

		if _, ok := table.ParseFrenchDate(val); !ok || strings.Contains(val, ":") {
			matches[table.KindDateFR] = false
		}
		if _, _, ok := table.ParseFrenchDateTime(val); !ok {
			matches[table.KindDateTimeFR] = false
		}
		if _, ok := table.ParseTimeOfDay(val); !ok {
			matches[table.KindTimeOfDay] = false
		}
		if !isNumber(val) {
			matches[table.KindNumber] = false
		}
	}

	if checkedRows == 0 {
		return table.KindText
	}
	for _, k := range candidates {
		if matches[k] {
			return k
		}
	}
	return table.KindText
}

func isNumber(s string) bool {
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	return err == nil && strings.Count(s, ",") == 1
}
