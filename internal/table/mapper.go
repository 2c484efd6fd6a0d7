package table

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"
)

// RawTable is a sheet range as returned by the spreadsheet API: row 0 is the
// header, data rows may be shorter than the header.
type RawTable [][]string

func (t RawTable) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// DataRows returns the rows after the header.
func (t RawTable) DataRows() [][]string {
	if len(t) <= 1 {
		return nil
	}
	return t[1:]
}

func (t RawTable) Clone() RawTable {
	if t == nil {
		return nil
	}
	out := make(RawTable, len(t))
	for i, row := range t {
		out[i] = slices.Clone(row)
	}
	return out
}

type binding struct {
	column Column
	key    string
	index  int // -1 when the header row lacks the column
}

// MapRows turns the data rows of raw into records shaped by spec. Columns
// missing from the header and cells missing from short rows coerce to the
// kind's empty value. Row order is kept. Only an invalid spec is an error.
func MapRows(raw RawTable, spec ColumnSpec) ([]Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(raw) <= 1 {
		return []Record{}, nil
	}

	bindings := bind(raw.Header(), spec)
	names := make([]string, len(bindings))
	keys := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.column.Name
		keys[i] = b.key
	}

	records := make([]Record, 0, len(raw)-1)
	for _, row := range raw.DataRows() {
		values := make([]Value, len(bindings))
		for i, b := range bindings {
			cell := ""
			if b.index >= 0 && b.index < len(row) {
				cell = row[b.index]
			}
			values[i] = Coerce(cell, b.column.Kind)
		}
		records = append(records, Record{names: names, keys: keys, values: values})
	}

	return records, nil
}

// bind resolves spec columns against the header. Found columns come first in
// header order, missing ones follow in spec order.
func bind(header []string, spec ColumnSpec) []binding {
	fold := cases.Fold()

	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := headerKey(fold, h)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	bindings := make([]binding, len(spec))
	for i, col := range spec {
		key := headerKey(fold, col.Name)
		idx, ok := positions[key]
		if !ok {
			idx = -1
		}
		bindings[i] = binding{column: col, key: key, index: idx}
	}

	slices.SortStableFunc(bindings, func(a, b binding) int {
		switch {
		case a.index < 0 && b.index < 0:
			return 0
		case a.index < 0:
			return 1
		case b.index < 0:
			return -1
		}
		return cmp.Compare(a.index, b.index)
	})

	return bindings
}
