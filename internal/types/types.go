package types

import "github.com/nconklindev/portail/internal/table"

// FileData is a sheet range split into its header and data rows.
type FileData struct {
	Source    string
	Headers   []string
	Rows      [][]string
	HeaderRow int
}

// Table rebuilds the header-first layout the row mapper expects.
func (d *FileData) Table() table.RawTable {
	if d == nil || len(d.Headers) == 0 {
		return nil
	}
	raw := make(table.RawTable, 0, len(d.Rows)+1)
	raw = append(raw, d.Headers)
	raw = append(raw, d.Rows...)
	return raw
}

type ExportResult struct {
	OutputFile  string
	Columns     []string
	RowsWritten int
}
