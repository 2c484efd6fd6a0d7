package sheets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/nconklindev/portail/internal/table"
	"github.com/nconklindev/portail/internal/types"

	"github.com/xuri/excelize/v2"
)

const RowDetectionLimit = 10

// ReadFile loads a sheet exported as CSV, XLSX or a values JSON dump.
func ReadFile(filePath string) (*types.FileData, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".csv":
		return readCSVData(filePath)
	case ".xlsx":
		return readXLSXData(filePath, "")
	case ".json":
		return readJSONData(filePath)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// ReadXLSXSheet loads one named sheet of a workbook.
func ReadXLSXSheet(filePath, sheet string) (*types.FileData, error) {
	return readXLSXData(filePath, sheet)
}

func readCSVData(filePath string) (*types.FileData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Sheets drop trailing empty cells, so rows are ragged.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	return &types.FileData{
		Source:  filePath,
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}

func readXLSXData(filePath, sheetName string) (*types.FileData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	header := headerRow(rows)
	if header < 0 {
		return nil, fmt.Errorf("sheet %q: no header in the first %d rows", sheetName, RowDetectionLimit)
	}

	return &types.FileData{
		Source:    filePath + "#" + sheetName,
		Headers:   rows[header],
		Rows:      rows[header+1:],
		HeaderRow: header,
	}, nil
}

func readJSONData(filePath string) (*types.FileData, error) {
	body, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	raw, err := ParseValues(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	return &types.FileData{
		Source:  filePath,
		Headers: raw.Header(),
		Rows:    raw.DataRows(),
	}, nil
}

// headerRow returns the index of the row with the most label cells among
// the first RowDetectionLimit rows, -1 when no row has two labels. A title
// block above the header is a single merged cell so it never wins.
func headerRow(rows [][]string) int {
	best, most := -1, 1
	for i, row := range rows[:min(len(rows), RowDetectionLimit)] {
		labels := 0
		for _, cell := range row {
			if isLabel(cell) {
				labels++
			}
		}
		if labels > most {
			best, most = i, labels
		}
	}
	return best
}

// isLabel reports whether a cell reads as a column name rather than a value.
func isLabel(cell string) bool {
	cell = strings.TrimSpace(cell)
	if !containsLetters(cell) {
		return false
	}
	_, isDate := table.ParseFrenchDate(cell)
	return !isDate
}

// containsLetters checks for any letter, accented ones included ("Détails").
func containsLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
