package sheets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/portail/internal/types"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the sheet written into exported workbooks.
const ExportSheetName = "Export"

// Export writes headers and rows to outputFile, as CSV or XLSX depending on
// its extension.
func Export(outputFile string, headers []string, rows [][]string) (*types.ExportResult, error) {
	ext := strings.ToLower(filepath.Ext(outputFile))

	var err error
	switch ext {
	case ".csv":
		err = exportCSV(outputFile, headers, rows)
	case ".xlsx":
		err = exportXLSX(outputFile, headers, rows)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	return &types.ExportResult{
		OutputFile:  outputFile,
		Columns:     headers,
		RowsWritten: len(rows),
	}, nil
}

func exportCSV(outputFile string, headers []string, rows [][]string) error {
	outFile, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer outFile.Close()

	writer := csv.NewWriter(outFile)
	if err := writer.Write(headers); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}

	return outFile.Close()
}

func exportXLSX(outputFile string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for colIdx, header := range headers {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ExportSheetName, cell, header); err != nil {
			return err
		}
	}

	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(ExportSheetName, "A1", last, bold); err != nil {
			return err
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ExportSheetName, cell, value); err != nil {
				return fmt.Errorf("cell %s: %w", cell, err)
			}
		}
	}

	return f.SaveAs(outputFile)
}
