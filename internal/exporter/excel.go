package exporter

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"creatorpulse/pkg/contracts/domain"
)

// WriteExcel writes the dataset to an xlsx workbook. Numeric cells keep
// their numeric type so Excel formulas work on the export; missing cells
// stay empty.
func (w *Writer) WriteExcel(ds *domain.Dataset, path, sheet string) error {
	if sheet == "" {
		sheet = "Sheet1"
	}

	w.logger.Info("writing Excel file",
		"path", path,
		"sheet", sheet,
		"rows", ds.Rows(),
	)

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]interface{}, len(ds.Columns()))
	for j, name := range ds.ColumnNames() {
		header[j] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i := 0; i < ds.Rows(); i++ {
		row := make([]interface{}, len(ds.Columns()))
		for j, col := range ds.Columns() {
			if col.Kind == domain.KindNumeric {
				if math.IsNaN(col.Floats[i]) {
					row[j] = nil
				} else {
					row[j] = col.Floats[i]
				}
			} else {
				row[j] = col.Labels[i]
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
