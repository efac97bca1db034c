package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"creatorpulse/pkg/contracts/domain"
)

// LoadExcel reads the named sheet of an xlsx workbook into a dataset.
// An empty sheet name selects the first sheet in the workbook.
func (r *Reader) LoadExcel(path, sheet string) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("Excel file %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q of %s has no header row", sheet, path)
	}

	r.logger.Debug("loaded Excel sheet",
		"path", path,
		"sheet", sheet,
		"columns", len(rows[0]),
		"rows", len(rows)-1,
	)
	return r.buildDataset(rows[0], rows[1:])
}
