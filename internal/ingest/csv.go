package ingest

import (
	"encoding/csv"
	"fmt"
	"os"

	"creatorpulse/pkg/contracts/domain"
)

// LoadCSV reads a CSV file with a header row into a dataset
func (r *Reader) LoadCSV(path string) (*domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, short rows pad as missing

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s has no header row", path)
	}

	r.logger.Debug("loaded CSV file",
		"path", path,
		"columns", len(records[0]),
		"rows", len(records)-1,
	)
	return r.buildDataset(records[0], records[1:])
}
