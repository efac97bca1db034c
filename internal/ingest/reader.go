// Package ingest loads tabular datasets from CSV and Excel files produced
// by the upstream platform collectors.
package ingest

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"creatorpulse/pkg/contracts/domain"
)

// nanValue marks a missing numeric cell
var nanValue = math.NaN()

// DefaultMissingTokens are the cell values treated as missing in addition
// to the empty cell
var DefaultMissingTokens = []string{"NA", "N/A", "null", "NaN"}

// Reader loads datasets from tabular files. Column kinds are inferred:
// a column is numeric when every non-missing cell parses as a float.
type Reader struct {
	logger        *slog.Logger
	missingTokens map[string]bool
}

// NewReader creates a reader with the given logger and missing-value
// tokens. Nil arguments fall back to defaults.
func NewReader(logger *slog.Logger, missingTokens []string) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if missingTokens == nil {
		missingTokens = DefaultMissingTokens
	}
	tokens := make(map[string]bool, len(missingTokens))
	for _, t := range missingTokens {
		tokens[strings.ToLower(t)] = true
	}
	return &Reader{logger: logger, missingTokens: tokens}
}

// isMissing reports whether a raw cell represents a missing value
func (r *Reader) isMissing(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	return trimmed == "" || r.missingTokens[strings.ToLower(trimmed)]
}

// buildDataset turns a header row plus data rows into a typed dataset.
// Short rows are padded with missing cells; column kinds are inferred per
// column over the non-missing cells.
func (r *Reader) buildDataset(headers []string, rows [][]string) (*domain.Dataset, error) {
	ds := domain.NewDataset()

	for j, name := range headers {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty header", j+1)
		}

		cells := make([]string, len(rows))
		for i, row := range rows {
			if j < len(row) {
				cells[i] = strings.TrimSpace(row[j])
			}
		}

		if col, ok := r.parseNumeric(cells); ok {
			if err := ds.AddNumericColumn(name, col); err != nil {
				return nil, err
			}
			continue
		}

		labels := make([]string, len(cells))
		for i, cell := range cells {
			if !r.isMissing(cell) {
				labels[i] = cell
			}
		}
		if err := ds.AddCategoricalColumn(name, labels); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// parseNumeric attempts to parse the column as numeric. It succeeds only
// when at least one cell holds a value and every non-missing cell parses.
func (r *Reader) parseNumeric(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	hasValue := false
	for i, cell := range cells {
		if r.isMissing(cell) {
			out[i] = nanValue
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
		hasValue = true
	}
	return out, hasValue
}
