package pipeline

import (
	"math"

	"creatorpulse/pkg/contracts/domain"
)

// CleanStats summarizes what a Clean pass changed
type CleanStats struct {
	InputRows              int `json:"input_rows"`
	OutputRows             int `json:"output_rows"`
	DuplicateRowsRemoved   int `json:"duplicate_rows_removed"`
	NumericImputations     int `json:"numeric_imputations"`
	CategoricalImputations int `json:"categorical_imputations"`
	NegativeRowsDropped    int `json:"negative_rows_dropped"`
}

// Clean returns a cleaned copy of the dataset. The input is never modified.
//
// The pass applies three fixed steps in order:
//
//  1. Exact-duplicate rows are removed, keeping the first occurrence and
//     the original relative order of survivors.
//  2. Missing cells are imputed per column: numeric columns use the
//     arithmetic mean of the surviving valid values, categorical columns
//     use the most frequent value with a first-seen tie-break.
//  3. For each numeric column in declaration order, if the column contains
//     a negative value, every row holding a negative value in that column
//     is dropped. Filtering compounds left to right across columns.
//
// The imputation mean excludes negative values in columns subject to the
// negative filter, so a statistic is never polluted by rows the same pass
// is about to discard.
//
// Clean never fails; an empty dataset is valid input and valid output.
func (p *Pipeline) Clean(ds *domain.Dataset) *domain.Dataset {
	cleaned, _ := p.CleanWithStats(ds)
	return cleaned
}

// CleanWithStats performs a Clean pass and reports what changed
func (p *Pipeline) CleanWithStats(ds *domain.Dataset) (*domain.Dataset, CleanStats) {
	stats := CleanStats{InputRows: ds.Rows()}
	out := ds.Clone()

	stats.DuplicateRowsRemoved = dropDuplicateRows(out)
	stats.NumericImputations, stats.CategoricalImputations = imputeMissing(out)
	stats.NegativeRowsDropped = dropNegativeRows(out)

	stats.OutputRows = out.Rows()
	return out, stats
}

// dropDuplicateRows removes exact-duplicate rows in place, preserving the
// first occurrence, and returns the number of rows removed
func dropDuplicateRows(ds *domain.Dataset) int {
	rows := ds.Rows()
	if rows == 0 {
		return 0
	}

	seen := make(map[string]bool, rows)
	keep := make([]bool, rows)
	removed := 0
	for i := 0; i < rows; i++ {
		key := ds.RowKey(i)
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		keep[i] = true
	}
	if removed > 0 {
		ds.FilterRows(keep)
	}
	return removed
}

// imputeMissing replaces missing cells column by column and returns the
// number of numeric and categorical cells imputed
func imputeMissing(ds *domain.Dataset) (numeric, categorical int) {
	for _, col := range ds.Columns() {
		if col.Kind == domain.KindNumeric {
			numeric += imputeNumericColumn(col)
		} else {
			categorical += imputeCategoricalColumn(col)
		}
	}
	return numeric, categorical
}

// imputeNumericColumn fills NaN cells with the column mean. Negative values
// are excluded from the mean because the negative filter removes their rows
// later in the same pass; if the column holds no usable non-negative value
// the mean falls back to all valid values, and an entirely missing column
// is left untouched.
func imputeNumericColumn(col *domain.Column) int {
	var sum, negSum float64
	var count, negCount int
	for _, v := range col.Floats {
		if math.IsNaN(v) {
			continue
		}
		if v >= 0 {
			sum += v
			count++
		} else {
			negSum += v
			negCount++
		}
	}

	var mean float64
	switch {
	case count > 0:
		mean = sum / float64(count)
	case negCount > 0:
		mean = negSum / float64(negCount)
	default:
		return 0
	}

	imputed := 0
	for i, v := range col.Floats {
		if math.IsNaN(v) {
			col.Floats[i] = mean
			imputed++
		}
	}
	return imputed
}

// imputeCategoricalColumn fills empty cells with the most frequent label.
// Ties break in favor of the label that first reached the winning count in
// column iteration order. An entirely missing column is left untouched.
func imputeCategoricalColumn(col *domain.Column) int {
	counts := make(map[string]int)
	mode := ""
	best := 0
	for _, v := range col.Labels {
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > best {
			best = counts[v]
			mode = v
		}
	}
	if mode == "" {
		return 0
	}

	imputed := 0
	for i, v := range col.Labels {
		if v == "" {
			col.Labels[i] = mode
			imputed++
		}
	}
	return imputed
}

// dropNegativeRows applies the per-column negative filter in column
// declaration order. The row set after each column feeds the next, so
// filtering effects compound left to right. Returns total rows dropped.
func dropNegativeRows(ds *domain.Dataset) int {
	dropped := 0
	for _, col := range ds.Columns() {
		if col.Kind != domain.KindNumeric {
			continue
		}
		hasNegative := false
		for _, v := range col.Floats {
			if !math.IsNaN(v) && v < 0 {
				hasNegative = true
				break
			}
		}
		if !hasNegative {
			continue
		}

		rows := ds.Rows()
		keep := make([]bool, rows)
		for i, v := range col.Floats {
			// NaN cells survive; only definite negatives drop the row
			keep[i] = math.IsNaN(v) || v >= 0
			if !keep[i] {
				dropped++
			}
		}
		ds.FilterRows(keep)
	}
	return dropped
}
