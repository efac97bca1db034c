package pipeline

import (
	"math"

	"creatorpulse/pkg/contracts/domain"
)

// ScalerKind identifies the transform a fitted scaler applies
type ScalerKind string

const (
	// ScalerMinMax rescales values into the [0, 1] range
	ScalerMinMax ScalerKind = "minmax"
	// ScalerZScore rescales values to zero mean and unit variance
	ScalerZScore ScalerKind = "zscore"
)

// ColumnScaler holds the fitted parameters of a single column transform.
// Parameters are data-dependent and must never be reused across unrelated
// datasets without re-fitting.
type ColumnScaler struct {
	Kind ScalerKind `json:"kind"`
	Min  float64    `json:"min,omitempty"`
	Max  float64    `json:"max,omitempty"`
	Mean float64    `json:"mean,omitempty"`
	Std  float64    `json:"std,omitempty"`
}

// Transform applies the fitted transform to a single value. Degenerate
// fits (zero range, zero deviation) map every value to 0.
func (s ColumnScaler) Transform(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	switch s.Kind {
	case ScalerMinMax:
		if s.Max > s.Min {
			return (v - s.Min) / (s.Max - s.Min)
		}
		return 0
	case ScalerZScore:
		if s.Std > 0 {
			return (v - s.Mean) / s.Std
		}
		return 0
	}
	return v
}

// Inverse undoes the fitted transform for a single value
func (s ColumnScaler) Inverse(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	switch s.Kind {
	case ScalerMinMax:
		if s.Max > s.Min {
			return v*(s.Max-s.Min) + s.Min
		}
		return s.Min
	case ScalerZScore:
		if s.Std > 0 {
			return v*s.Std + s.Mean
		}
		return s.Mean
	}
	return v
}

// Normalize rescales the requested numeric columns into [0, 1] in place
// using per-column min-max fits. The fitted parameters are retained in the
// pipeline's scaling state, overwriting any previous fit for the same
// column. The dataset is untouched if any requested column is absent or
// non-numeric.
func (p *Pipeline) Normalize(ds *domain.Dataset, columns []string) error {
	cols, err := p.numericColumns(ds, columns, "normalize")
	if err != nil {
		return err
	}

	for _, col := range cols {
		min, max, valid := columnRange(col)
		if !valid {
			// nothing to fit on an entirely missing column
			continue
		}
		scaler := ColumnScaler{Kind: ScalerMinMax, Min: min, Max: max}
		applyScaler(col, scaler)
		p.scalers[col.Name] = scaler
	}
	return nil
}

// Standardize rescales the requested numeric columns to zero mean and unit
// variance in place using per-column z-score fits with the sample standard
// deviation. Retention and error behavior match Normalize.
func (p *Pipeline) Standardize(ds *domain.Dataset, columns []string) error {
	cols, err := p.numericColumns(ds, columns, "standardize")
	if err != nil {
		return err
	}

	for _, col := range cols {
		mean, std, valid := columnMoments(col)
		if !valid {
			continue
		}
		scaler := ColumnScaler{Kind: ScalerZScore, Mean: mean, Std: std}
		applyScaler(col, scaler)
		p.scalers[col.Name] = scaler
	}
	return nil
}

// InverseTransform undoes the most recent fitted transform for each of the
// requested columns in place. Fails if a column is absent, non-numeric, or
// was never fitted by this pipeline instance.
func (p *Pipeline) InverseTransform(ds *domain.Dataset, columns []string) error {
	cols, err := p.numericColumns(ds, columns, "inverse transform")
	if err != nil {
		return err
	}
	for _, col := range cols {
		if _, ok := p.scalers[col.Name]; !ok {
			return &ScalerNotFittedError{Column: col.Name}
		}
	}

	for _, col := range cols {
		scaler := p.scalers[col.Name]
		for i, v := range col.Floats {
			col.Floats[i] = scaler.Inverse(v)
		}
	}
	return nil
}

// Scalers returns a copy of the currently retained per-column scaling state
func (p *Pipeline) Scalers() map[string]ColumnScaler {
	out := make(map[string]ColumnScaler, len(p.scalers))
	for name, s := range p.scalers {
		out[name] = s
	}
	return out
}

// numericColumns resolves the requested column names, failing before any
// mutation if a column is missing or not numeric
func (p *Pipeline) numericColumns(ds *domain.Dataset, columns []string, op string) ([]*domain.Column, error) {
	cols := make([]*domain.Column, 0, len(columns))
	for _, name := range columns {
		col := ds.Column(name)
		if col == nil {
			return nil, &ColumnNotFoundError{Op: op, Column: name}
		}
		if col.Kind != domain.KindNumeric {
			return nil, &TypeMismatchError{Op: op, Column: name, Kind: col.Kind}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func applyScaler(col *domain.Column, scaler ColumnScaler) {
	for i, v := range col.Floats {
		col.Floats[i] = scaler.Transform(v)
	}
}

// columnMoments returns the mean and sample standard deviation over
// non-missing cells. valid is false when the column holds no usable value.
func columnMoments(col *domain.Column) (mean, std float64, valid bool) {
	var sum float64
	var count int
	for _, v := range col.Floats {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	mean = sum / float64(count)

	if count > 1 {
		var sumSq float64
		for _, v := range col.Floats {
			if math.IsNaN(v) {
				continue
			}
			d := v - mean
			sumSq += d * d
		}
		std = math.Sqrt(sumSq / float64(count-1))
	}
	return mean, std, true
}
