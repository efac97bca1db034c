package pipeline

import (
	"fmt"
	"math"

	"creatorpulse/pkg/contracts/domain"
)

// Validate checks the dataset against the schema and returns a fresh
// ValidationResult. Rules are evaluated in schema declaration order:
//
//   - a missing column is reported and the remaining checks for that
//     column are skipped
//   - a kind mismatch is reported but does not short-circuit the range
//     checks, which run whenever the actual column is numeric
//   - min and max bounds are checked against the column's observed
//     minimum and maximum over non-missing cells
//
// Validate never raises; the result is valid iff no violation was recorded.
func (p *Pipeline) Validate(ds *domain.Dataset, schema *domain.Schema) *domain.ValidationResult {
	result := &domain.ValidationResult{}
	if schema == nil {
		return result
	}

	for _, rule := range schema.Rules {
		col := ds.Column(rule.Column)
		if col == nil {
			result.Add(rule.Column, fmt.Sprintf("Missing required column: %s", rule.Column), nil)
			continue
		}

		if col.Kind != rule.Kind {
			result.Add(rule.Column,
				fmt.Sprintf("Column %s has kind %s, schema requires %s", rule.Column, col.Kind, rule.Kind),
				string(col.Kind))
		}

		// Range checks need numeric cells regardless of the declared kind
		if col.Kind != domain.KindNumeric {
			continue
		}
		min, max, valid := columnRange(col)
		if !valid {
			continue
		}
		if rule.Min != nil && min < *rule.Min {
			result.Add(rule.Column,
				fmt.Sprintf("Column %s minimum value %g is below schema minimum %g", rule.Column, min, *rule.Min),
				min)
		}
		if rule.Max != nil && max > *rule.Max {
			result.Add(rule.Column,
				fmt.Sprintf("Column %s maximum value %g exceeds schema maximum %g", rule.Column, max, *rule.Max),
				max)
		}
	}
	return result
}

// columnRange returns the observed minimum and maximum over non-missing
// cells. valid is false when the column holds no usable value.
func columnRange(col *domain.Column) (min, max float64, valid bool) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range col.Floats {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		valid = true
	}
	return min, max, valid
}
