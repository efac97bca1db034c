package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorpulse/pkg/contracts/domain"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestValidate_Determinism(t *testing.T) {
	schema := domain.NewSchema(domain.ColumnRule{
		Column: "age",
		Kind:   domain.KindNumeric,
		Min:    floatPtr(0),
		Max:    floatPtr(120),
	})

	tests := []struct {
		name      string
		ages      []float64
		wantValid bool
		wantMsg   string
	}{
		{
			name:      "within bounds",
			ages:      []float64{25, 40},
			wantValid: true,
		},
		{
			name:      "max bound breached",
			ages:      []float64{25, 150},
			wantValid: false,
			wantMsg:   "Column age maximum value 150 exceeds schema maximum 120",
		},
		{
			name:      "min bound breached",
			ages:      []float64{-2, 40},
			wantValid: false,
			wantMsg:   "Column age minimum value -2 is below schema minimum 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := buildDataset(t, func(ds *domain.Dataset) error {
				return ds.AddNumericColumn("age", tt.ages)
			})

			result := New(nil).Validate(ds, schema)

			assert.Equal(t, tt.wantValid, result.Valid())
			if tt.wantValid {
				assert.Empty(t, result.Violations)
			} else {
				require.Len(t, result.Violations, 1)
				assert.Equal(t, tt.wantMsg, result.Violations[0].Message)
			}
		})
	}
}

func TestValidate_MissingColumn(t *testing.T) {
	ds := buildDataset(t, func(ds *domain.Dataset) error {
		return ds.AddNumericColumn("age", []float64{25})
	})
	schema := domain.NewSchema(
		domain.ColumnRule{Column: "income", Kind: domain.KindNumeric, Min: floatPtr(0)},
		domain.ColumnRule{Column: "age", Kind: domain.KindNumeric},
	)

	result := New(nil).Validate(ds, schema)

	require.False(t, result.Valid())
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "Missing required column: income", result.Violations[0].Message)
}

func TestValidate_KindMismatch(t *testing.T) {
	ds := buildDataset(t, func(ds *domain.Dataset) error {
		return ds.AddCategoricalColumn("age", []string{"25", "40"})
	})
	schema := domain.NewSchema(domain.ColumnRule{
		Column: "age",
		Kind:   domain.KindNumeric,
		Max:    floatPtr(120),
	})

	result := New(nil).Validate(ds, schema)

	require.False(t, result.Valid())
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0].Message, "has kind categorical")
	assert.Contains(t, result.Violations[0].Message, "requires numeric")
}

func TestValidate_KindMismatchDoesNotSuppressRangeChecks(t *testing.T) {
	// declared categorical, actually numeric: the mismatch is reported and
	// the rule keeps evaluating against the numeric cells
	ds := buildDataset(t, func(ds *domain.Dataset) error {
		return ds.AddNumericColumn("followers", []float64{100, 200})
	})
	schema := domain.NewSchema(domain.ColumnRule{
		Column: "followers",
		Kind:   domain.KindCategorical,
	})

	result := New(nil).Validate(ds, schema)

	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0].Message, "schema requires categorical")
}

func TestValidate_ViolationsFollowSchemaOrder(t *testing.T) {
	ds := buildDataset(t, func(ds *domain.Dataset) error {
		if err := ds.AddNumericColumn("age", []float64{150}); err != nil {
			return err
		}
		return ds.AddNumericColumn("income", []float64{-10})
	})
	schema := domain.NewSchema(
		domain.ColumnRule{Column: "age", Kind: domain.KindNumeric, Max: floatPtr(120)},
		domain.ColumnRule{Column: "engagement", Kind: domain.KindNumeric},
		domain.ColumnRule{Column: "income", Kind: domain.KindNumeric, Min: floatPtr(0)},
	)

	result := New(nil).Validate(ds, schema)

	require.Len(t, result.Violations, 3)
	assert.Equal(t, "age", result.Violations[0].Column)
	assert.Equal(t, "Missing required column: engagement", result.Violations[1].Message)
	assert.Equal(t, "income", result.Violations[2].Column)
}

func TestValidate_IgnoresMissingCells(t *testing.T) {
	ds := buildDataset(t, func(ds *domain.Dataset) error {
		return ds.AddNumericColumn("age", []float64{25, nan(), 40})
	})
	schema := domain.NewSchema(domain.ColumnRule{
		Column: "age",
		Kind:   domain.KindNumeric,
		Min:    floatPtr(0),
		Max:    floatPtr(120),
	})

	result := New(nil).Validate(ds, schema)

	assert.True(t, result.Valid())
}

func TestValidate_NilSchema(t *testing.T) {
	ds := buildDataset(t, func(ds *domain.Dataset) error {
		return ds.AddNumericColumn("age", []float64{25})
	})

	result := New(nil).Validate(ds, nil)

	assert.True(t, result.Valid())
}
