package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_AddColumn(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddNumericColumn("views", []float64{1, 2, 3}))
	require.NoError(t, ds.AddCategoricalColumn("platform", []string{"twitch", "youtube", "tiktok"}))

	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"views", "platform"}, ds.ColumnNames())
	assert.True(t, ds.HasColumn("views"))
	assert.Nil(t, ds.Column("revenue"))
}

func TestDataset_AddColumnErrors(t *testing.T) {
	tests := []struct {
		name string
		add  func(ds *Dataset) error
	}{
		{
			name: "empty name",
			add: func(ds *Dataset) error {
				return ds.AddNumericColumn("", []float64{1})
			},
		},
		{
			name: "duplicate name",
			add: func(ds *Dataset) error {
				return ds.AddCategoricalColumn("views", []string{"a", "b"})
			},
		},
		{
			name: "row count mismatch",
			add: func(ds *Dataset) error {
				return ds.AddNumericColumn("likes", []float64{1, 2, 3})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDataset()
			require.NoError(t, ds.AddNumericColumn("views", []float64{1, 2}))

			assert.Error(t, tt.add(ds))
		})
	}
}

func TestDataset_FilterRows(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddNumericColumn("views", []float64{1, 2, 3, 4}))
	require.NoError(t, ds.AddCategoricalColumn("platform", []string{"a", "b", "c", "d"}))

	require.NoError(t, ds.FilterRows([]bool{true, false, true, false}))

	assert.Equal(t, 2, ds.Rows())
	assert.Equal(t, []float64{1, 3}, ds.Column("views").Floats)
	assert.Equal(t, []string{"a", "c"}, ds.Column("platform").Labels)
}

func TestDataset_FilterRowsMaskMismatch(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddNumericColumn("views", []float64{1, 2}))

	assert.Error(t, ds.FilterRows([]bool{true}))
}

func TestDataset_CloneIsIndependent(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddNumericColumn("views", []float64{1, 2}))

	clone := ds.Clone()
	clone.Column("views").Floats[0] = 99

	assert.Equal(t, 1.0, ds.Column("views").Floats[0])
	assert.Equal(t, 99.0, clone.Column("views").Floats[0])
}

func TestDataset_RowKey(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddNumericColumn("views", []float64{1, 1, 2, math.NaN()}))
	require.NoError(t, ds.AddCategoricalColumn("platform", []string{"a", "a", "a", "a"}))

	assert.Equal(t, ds.RowKey(0), ds.RowKey(1), "identical rows share a key")
	assert.NotEqual(t, ds.RowKey(0), ds.RowKey(2))
	assert.NotEqual(t, ds.RowKey(0), ds.RowKey(3), "missing cells do not collide with values")
}

func TestDataset_Equal(t *testing.T) {
	build := func() *Dataset {
		ds := NewDataset()
		_ = ds.AddNumericColumn("views", []float64{1, math.NaN()})
		_ = ds.AddCategoricalColumn("platform", []string{"a", ""})
		return ds
	}

	a := build()
	b := build()
	assert.True(t, a.Equal(b), "NaN cells compare equal")

	b.Column("views").Floats[0] = 2
	assert.False(t, a.Equal(b))
}

func TestColumn_MissingCells(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddNumericColumn("views", []float64{1, math.NaN()}))
	require.NoError(t, ds.AddCategoricalColumn("platform", []string{"a", ""}))

	assert.False(t, ds.Column("views").IsMissing(0))
	assert.True(t, ds.Column("views").IsMissing(1))
	assert.False(t, ds.Column("platform").IsMissing(0))
	assert.True(t, ds.Column("platform").IsMissing(1))

	assert.Equal(t, "1", ds.Column("views").CellString(0))
	assert.Equal(t, "", ds.Column("views").CellString(1))
}
