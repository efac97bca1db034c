package exporter

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"creatorpulse/internal/pipeline"
	"creatorpulse/pkg/contracts/domain"
)

func testDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	ds := domain.NewDataset()
	require.NoError(t, ds.AddNumericColumn("age", []float64{25, math.NaN(), 40}))
	require.NoError(t, ds.AddCategoricalColumn("platform", []string{"twitch", "youtube", ""}))
	return ds
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "clean.csv")

	require.NoError(t, NewWriter(nil, false).WriteCSV(testDataset(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"age", "platform"}, records[0])
	assert.Equal(t, []string{"25", "twitch"}, records[1])
	assert.Equal(t, []string{"", "youtube"}, records[2], "missing cells export empty")
	assert.Equal(t, []string{"40", ""}, records[3])
}

func TestWriteCSV_BOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")

	require.NoError(t, NewWriter(nil, true).WriteCSV(testDataset(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestWriteValidationReport(t *testing.T) {
	result := &domain.ValidationResult{}
	result.Add("age", "Column age maximum value 150 exceeds schema maximum 120", 150.0)
	path := filepath.Join(t.TempDir(), "violations.csv")

	require.NoError(t, NewWriter(nil, false).WriteValidationReport(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"column", "message", "value"}, records[0])
	assert.Equal(t, "age", records[1][0])
	assert.Equal(t, "150", records[1][2])
}

func TestWriteRunReport(t *testing.T) {
	ds := domain.NewDataset()
	require.NoError(t, ds.AddNumericColumn("age", []float64{25, 40}))

	p := pipeline.New(nil)
	_, report, err := p.Run(context.Background(), ds, pipeline.RunOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, NewWriter(nil, false).WriteRunReport(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5, "header plus four stages")
	assert.Equal(t, report.ID, records[1][0])
	assert.Equal(t, "clean", records[1][1])
	assert.Equal(t, string(pipeline.StageStatusCompleted), records[1][2])
}

func TestWriteExcel_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.xlsx")

	require.NoError(t, NewWriter(nil, false).WriteExcel(testDataset(t), path, "Processed"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Processed")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"age", "platform"}, rows[0])
	assert.Equal(t, "25", rows[1][0])
	assert.Equal(t, "twitch", rows[1][1])
}
