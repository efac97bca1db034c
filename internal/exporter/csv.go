// Package exporter writes processed datasets and pipeline reports to CSV
// and Excel files for downstream reporting.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"creatorpulse/internal/pipeline"
	"creatorpulse/pkg/contracts/domain"
)

// Writer exports datasets and reports
type Writer struct {
	logger *slog.Logger
	// excelBOM prepends a UTF-8 BOM so Excel opens CSV exports correctly
	excelBOM bool
}

// NewWriter creates a writer with the given logger
func NewWriter(logger *slog.Logger, excelBOM bool) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger, excelBOM: excelBOM}
}

// WriteCSV writes the dataset to a CSV file, header row first
func (w *Writer) WriteCSV(ds *domain.Dataset, path string) error {
	rows := make([][]string, 0, ds.Rows())
	for i := 0; i < ds.Rows(); i++ {
		row := make([]string, 0, len(ds.Columns()))
		for _, col := range ds.Columns() {
			row = append(row, col.CellString(i))
		}
		rows = append(rows, row)
	}
	return w.writeCSVFile(path, ds.ColumnNames(), rows)
}

// WriteValidationReport writes the violations of a validation result to CSV
func (w *Writer) WriteValidationReport(result *domain.ValidationResult, path string) error {
	rows := make([][]string, 0, len(result.Violations))
	for _, v := range result.Violations {
		value := ""
		if v.Value != nil {
			value = fmt.Sprintf("%v", v.Value)
		}
		rows = append(rows, []string{v.Column, v.Message, value})
	}
	return w.writeCSVFile(path, []string{"column", "message", "value"}, rows)
}

// WriteRunReport writes the per-stage outcome of a pipeline run to CSV
func (w *Writer) WriteRunReport(report *pipeline.RunReport, path string) error {
	rows := make([][]string, 0, len(report.Stages))
	for _, stage := range report.Stages {
		errMsg := ""
		if stage.Err != nil {
			errMsg = stage.Err.Error()
		}
		rows = append(rows, []string{
			report.ID,
			stage.ID,
			string(stage.Status),
			stage.Duration().String(),
			stage.Message,
			errMsg,
		})
	}
	return w.writeCSVFile(path, []string{"run_id", "stage", "status", "duration", "message", "error"}, rows)
}

// writeCSVFile writes headers and rows to path, creating the directory
func (w *Writer) writeCSVFile(path string, headers []string, rows [][]string) error {
	w.logger.Info("writing CSV file",
		"path", path,
		"rows", len(rows),
	)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if w.excelBOM {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
