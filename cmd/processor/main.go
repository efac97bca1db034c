// Command processor loads tabular platform exports from an input
// directory, runs each dataset through the cleaning/validation/scaling
// pipeline, and writes the processed data and run reports to an output
// directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"creatorpulse/internal/config"
	"creatorpulse/internal/exporter"
	"creatorpulse/internal/infrastructure"
	"creatorpulse/internal/ingest"
	"creatorpulse/internal/pipeline"
	"creatorpulse/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "input directory for .csv/.xlsx files (overrides config)")
	outDir := flag.String("out", "", "output directory for processed files (overrides config)")
	schemaFile := flag.String("schema", "", "schema YAML file (overrides config)")
	configFile := flag.String("config", "", "config file path (defaults to PULSE_CONFIG or config.yaml)")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *inDir != "" {
		cfg.Paths.InputDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}
	if *schemaFile != "" {
		cfg.Pipeline.SchemaFile = *schemaFile
	}

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("Processing failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Starting creator data processing",
		"input_dir", cfg.Paths.InputDir,
		"output_dir", cfg.Paths.OutputDir,
		"schema_file", cfg.Pipeline.SchemaFile,
	)

	var schema *domain.Schema
	if cfg.Pipeline.SchemaFile != "" {
		var err error
		schema, err = domain.LoadSchema(cfg.Pipeline.SchemaFile)
		if err != nil {
			return fmt.Errorf("load schema: %w", err)
		}
	}

	reader := ingest.NewReader(logger, cfg.Pipeline.MissingTokens)
	datasets, err := reader.LoadDir(ctx, cfg.Paths.InputDir)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	if len(datasets) == 0 {
		logger.Warn("No input files found", "input_dir", cfg.Paths.InputDir)
		return nil
	}

	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	writer := exporter.NewWriter(logger, cfg.Pipeline.ExcelBOM)
	failed := 0
	for _, name := range names {
		if err := processDataset(ctx, name, datasets[name], schema, cfg, logger, writer); err != nil {
			logger.Error("Dataset processing failed", "dataset", name, "error", err)
			failed++
		}
	}

	logger.Info("Processing finished",
		"datasets", len(names),
		"failed", failed,
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d datasets failed", failed, len(names))
	}
	return nil
}

// processDataset runs one dataset through its own pipeline instance, since
// fitted scaling parameters must never leak across datasets
func processDataset(ctx context.Context, name string, ds *domain.Dataset, schema *domain.Schema,
	cfg *config.Config, logger *slog.Logger, writer *exporter.Writer) error {

	p := pipeline.New(logger.With("dataset", name))
	result, report, err := p.Run(ctx, ds, pipeline.RunOptions{
		Schema:             schema,
		NormalizeColumns:   cfg.Pipeline.NormalizeColumns,
		StandardizeColumns: cfg.Pipeline.StandardizeColumns,
	})

	if report != nil {
		reportPath := filepath.Join(cfg.Paths.OutputDir, name+"_report.csv")
		if werr := writer.WriteRunReport(report, reportPath); werr != nil {
			logger.Warn("Failed to write run report", "dataset", name, "error", werr)
		}
	}

	if err != nil {
		var failed *pipeline.ValidationFailedError
		if errors.As(err, &failed) {
			violationsPath := filepath.Join(cfg.Paths.OutputDir, name+"_violations.csv")
			if werr := writer.WriteValidationReport(failed.Result, violationsPath); werr != nil {
				logger.Warn("Failed to write violations report", "dataset", name, "error", werr)
			}
		}
		return err
	}

	if err := writer.WriteCSV(result, filepath.Join(cfg.Paths.OutputDir, name+"_clean.csv")); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}
	if err := writer.WriteExcel(result, filepath.Join(cfg.Paths.OutputDir, name+"_clean.xlsx"), "Processed"); err != nil {
		return fmt.Errorf("write Excel: %w", err)
	}
	return nil
}
