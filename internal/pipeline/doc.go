// Package pipeline implements the tabular cleaning, validation and scaling
// pipeline used to prepare aggregated creator performance data for trend
// analysis and reporting.
//
// # Architecture
//
// The package is organized around a single Pipeline orchestrator with one
// file per stage:
//
//   - clean.go: duplicate removal, missing-value imputation, negative-row filtering
//   - validate.go: declarative schema validation with full violation reporting
//   - scale.go: min-max normalization and z-score standardization with
//     retained per-column scaling state
//   - pipeline.go: the fixed clean → validate → normalize → standardize run order
//
// # Usage
//
// Running the full pipeline:
//
//	p := pipeline.New(slog.Default())
//	result, report, err := p.Run(ctx, ds, pipeline.RunOptions{
//	    Schema:           schema,
//	    NormalizeColumns: []string{"age", "income"},
//	})
//
// Individual stages can also be used directly:
//
//	cleaned := p.Clean(ds)
//	res := p.Validate(cleaned, schema)
//	if !res.Valid() {
//	    for _, msg := range res.Messages() {
//	        log.Println(msg)
//	    }
//	}
//
// # Error Handling
//
// Validation failures surface every accumulated violation at once through
// ValidationFailedError. Scaling calls fail with ColumnNotFoundError or
// TypeMismatchError before touching any data, so a failed stage always
// leaves its input dataset unchanged.
//
// # Concurrency
//
// A Pipeline instance retains the scaling parameters of the dataset it last
// fitted, so instances must not be shared across concurrently processed
// datasets. Use one Pipeline per logical run.
package pipeline
