package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"creatorpulse/pkg/contracts/domain"
)

// Pipeline owns the full clean → validate → normalize → standardize
// sequence over an in-memory dataset. The only state retained between
// calls is the per-column scaling state fitted by the most recent
// normalize/standardize, so one instance serves one logical dataset.
type Pipeline struct {
	logger  *slog.Logger
	scalers map[string]ColumnScaler
}

// New creates a pipeline with the given logger
func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:  logger,
		scalers: make(map[string]ColumnScaler),
	}
}

// RunOptions selects the optional stages of a pipeline run
type RunOptions struct {
	Schema             *domain.Schema
	NormalizeColumns   []string
	StandardizeColumns []string
}

// StageStatus represents the lifecycle state of a pipeline stage
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// StageState records the outcome of a single stage within a run
type StageState struct {
	ID        string      `json:"id"`
	Status    StageStatus `json:"status"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Message   string      `json:"message,omitempty"`
	Err       error       `json:"error,omitempty"`
}

func newStageState(id string) *StageState {
	return &StageState{ID: id, Status: StageStatusPending}
}

func (s *StageState) start() {
	now := time.Now()
	s.StartTime = &now
	s.Status = StageStatusActive
}

func (s *StageState) complete(message string) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusCompleted
	s.Message = message
}

func (s *StageState) fail(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusFailed
	s.Err = err
}

func (s *StageState) skip(reason string) {
	s.Status = StageStatusSkipped
	s.Message = reason
}

// Duration returns how long the stage ran
func (s *StageState) Duration() time.Duration {
	if s.StartTime == nil || s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(*s.StartTime)
}

// RunReport describes a completed (or aborted) pipeline run
type RunReport struct {
	ID         string                   `json:"id"`
	StartedAt  time.Time                `json:"started_at"`
	Duration   time.Duration            `json:"duration"`
	Stages     []*StageState            `json:"stages"`
	Clean      CleanStats               `json:"clean"`
	Validation *domain.ValidationResult `json:"validation,omitempty"`
}

// Stage returns the named stage state, or nil if the run never reached it
func (r *RunReport) Stage(id string) *StageState {
	for _, s := range r.Stages {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Stage identifiers in fixed run order
const (
	StageClean       = "clean"
	StageValidate    = "validate"
	StageNormalize   = "normalize"
	StageStandardize = "standardize"
)

// Run executes the pipeline with its fixed, non-configurable stage order:
// clean, then validate when a schema is given, then normalize, then
// standardize. A validation failure aborts the run before any scaling and
// surfaces every violation at once through ValidationFailedError. When the
// normalize and standardize column lists overlap, standardize operates on
// the already-normalized values.
//
// The input dataset is never modified; the returned dataset is a new value.
// The report is returned for failed runs too.
func (p *Pipeline) Run(ctx context.Context, ds *domain.Dataset, opts RunOptions) (*domain.Dataset, *RunReport, error) {
	report := &RunReport{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Stages: []*StageState{
			newStageState(StageClean),
			newStageState(StageValidate),
			newStageState(StageNormalize),
			newStageState(StageStandardize),
		},
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	p.logger.InfoContext(ctx, "starting pipeline run",
		"run_id", report.ID,
		"rows", ds.Rows(),
		"columns", len(ds.Columns()),
		"has_schema", opts.Schema != nil,
		"normalize_columns", opts.NormalizeColumns,
		"standardize_columns", opts.StandardizeColumns,
	)

	// clean
	stage := report.Stage(StageClean)
	if err := checkContext(ctx); err != nil {
		stage.fail(err)
		return nil, report, err
	}
	stage.start()
	cleaned, stats := p.CleanWithStats(ds)
	report.Clean = stats
	stage.complete(fmt.Sprintf("%d rows in, %d rows out", stats.InputRows, stats.OutputRows))
	p.logger.InfoContext(ctx, "clean stage completed",
		"run_id", report.ID,
		"duplicates_removed", stats.DuplicateRowsRemoved,
		"numeric_imputations", stats.NumericImputations,
		"categorical_imputations", stats.CategoricalImputations,
		"negative_rows_dropped", stats.NegativeRowsDropped,
	)

	// validate
	stage = report.Stage(StageValidate)
	if opts.Schema == nil {
		stage.skip("no schema provided")
	} else {
		if err := checkContext(ctx); err != nil {
			stage.fail(err)
			return nil, report, err
		}
		stage.start()
		result := p.Validate(cleaned, opts.Schema)
		report.Validation = result
		if !result.Valid() {
			err := &ValidationFailedError{Result: result}
			stage.fail(err)
			p.logger.ErrorContext(ctx, "validation stage failed",
				"run_id", report.ID,
				"violations", len(result.Violations),
			)
			return nil, report, err
		}
		stage.complete(fmt.Sprintf("%d rules satisfied", len(opts.Schema.Rules)))
	}

	// normalize
	stage = report.Stage(StageNormalize)
	if len(opts.NormalizeColumns) == 0 {
		stage.skip("no columns requested")
	} else {
		if err := checkContext(ctx); err != nil {
			stage.fail(err)
			return nil, report, err
		}
		stage.start()
		if err := p.Normalize(cleaned, opts.NormalizeColumns); err != nil {
			stage.fail(err)
			return nil, report, fmt.Errorf("normalize stage: %w", err)
		}
		stage.complete(fmt.Sprintf("%d columns scaled to [0,1]", len(opts.NormalizeColumns)))
	}

	// standardize
	stage = report.Stage(StageStandardize)
	if len(opts.StandardizeColumns) == 0 {
		stage.skip("no columns requested")
	} else {
		if err := checkContext(ctx); err != nil {
			stage.fail(err)
			return nil, report, err
		}
		stage.start()
		if err := p.Standardize(cleaned, opts.StandardizeColumns); err != nil {
			stage.fail(err)
			return nil, report, fmt.Errorf("standardize stage: %w", err)
		}
		stage.complete(fmt.Sprintf("%d columns standardized", len(opts.StandardizeColumns)))
	}

	p.logger.InfoContext(ctx, "pipeline run completed",
		"run_id", report.ID,
		"output_rows", cleaned.Rows(),
	)
	return cleaned, report, nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("pipeline run canceled: %w", ctx.Err())
	default:
		return nil
	}
}
