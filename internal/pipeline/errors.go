package pipeline

import (
	"fmt"
	"strings"

	"creatorpulse/pkg/contracts/domain"
)

// ValidationFailedError aborts a pipeline run when the cleaned dataset does
// not satisfy the supplied schema. It carries the complete ordered list of
// violations so callers see every problem at once rather than one at a time.
type ValidationFailedError struct {
	Result *domain.ValidationResult
}

// Error implements the error interface
func (e *ValidationFailedError) Error() string {
	msgs := e.Result.Messages()
	return fmt.Sprintf("dataset validation failed with %d violation(s): %s",
		len(msgs), strings.Join(msgs, "; "))
}

// Violations returns the ordered violation list
func (e *ValidationFailedError) Violations() []domain.Violation {
	return e.Result.Violations
}

// ColumnNotFoundError reports a scaling request against a column that does
// not exist in the dataset
type ColumnNotFoundError struct {
	Op     string
	Column string
}

// Error implements the error interface
func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s: column %q not found in dataset", e.Op, e.Column)
}

// TypeMismatchError reports a scaling request against a non-numeric column
type TypeMismatchError struct {
	Op     string
	Column string
	Kind   domain.ColumnKind
}

// Error implements the error interface
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: column %q has kind %s, numeric required", e.Op, e.Column, e.Kind)
}

// ScalerNotFittedError reports an inverse-transform request for a column
// the pipeline never fitted a scaler for
type ScalerNotFittedError struct {
	Column string
}

// Error implements the error interface
func (e *ScalerNotFittedError) Error() string {
	return fmt.Sprintf("inverse transform: no fitted scaler for column %q", e.Column)
}
