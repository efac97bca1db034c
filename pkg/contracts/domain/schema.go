package domain

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// ColumnRule is the declarative constraint set for a single column.
// Min and Max apply to numeric columns only and are optional.
type ColumnRule struct {
	Column string     `yaml:"column" json:"column" validate:"required"`
	Kind   ColumnKind `yaml:"kind" json:"kind" validate:"required,oneof=numeric categorical"`
	Min    *float64   `yaml:"min,omitempty" json:"min,omitempty"`
	Max    *float64   `yaml:"max,omitempty" json:"max,omitempty"`
}

// Schema is an ordered list of column rules. It is declarative only: a
// schema never mutates data, it only reports mismatches. Rule order is
// declaration order and determines the order of reported violations.
type Schema struct {
	Rules []ColumnRule `yaml:"rules" json:"rules" validate:"required,min=1,dive"`
}

// NewSchema creates a schema from the given rules
func NewSchema(rules ...ColumnRule) *Schema {
	return &Schema{Rules: rules}
}

// Validate checks the schema definition itself for structural problems:
// missing column names, unknown kinds, min greater than max, duplicates.
func (s *Schema) Validate() error {
	v := validator.New()
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("schema definition invalid: %w", err)
	}
	seen := make(map[string]bool)
	for _, rule := range s.Rules {
		if seen[rule.Column] {
			return fmt.Errorf("schema defines column %q more than once", rule.Column)
		}
		seen[rule.Column] = true
		if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
			return fmt.Errorf("schema column %q has min %.4f greater than max %.4f", rule.Column, *rule.Min, *rule.Max)
		}
		if rule.Kind == KindCategorical && (rule.Min != nil || rule.Max != nil) {
			return fmt.Errorf("schema column %q is categorical but declares numeric bounds", rule.Column)
		}
	}
	return nil
}

// LoadSchema reads a schema definition from a YAML file and validates it
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Violation represents a single schema violation found during validation
type Violation struct {
	Column  string      `json:"column"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (v Violation) Error() string {
	return v.Message
}

// ValidationResult carries the outcome of validating a dataset against a
// schema: a pass/fail flag derived from the ordered violation list.
// A fresh result is constructed per validation call and never persisted.
type ValidationResult struct {
	Violations []Violation `json:"violations"`
}

// Valid reports whether the dataset satisfied every schema rule
func (r *ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// Add appends a violation to the result
func (r *ValidationResult) Add(column, message string, value interface{}) {
	r.Violations = append(r.Violations, Violation{Column: column, Message: message, Value: value})
}

// Messages returns the ordered human-readable violation descriptions
func (r *ValidationResult) Messages() []string {
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.Message
	}
	return msgs
}
