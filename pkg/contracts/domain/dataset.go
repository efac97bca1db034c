package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnKind represents the type of values a column holds
type ColumnKind string

const (
	// KindNumeric marks a column of float64 values; math.NaN() marks a missing cell
	KindNumeric ColumnKind = "numeric"
	// KindCategorical marks a column of string labels; "" marks a missing cell
	KindCategorical ColumnKind = "categorical"
)

// String returns the string representation of the column kind
func (k ColumnKind) String() string {
	return string(k)
}

// IsValid reports whether the kind is one of the supported column kinds
func (k ColumnKind) IsValid() bool {
	return k == KindNumeric || k == KindCategorical
}

// Column is a single named column of a Dataset. Exactly one of Floats or
// Labels is populated, selected by Kind. Missing cells are represented as
// math.NaN() for numeric columns and the empty string for categorical ones.
type Column struct {
	Name   string     `json:"name"`
	Kind   ColumnKind `json:"kind"`
	Floats []float64  `json:"floats,omitempty"`
	Labels []string   `json:"labels,omitempty"`
}

// Len returns the number of cells in the column
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Labels)
}

// IsMissing reports whether the cell at index i is missing
func (c *Column) IsMissing(i int) bool {
	if c.Kind == KindNumeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Labels[i] == ""
}

// CellString renders the cell at index i for reports and exports
func (c *Column) CellString(i int) string {
	if c.Kind == KindNumeric {
		if math.IsNaN(c.Floats[i]) {
			return ""
		}
		return strconv.FormatFloat(c.Floats[i], 'f', -1, 64)
	}
	return c.Labels[i]
}

// clone returns a deep copy of the column
func (c *Column) clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		out.Floats = make([]float64, len(c.Floats))
		copy(out.Floats, c.Floats)
	}
	if c.Labels != nil {
		out.Labels = make([]string, len(c.Labels))
		copy(out.Labels, c.Labels)
	}
	return out
}

// Dataset is an in-memory tabular structure: named, typed columns with
// positionally aligned rows. Column order is the declaration order and is
// significant for row-filtering operations that compound column by column.
type Dataset struct {
	columns []*Column
	index   map[string]*Column
}

// NewDataset creates an empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		index: make(map[string]*Column),
	}
}

// AddNumericColumn appends a numeric column to the dataset.
// All columns must have the same length as the first column added.
func (d *Dataset) AddNumericColumn(name string, values []float64) error {
	col := &Column{Name: name, Kind: KindNumeric, Floats: values}
	return d.addColumn(col)
}

// AddCategoricalColumn appends a categorical column to the dataset
func (d *Dataset) AddCategoricalColumn(name string, values []string) error {
	col := &Column{Name: name, Kind: KindCategorical, Labels: values}
	return d.addColumn(col)
}

func (d *Dataset) addColumn(col *Column) error {
	if col.Name == "" {
		return fmt.Errorf("column name must not be empty")
	}
	if _, exists := d.index[col.Name]; exists {
		return fmt.Errorf("duplicate column name: %s", col.Name)
	}
	if len(d.columns) > 0 && col.Len() != d.Rows() {
		return fmt.Errorf("column %s has %d rows, dataset has %d", col.Name, col.Len(), d.Rows())
	}
	d.columns = append(d.columns, col)
	d.index[col.Name] = col
	return nil
}

// Column returns the named column, or nil if absent
func (d *Dataset) Column(name string) *Column {
	return d.index[name]
}

// HasColumn reports whether the dataset contains the named column
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Columns returns the columns in declaration order
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// ColumnNames returns the column names in declaration order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Rows returns the number of rows in the dataset
func (d *Dataset) Rows() int {
	if len(d.columns) == 0 {
		return 0
	}
	return d.columns[0].Len()
}

// RowKey renders row i as a single comparable string. Two rows are exact
// duplicates iff their keys are equal. Numeric cells are rendered with
// full float64 precision so distinct values never collide.
func (d *Dataset) RowKey(i int) string {
	var sb strings.Builder
	for idx, col := range d.columns {
		if idx > 0 {
			sb.WriteByte(0x1f)
		}
		if col.Kind == KindNumeric {
			v := col.Floats[i]
			if math.IsNaN(v) {
				sb.WriteString("<nan>")
			} else {
				sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			}
		} else {
			sb.WriteString(col.Labels[i])
		}
	}
	return sb.String()
}

// FilterRows keeps only the rows where keep[i] is true, preserving order.
// All columns are filtered together so the dataset stays row-aligned.
func (d *Dataset) FilterRows(keep []bool) error {
	if len(keep) != d.Rows() {
		return fmt.Errorf("keep mask has %d entries, dataset has %d rows", len(keep), d.Rows())
	}
	for _, col := range d.columns {
		if col.Kind == KindNumeric {
			filtered := col.Floats[:0:0]
			for i, v := range col.Floats {
				if keep[i] {
					filtered = append(filtered, v)
				}
			}
			col.Floats = filtered
		} else {
			filtered := col.Labels[:0:0]
			for i, v := range col.Labels {
				if keep[i] {
					filtered = append(filtered, v)
				}
			}
			col.Labels = filtered
		}
	}
	return nil
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	out := NewDataset()
	for _, col := range d.columns {
		c := col.clone()
		out.columns = append(out.columns, c)
		out.index[c.Name] = c
	}
	return out
}

// Equal reports whether two datasets have identical columns, kinds and
// cell values. NaN cells compare equal to NaN cells.
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil || len(d.columns) != len(other.columns) {
		return false
	}
	for i, col := range d.columns {
		oc := other.columns[i]
		if col.Name != oc.Name || col.Kind != oc.Kind || col.Len() != oc.Len() {
			return false
		}
		if col.Kind == KindNumeric {
			for j, v := range col.Floats {
				ov := oc.Floats[j]
				if math.IsNaN(v) && math.IsNaN(ov) {
					continue
				}
				if v != ov {
					return false
				}
			}
		} else {
			for j, v := range col.Labels {
				if v != oc.Labels[j] {
					return false
				}
			}
		}
	}
	return true
}
