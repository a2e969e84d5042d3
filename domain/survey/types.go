package survey

import (
	"fmt"
	"strconv"
	"time"

	"weightcheck/domain/core"
)

// Dataset is a column-oriented table of survey responses. Rows are
// respondents, columns are named variables. Cells are kept as raw strings
// the way they arrive from file readers; numeric columns (weights) are
// parsed on demand. The diagnostic routines treat a Dataset as read-only.
type Dataset struct {
	ID   core.DatasetID
	Name string

	names   []string
	columns map[string][]string
	rows    int
}

// NewDataset creates an empty dataset with a fresh identifier
func NewDataset(name string) *Dataset {
	return &Dataset{
		ID:      core.DatasetID(core.NewID()),
		Name:    name,
		columns: make(map[string][]string),
	}
}

// AddColumn appends a named column. Every column must have the same length;
// the first column added fixes the row count.
func (d *Dataset) AddColumn(name string, values []string) error {
	if _, exists := d.columns[name]; exists {
		return fmt.Errorf("column %q already exists in dataset %q", name, d.Name)
	}
	if len(d.names) > 0 && len(values) != d.rows {
		return fmt.Errorf("column %q has %d values, dataset %q has %d rows", name, len(values), d.Name, d.rows)
	}
	if len(d.names) == 0 {
		d.rows = len(values)
	}
	d.names = append(d.names, name)
	d.columns[name] = values
	return nil
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return d.rows
}

// Columns returns the column names in insertion order
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// HasColumn reports whether a column exists
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.columns[name]
	return ok
}

// Column returns the raw values of a column
func (d *Dataset) Column(name string) ([]string, bool) {
	col, ok := d.columns[name]
	return col, ok
}

// NumericColumn parses a column as float64 values. Empty cells and
// unparseable cells are errors; weight columns must be fully populated.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	col, ok := d.columns[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found in dataset %q", name, d.Name)
	}
	out := make([]float64, len(col))
	for i, cell := range col {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: cannot parse %q as number", name, i, cell)
		}
		out[i] = v
	}
	return out, nil
}

// Association links a dataset to the target specification that was used to
// harvest its weights. The upstream harvesting step returns one of these
// alongside the weighted dataset; the caller carries it forward and passes
// it explicitly when computing diagnostics. There is no ambient lookup.
type Association struct {
	// TargetName is the name the harvesting step recorded for the target.
	// Reported in errors when the target itself is no longer available.
	TargetName string

	// Target is the specification itself, if still attached.
	Target *TargetSpec

	// WeightColumn is the column the harvesting step wrote weights into.
	WeightColumn string

	CreatedAt time.Time
}

// NewAssociation creates an association carrying the harvested target
func NewAssociation(targetName string, target *TargetSpec, weightColumn string) *Association {
	return &Association{
		TargetName:   targetName,
		Target:       target,
		WeightColumn: weightColumn,
		CreatedAt:    time.Now(),
	}
}
