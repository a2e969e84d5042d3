// Package diagnostic defines the result shapes of weighting diagnostics:
// the per-level comparison table and the aggregate quality summary.
package diagnostic

// Row compares observed proportions against the target for one
// (variable, level) pair, before and after weighting.
type Row struct {
	Variable      string  `json:"variable"`
	Level         string  `json:"level"`
	PropOriginal  float64 `json:"prop_original"`
	PropWeighted  float64 `json:"prop_weighted"`
	Target        float64 `json:"target"`
	ErrorOriginal float64 `json:"error_original"`
	ErrorWeighted float64 `json:"error_weighted"`
}

// Table is the diagnostic result: one row per (variable, level) pair, in
// target-specification order (variables first, then levels within each).
type Table struct {
	Rows []Row `json:"rows"`
}

// Columns returns the column names in presentation order
func (t *Table) Columns() []string {
	return []string{"variable", "level", "prop_original", "prop_weighted", "target", "error_original", "error_weighted"}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// VariableRows returns the rows belonging to one variable, in level order
func (t *Table) VariableRows(variable string) []Row {
	var out []Row
	for _, r := range t.Rows {
		if r.Variable == variable {
			out = append(out, r)
		}
	}
	return out
}

// VariableSummary aggregates weighting quality for one variable
type VariableSummary struct {
	Variable string `json:"variable"`

	// Mean and max absolute error across the variable's levels
	MeanErrorOriginal float64 `json:"mean_error_original"`
	MeanErrorWeighted float64 `json:"mean_error_weighted"`
	MaxErrorOriginal  float64 `json:"max_error_original"`
	MaxErrorWeighted  float64 `json:"max_error_weighted"`

	// Chi-square goodness of fit of weighted counts against the target
	ChiSquare      float64 `json:"chi_square"`
	DegreesFreedom int     `json:"degrees_freedom"`
	PValue         float64 `json:"p_value"`
}

// Summary aggregates weighting quality across the whole diagnostic table
type Summary struct {
	Variables []VariableSummary `json:"variables"`

	MeanErrorOriginal float64 `json:"mean_error_original"`
	MeanErrorWeighted float64 `json:"mean_error_weighted"`
	MaxErrorOriginal  float64 `json:"max_error_original"`
	MaxErrorWeighted  float64 `json:"max_error_weighted"`

	// ErrorReduction is the fraction of mean absolute error removed by
	// weighting; 0 when the unweighted errors were already 0.
	ErrorReduction float64 `json:"error_reduction"`

	// Kish effective sample size and design effect of the weight vector
	SampleSize          int     `json:"sample_size"`
	EffectiveSampleSize float64 `json:"effective_sample_size"`
	DesignEffect        float64 `json:"design_effect"`
}
