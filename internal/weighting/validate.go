package weighting

import (
	"fmt"
	"math"

	"weightcheck/domain/core"
	"weightcheck/domain/survey"
)

// proportionSumTolerance bounds the drift allowed when a variable's level
// proportions are checked against 1. Hand-entered targets routinely carry
// rounding like 0.333/0.333/0.334.
const proportionSumTolerance = 1e-6

// CheckTarget validates that a target specification is a proper probability
// distribution per variable: no empty variables, no negative or NaN
// proportions, levels summing to 1.
func CheckTarget(target *survey.TargetSpec) error {
	if target == nil || len(target.Variables) == 0 {
		return core.NewInvalidTargetFormatError("an empty target specification")
	}
	for _, v := range target.Variables {
		if len(v.Levels) == 0 {
			return core.NewInvalidTargetValuesError(v.Variable, "no levels defined")
		}
		sum := 0.0
		for _, l := range v.Levels {
			if math.IsNaN(l.Proportion) {
				return core.NewInvalidTargetValuesError(v.Variable, fmt.Sprintf("level %q has a missing proportion", l.Level))
			}
			if l.Proportion < 0 {
				return core.NewInvalidTargetValuesError(v.Variable, fmt.Sprintf("level %q has negative proportion %v", l.Level, l.Proportion))
			}
			sum += l.Proportion
		}
		if math.Abs(sum-1) > proportionSumTolerance {
			return core.NewInvalidTargetValuesError(v.Variable, fmt.Sprintf("level proportions sum to %v, expected 1", sum))
		}
	}
	return nil
}

// CheckData validates the dataset and resolved weights against the target:
// every target variable must exist as a column, and the weight vector must
// align with the rows and be non-negative.
func CheckData(data *survey.Dataset, target *survey.TargetSpec, weights []float64) error {
	if data == nil || data.Len() == 0 {
		return core.NewDataValidationError("dataset is empty")
	}
	for _, v := range target.Variables {
		if !data.HasColumn(v.Variable) {
			return core.NewDataValidationError(fmt.Sprintf("target variable %q is not a column of dataset %q", v.Variable, data.Name))
		}
	}
	if len(weights) != data.Len() {
		return core.NewDataValidationError(fmt.Sprintf("weight vector has %d entries, dataset %q has %d rows", len(weights), data.Name, data.Len()))
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return core.NewDataValidationError(fmt.Sprintf("weight at row %d is %v, weights must be non-negative", i, w))
		}
	}
	return nil
}
