// Package diagnostic computes weighted-vs-unweighted proportion
// diagnostics for a survey dataset against known population targets.
package diagnostic

import (
	"fmt"
	"math"

	"weightcheck/domain/core"
	dg "weightcheck/domain/diagnostic"
	"weightcheck/domain/survey"
	"weightcheck/internal/weighting"
)

// DefaultWeightColumn is the column name the harvesting step uses for the
// first weight vector attached to a dataset.
const DefaultWeightColumn = "weights"

// defaultNumberedFallbacks is how many numbered weight columns
// (weights1, weights2, ...) the default candidate list covers. Harvesting
// numbers additional weight vectors when the base name is taken.
const defaultNumberedFallbacks = 10

// DefaultWeightCandidates returns the ordered column names the weight
// resolver searches when no explicit weights are given: the literal name
// first, then the numbered fallbacks.
func DefaultWeightCandidates() []string {
	candidates := make([]string, 0, defaultNumberedFallbacks+1)
	candidates = append(candidates, DefaultWeightColumn)
	for i := 1; i <= defaultNumberedFallbacks; i++ {
		candidates = append(candidates, fmt.Sprintf("%s%d", DefaultWeightColumn, i))
	}
	return candidates
}

// Options carries the optional inputs of a diagnostic computation.
type Options struct {
	// Target is the target specification in any accepted shape: *TargetSpec,
	// TargetSpec, []survey.TargetRow (flat table), or
	// map[string]map[string]float64 (nested mapping). Nil falls back to the
	// association.
	Target any

	// Weights is an explicit weight vector, aligned by position with the
	// dataset rows. Nil triggers column resolution.
	Weights []float64

	// Association is the harvest link returned by the upstream weighting
	// step, if the caller kept it. Supplies the target when Target is nil
	// and steers weight-column resolution.
	Association *survey.Association
}

// Computer resolves diagnostic inputs and assembles the comparison table.
type Computer struct {
	weightCandidates []string
}

// NewComputer creates a computer with the default weight-column candidates
func NewComputer() *Computer {
	return &Computer{weightCandidates: DefaultWeightCandidates()}
}

// NewComputerWithCandidates creates a computer searching a custom ordered
// list of weight-column names.
func NewComputerWithCandidates(candidates []string) *Computer {
	if len(candidates) == 0 {
		return NewComputer()
	}
	owned := make([]string, len(candidates))
	copy(owned, candidates)
	return &Computer{weightCandidates: owned}
}

// Compute produces the diagnostic table for a dataset: one row per target
// (variable, level) pair comparing unweighted and weighted observed
// proportions against the target, with absolute errors for both. Row order
// follows the target specification. The computation is pure; the dataset is
// never modified.
func (c *Computer) Compute(data *survey.Dataset, opts Options) (*dg.Table, error) {
	target, err := c.resolveTarget(opts)
	if err != nil {
		return nil, err
	}
	if err := weighting.CheckTarget(target); err != nil {
		return nil, err
	}

	weights, err := c.resolveWeights(data, opts)
	if err != nil {
		return nil, err
	}
	if err := weighting.CheckData(data, target, weights); err != nil {
		return nil, err
	}

	uniform := weighting.Uniform(data.Len())
	table := &dg.Table{Rows: make([]dg.Row, 0, target.LevelCount())}

	for _, v := range target.Variables {
		values, _ := data.Column(v.Variable)

		originalProps, err := weighting.Proportions(values, uniform)
		if err != nil {
			return nil, core.NewDataValidationError(fmt.Sprintf("variable %q: %v", v.Variable, err))
		}
		weightedProps, err := weighting.Proportions(values, weights)
		if err != nil {
			return nil, core.NewDataValidationError(fmt.Sprintf("variable %q: %v", v.Variable, err))
		}

		levels := v.LevelNames()
		original := weighting.Reindex(originalProps, levels)
		weighted := weighting.Reindex(weightedProps, levels)

		for i, level := range v.Levels {
			table.Rows = append(table.Rows, dg.Row{
				Variable:      v.Variable,
				Level:         level.Level,
				PropOriginal:  original[i],
				PropWeighted:  weighted[i],
				Target:        level.Proportion,
				ErrorOriginal: math.Abs(level.Proportion - original[i]),
				ErrorWeighted: math.Abs(level.Proportion - weighted[i]),
			})
		}
	}
	return table, nil
}

// ComputeWithSummary runs Compute and attaches the aggregate quality
// summary for the same resolved weights.
func (c *Computer) ComputeWithSummary(data *survey.Dataset, opts Options) (*dg.Table, *dg.Summary, error) {
	table, err := c.Compute(data, opts)
	if err != nil {
		return nil, nil, err
	}
	weights, err := c.resolveWeights(data, opts)
	if err != nil {
		return nil, nil, err
	}
	return table, Summarize(table, weights), nil
}

// resolveTarget normalizes the target argument, falling back to the
// harvest association when no explicit target was supplied.
func (c *Computer) resolveTarget(opts Options) (*survey.TargetSpec, error) {
	if opts.Target != nil {
		return survey.ResolveTarget(opts.Target)
	}
	if opts.Association != nil {
		if opts.Association.Target != nil {
			return opts.Association.Target, nil
		}
		return nil, core.NewMissingTargetError(opts.Association.TargetName)
	}
	return nil, core.NewMissingTargetError("")
}

// resolveWeights picks the weight vector: an explicit argument wins as-is,
// otherwise the dataset's columns are searched in candidate order. An
// association's recorded weight column is tried before the defaults.
func (c *Computer) resolveWeights(data *survey.Dataset, opts Options) ([]float64, error) {
	if opts.Weights != nil {
		return opts.Weights, nil
	}
	if data == nil {
		return nil, core.NewMissingWeightsError(c.weightCandidates)
	}

	candidates := c.weightCandidates
	if opts.Association != nil && opts.Association.WeightColumn != "" {
		candidates = append([]string{opts.Association.WeightColumn}, candidates...)
	}

	for _, name := range candidates {
		if !data.HasColumn(name) {
			continue
		}
		weights, err := data.NumericColumn(name)
		if err != nil {
			return nil, core.NewDataValidationError(fmt.Sprintf("weight column %q: %v", name, err))
		}
		return weights, nil
	}
	return nil, core.NewMissingWeightsError(candidates)
}
