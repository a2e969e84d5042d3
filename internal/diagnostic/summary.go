package diagnostic

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	dg "weightcheck/domain/diagnostic"
)

// Summarize aggregates a diagnostic table and its weight vector into the
// standard weighting-quality measures: mean/max absolute error before and
// after weighting, the error reduction ratio, the Kish effective sample
// size, and a per-variable chi-square goodness of fit against the target.
func Summarize(table *dg.Table, weights []float64) *dg.Summary {
	summary := &dg.Summary{SampleSize: len(weights)}

	summary.EffectiveSampleSize, summary.DesignEffect = kish(weights)

	var allOriginal, allWeighted []float64
	byVariable := make(map[string][]dg.Row)
	var order []string
	for _, row := range table.Rows {
		allOriginal = append(allOriginal, row.ErrorOriginal)
		allWeighted = append(allWeighted, row.ErrorWeighted)
		if _, seen := byVariable[row.Variable]; !seen {
			order = append(order, row.Variable)
		}
		byVariable[row.Variable] = append(byVariable[row.Variable], row)
	}

	summary.MeanErrorOriginal, _ = stats.Mean(allOriginal)
	summary.MeanErrorWeighted, _ = stats.Mean(allWeighted)
	summary.MaxErrorOriginal, _ = stats.Max(allOriginal)
	summary.MaxErrorWeighted, _ = stats.Max(allWeighted)
	if summary.MeanErrorOriginal > 0 {
		summary.ErrorReduction = 1 - summary.MeanErrorWeighted/summary.MeanErrorOriginal
	}

	for _, variable := range order {
		rows := byVariable[variable]
		vs := dg.VariableSummary{Variable: variable}

		var original, weighted []float64
		for _, r := range rows {
			original = append(original, r.ErrorOriginal)
			weighted = append(weighted, r.ErrorWeighted)
		}
		vs.MeanErrorOriginal, _ = stats.Mean(original)
		vs.MeanErrorWeighted, _ = stats.Mean(weighted)
		vs.MaxErrorOriginal, _ = stats.Max(original)
		vs.MaxErrorWeighted, _ = stats.Max(weighted)

		vs.ChiSquare, vs.DegreesFreedom = goodnessOfFit(rows, summary.EffectiveSampleSize)
		vs.PValue = chiSquarePValue(vs.ChiSquare, vs.DegreesFreedom)

		summary.Variables = append(summary.Variables, vs)
	}
	return summary
}

// kish computes the Kish effective sample size (sum w)^2 / sum w^2 and the
// design effect n * sum w^2 / (sum w)^2.
func kish(weights []float64) (ess, deff float64) {
	var sum, sumSq float64
	for _, w := range weights {
		sum += w
		sumSq += w * w
	}
	if sumSq == 0 {
		return 0, 0
	}
	ess = sum * sum / sumSq
	deff = float64(len(weights)) * sumSq / (sum * sum)
	return ess, deff
}

// goodnessOfFit computes the chi-square statistic of the weighted
// proportions against the target over one variable's levels. Counts are
// scaled by the effective sample size rather than the raw row count, so
// heavily dispersed weights do not overstate the evidence. Levels with a
// zero target contribute nothing.
func goodnessOfFit(rows []dg.Row, effectiveN float64) (chiSq float64, df int) {
	for _, r := range rows {
		if r.Target <= 0 {
			continue
		}
		expected := r.Target * effectiveN
		observed := r.PropWeighted * effectiveN
		diff := observed - expected
		chiSq += diff * diff / expected
	}
	df = len(rows) - 1
	if df < 1 {
		df = 1
	}
	return chiSq, df
}

// chiSquarePValue computes the upper-tail p-value for a chi-square statistic
func chiSquarePValue(chiSq float64, df int) float64 {
	if df <= 0 {
		return 1.0
	}
	dist := distuv.ChiSquared{K: float64(df)}
	return 1 - dist.CDF(chiSq)
}
