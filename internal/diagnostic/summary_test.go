package diagnostic

import (
	"math"
	"testing"

	"weightcheck/domain/survey"
)

func TestSummarize_UniformWeights(t *testing.T) {
	data := regionDataset(t, false)
	computer := NewComputer()
	weights := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	table, err := computer.Compute(data, Options{Target: regionTarget(), Weights: weights})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	summary := Summarize(table, weights)

	if summary.SampleSize != 10 {
		t.Errorf("Expected sample size 10, got %d", summary.SampleSize)
	}
	// Uniform weights carry no design effect.
	if math.Abs(summary.EffectiveSampleSize-10) > 1e-9 {
		t.Errorf("Expected effective sample size 10, got %f", summary.EffectiveSampleSize)
	}
	if math.Abs(summary.DesignEffect-1) > 1e-9 {
		t.Errorf("Expected design effect 1, got %f", summary.DesignEffect)
	}
	// Sample already matches target, nothing to reduce.
	if summary.ErrorReduction != 0 {
		t.Errorf("Expected zero error reduction, got %f", summary.ErrorReduction)
	}
	if summary.MeanErrorWeighted != 0 {
		t.Errorf("Expected zero weighted error, got %f", summary.MeanErrorWeighted)
	}
}

func TestSummarize_SkewedWeights(t *testing.T) {
	data := regionDataset(t, true)
	computer := NewComputer()

	table, summary, err := computer.ComputeWithSummary(data, Options{Target: regionTarget()})
	if err != nil {
		t.Fatalf("ComputeWithSummary failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", table.Len())
	}

	// Weights 5x0.5 + 5x1.5: ESS = 100/12.5 = 8, deff = 1.25.
	if math.Abs(summary.EffectiveSampleSize-8) > 1e-9 {
		t.Errorf("Expected effective sample size 8, got %f", summary.EffectiveSampleSize)
	}
	if math.Abs(summary.DesignEffect-1.25) > 1e-9 {
		t.Errorf("Expected design effect 1.25, got %f", summary.DesignEffect)
	}

	// The fixture weights push a balanced sample away from a balanced
	// target, so weighting makes the errors worse here.
	if summary.MeanErrorOriginal != 0 {
		t.Errorf("Expected zero unweighted error, got %f", summary.MeanErrorOriginal)
	}
	if summary.MeanErrorWeighted <= 0 {
		t.Errorf("Expected positive weighted error, got %f", summary.MeanErrorWeighted)
	}

	if len(summary.Variables) != 1 {
		t.Fatalf("Expected 1 variable summary, got %d", len(summary.Variables))
	}
	vs := summary.Variables[0]
	if vs.Variable != "region" {
		t.Errorf("Expected variable region, got %s", vs.Variable)
	}
	if vs.DegreesFreedom != 1 {
		t.Errorf("Expected df 1, got %d", vs.DegreesFreedom)
	}
	if vs.PValue < 0 || vs.PValue > 1 {
		t.Errorf("PValue should be in [0,1], got %f", vs.PValue)
	}
	if vs.ChiSquare <= 0 {
		t.Errorf("Expected positive chi-square for misfit weights, got %f", vs.ChiSquare)
	}
}

func TestSummarize_PerfectFitHasPValueOne(t *testing.T) {
	data := regionDataset(t, false)
	weights := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	table, err := NewComputer().Compute(data, Options{Target: regionTarget(), Weights: weights})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	summary := Summarize(table, weights)
	vs := summary.Variables[0]
	if vs.ChiSquare != 0 {
		t.Errorf("Expected zero chi-square, got %f", vs.ChiSquare)
	}
	if math.Abs(vs.PValue-1) > 1e-9 {
		t.Errorf("Expected p-value 1, got %f", vs.PValue)
	}
}

func TestSummarize_ErrorReduction(t *testing.T) {
	// Skewed sample, corrected by weights: unweighted error positive,
	// weighted error zero, reduction 1.
	data := survey.NewDataset("skewed")
	if err := data.AddColumn("region", []string{"north", "north", "north", "south"}); err != nil {
		t.Fatal(err)
	}
	// north 3 rows x 1/3, south 1 row x 3: weighted shares 0.5/0.5.
	weights := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3, 3}

	table, err := NewComputer().Compute(data, Options{Target: regionTarget(), Weights: weights})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	summary := Summarize(table, weights)
	if summary.MeanErrorOriginal <= 0 {
		t.Errorf("Expected positive unweighted error, got %f", summary.MeanErrorOriginal)
	}
	if summary.MeanErrorWeighted > 1e-9 {
		t.Errorf("Expected near-zero weighted error, got %f", summary.MeanErrorWeighted)
	}
	if math.Abs(summary.ErrorReduction-1) > 1e-6 {
		t.Errorf("Expected error reduction 1, got %f", summary.ErrorReduction)
	}
}
