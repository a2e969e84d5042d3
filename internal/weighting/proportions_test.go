package weighting

import (
	"math"
	"testing"

	"weightcheck/domain/core"
	"weightcheck/domain/survey"
)

func TestProportions_Unweighted(t *testing.T) {
	values := []string{"a", "a", "b", "c"}
	props, err := Proportions(values, Uniform(len(values)))
	if err != nil {
		t.Fatalf("Proportions failed: %v", err)
	}

	expected := map[string]float64{"a": 0.5, "b": 0.25, "c": 0.25}
	for level, want := range expected {
		if math.Abs(props[level]-want) > 1e-9 {
			t.Errorf("Level %s: expected %f, got %f", level, want, props[level])
		}
	}
}

func TestProportions_Weighted(t *testing.T) {
	values := []string{"a", "b"}
	props, err := Proportions(values, []float64{1, 3})
	if err != nil {
		t.Fatalf("Proportions failed: %v", err)
	}
	if math.Abs(props["a"]-0.25) > 1e-9 || math.Abs(props["b"]-0.75) > 1e-9 {
		t.Errorf("Expected 0.25/0.75, got %v", props)
	}
}

func TestProportions_Misaligned(t *testing.T) {
	if _, err := Proportions([]string{"a", "b"}, []float64{1}); err == nil {
		t.Error("Expected error for misaligned inputs")
	}
}

func TestProportions_NegativeWeight(t *testing.T) {
	if _, err := Proportions([]string{"a"}, []float64{-1}); err == nil {
		t.Error("Expected error for negative weight")
	}
}

func TestProportions_ZeroTotalWeight(t *testing.T) {
	if _, err := Proportions([]string{"a", "b"}, []float64{0, 0}); err == nil {
		t.Error("Expected error for zero total weight")
	}
}

func TestReindex_AbsentLevelIsZero(t *testing.T) {
	props := map[string]float64{"a": 0.6, "b": 0.4}
	out := Reindex(props, []string{"b", "missing", "a"})

	if len(out) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(out))
	}
	if out[0] != 0.4 || out[1] != 0 || out[2] != 0.6 {
		t.Errorf("Expected [0.4 0 0.6], got %v", out)
	}
}

func TestCheckTarget_Valid(t *testing.T) {
	target := survey.NewTargetFromMap(map[string]map[string]float64{
		"region": {"north": 0.333333, "south": 0.666667},
	})
	if err := CheckTarget(target); err != nil {
		t.Errorf("Expected rounding within tolerance to pass, got %v", err)
	}
}

func TestCheckTarget_SumNotOne(t *testing.T) {
	target := survey.NewTargetFromMap(map[string]map[string]float64{
		"region": {"north": 0.5, "south": 0.6},
	})
	err := CheckTarget(target)
	if !core.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestCheckTarget_NegativeProportion(t *testing.T) {
	target := survey.NewTargetFromMap(map[string]map[string]float64{
		"region": {"north": -0.5, "south": 1.5},
	})
	err := CheckTarget(target)
	if !core.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestCheckTarget_NaNProportion(t *testing.T) {
	target := survey.NewTargetFromMap(map[string]map[string]float64{
		"region": {"north": math.NaN(), "south": 0.5},
	})
	err := CheckTarget(target)
	if !core.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestCheckTarget_Empty(t *testing.T) {
	if err := CheckTarget(&survey.TargetSpec{}); err == nil {
		t.Error("Expected error for empty target")
	}
}

func TestCheckData_MissingColumn(t *testing.T) {
	data := survey.NewDataset("d")
	if err := data.AddColumn("region", []string{"north"}); err != nil {
		t.Fatal(err)
	}
	target := survey.NewTargetFromMap(map[string]map[string]float64{
		"age": {"young": 0.5, "old": 0.5},
	})

	err := CheckData(data, target, []float64{1})
	if !core.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestCheckData_WeightLengthMismatch(t *testing.T) {
	data := survey.NewDataset("d")
	if err := data.AddColumn("region", []string{"north", "south"}); err != nil {
		t.Fatal(err)
	}
	target := survey.NewTargetFromMap(map[string]map[string]float64{
		"region": {"north": 0.5, "south": 0.5},
	})

	err := CheckData(data, target, []float64{1})
	if !core.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestCheckData_EmptyDataset(t *testing.T) {
	target := survey.NewTargetFromMap(map[string]map[string]float64{
		"region": {"north": 1.0},
	})
	err := CheckData(survey.NewDataset("empty"), target, nil)
	if !core.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}
