package testkit

import (
	"testing"

	"weightcheck/domain/survey"
	"weightcheck/internal/diagnostic"
)

func regionTarget() *survey.TargetSpec {
	return survey.NewTargetFromMap(map[string]map[string]float64{
		"region": {"north": 0.5, "south": 0.5},
	})
}

func TestSurveyGenerator_Deterministic(t *testing.T) {
	config := DefaultSurveyConfig()
	config.RespondentCount = 50

	first, _, err := NewSurveyGenerator(config).Generate(regionTarget())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, _, err := NewSurveyGenerator(config).Generate(regionTarget())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	firstCol, _ := first.Column("region")
	secondCol, _ := second.Column("region")
	for i := range firstCol {
		if firstCol[i] != secondCol[i] {
			t.Fatalf("Same seed produced different samples at row %d", i)
		}
	}
}

func TestSurveyGenerator_WeightsCorrectSkew(t *testing.T) {
	config := DefaultSurveyConfig()
	config.RespondentCount = 2000
	config.SkewStrength = 0.3

	data, assoc, err := NewSurveyGenerator(config).Generate(regionTarget())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if assoc.WeightColumn != "weights" {
		t.Fatalf("Expected weights column recorded, got %q", assoc.WeightColumn)
	}

	table, err := diagnostic.NewComputer().Compute(data, diagnostic.Options{Association: assoc})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	for _, row := range table.Rows {
		// The sample is skewed toward the first level...
		if row.Level == "north" && row.PropOriginal <= 0.55 {
			t.Errorf("Expected skewed sample, north share %f", row.PropOriginal)
		}
		// ...and the generated weights pull the shares back to the target.
		if row.ErrorWeighted >= row.ErrorOriginal {
			t.Errorf("Level %s: weighting did not reduce error (%f -> %f)",
				row.Level, row.ErrorOriginal, row.ErrorWeighted)
		}
		if row.ErrorWeighted > 0.05 {
			t.Errorf("Level %s: weighted error too large: %f", row.Level, row.ErrorWeighted)
		}
	}
}

func TestSurveyGenerator_NoWeightColumn(t *testing.T) {
	config := DefaultSurveyConfig()
	config.RespondentCount = 20
	config.WeightColumn = ""

	data, _, err := NewSurveyGenerator(config).Generate(regionTarget())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if data.HasColumn("weights") {
		t.Error("Expected no weight column")
	}
}

func TestSurveyGenerator_EmptyTarget(t *testing.T) {
	if _, _, err := NewSurveyGenerator(DefaultSurveyConfig()).Generate(nil); err == nil {
		t.Error("Expected error for nil target")
	}
}
