// Package testkit generates synthetic survey samples with controllable
// composition bias, for exercising the diagnostic pipeline in tests.
package testkit

import (
	"fmt"
	"math/rand"
	"strconv"

	"weightcheck/domain/survey"
)

// SurveyGeneratorConfig configures the synthetic sample generator
type SurveyGeneratorConfig struct {
	RespondentCount int     `json:"respondent_count"`
	Seed            int64   `json:"seed"`
	WeightColumn    string  `json:"weight_column"` // empty means no weight column
	SkewStrength    float64 `json:"skew_strength"` // 0 = sample matches target, 1 = maximal skew
}

// DefaultSurveyConfig returns sensible defaults for sample generation
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		RespondentCount: 500,
		Seed:            42,
		WeightColumn:    "weights",
		SkewStrength:    0.3,
	}
}

// SurveyGenerator generates synthetic respondent data over categorical
// variables, drawn from a skewed version of a target specification
type SurveyGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyGenerator creates a new survey sample generator
func NewSurveyGenerator(config SurveyGeneratorConfig) *SurveyGenerator {
	return &SurveyGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate draws a respondent sample whose composition is skewed away from
// the given target, and attaches weights that correct the skew back toward
// it. The returned association mirrors what a harvesting step would record.
func (g *SurveyGenerator) Generate(target *survey.TargetSpec) (*survey.Dataset, *survey.Association, error) {
	if target == nil || len(target.Variables) == 0 {
		return nil, nil, fmt.Errorf("generator needs a non-empty target")
	}

	data := survey.NewDataset(fmt.Sprintf("synthetic_%d", g.config.Seed))

	// Sampling distributions: target proportions pushed toward the first
	// level by SkewStrength, renormalized.
	sampled := make(map[string][]float64, len(target.Variables))
	for _, v := range target.Variables {
		sampled[v.Variable] = g.skewedProportions(v)
	}

	weights := make([]float64, g.config.RespondentCount)
	for i := range weights {
		weights[i] = 1
	}

	for _, v := range target.Variables {
		column := make([]string, g.config.RespondentCount)
		probs := sampled[v.Variable]
		for row := 0; row < g.config.RespondentCount; row++ {
			idx := g.draw(probs)
			column[row] = v.Levels[idx].Level
			// Correcting weight: target share over sampled share.
			if probs[idx] > 0 {
				weights[row] *= v.Levels[idx].Proportion / probs[idx]
			}
		}
		if err := data.AddColumn(v.Variable, column); err != nil {
			return nil, nil, err
		}
	}

	if g.config.WeightColumn != "" {
		cells := make([]string, len(weights))
		for i, w := range weights {
			cells[i] = strconv.FormatFloat(w, 'f', -1, 64)
		}
		if err := data.AddColumn(g.config.WeightColumn, cells); err != nil {
			return nil, nil, err
		}
	}

	assoc := survey.NewAssociation(data.Name+"_target", target, g.config.WeightColumn)
	return data, assoc, nil
}

// skewedProportions biases a variable's target distribution toward its
// first level by SkewStrength
func (g *SurveyGenerator) skewedProportions(v survey.VariableTarget) []float64 {
	probs := make([]float64, len(v.Levels))
	total := 0.0
	for i, l := range v.Levels {
		p := l.Proportion
		if i == 0 {
			p += g.config.SkewStrength
		}
		probs[i] = p
		total += p
	}
	for i := range probs {
		probs[i] /= total
	}
	return probs
}

// draw samples an index from a probability vector
func (g *SurveyGenerator) draw(probs []float64) int {
	r := g.rng.Float64()
	cum := 0.0
	for i, p := range probs {
		cum += p
		if r < cum {
			return i
		}
	}
	return len(probs) - 1
}
