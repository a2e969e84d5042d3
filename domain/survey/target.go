package survey

import (
	"fmt"
	"sort"

	"weightcheck/domain/core"
)

// LevelTarget is one category level and its desired population proportion
type LevelTarget struct {
	Level      string  `json:"level"`
	Proportion float64 `json:"proportion"`
}

// VariableTarget is the desired distribution over the levels of one
// categorical variable. Level order is preserved and drives row order in
// the diagnostic table.
type VariableTarget struct {
	Variable string        `json:"variable"`
	Levels   []LevelTarget `json:"levels"`
}

// TargetSpec is an ordered set of per-variable target distributions.
// Variable order is preserved and drives the diagnostic table's row order.
type TargetSpec struct {
	Variables []VariableTarget `json:"variables"`
}

// TargetRow is one row of the flat target form: (variable, level, proportion)
type TargetRow struct {
	Variable   string  `json:"variable"`
	Level      string  `json:"level"`
	Proportion float64 `json:"proportion"`
}

// LevelCount returns the total number of (variable, level) pairs
func (t *TargetSpec) LevelCount() int {
	n := 0
	for _, v := range t.Variables {
		n += len(v.Levels)
	}
	return n
}

// VariableNames returns the variable names in specification order
func (t *TargetSpec) VariableNames() []string {
	out := make([]string, len(t.Variables))
	for i, v := range t.Variables {
		out[i] = v.Variable
	}
	return out
}

// LevelNames returns the ordered level names for one variable
func (v VariableTarget) LevelNames() []string {
	out := make([]string, len(v.Levels))
	for i, l := range v.Levels {
		out[i] = l.Level
	}
	return out
}

// NewTargetFromMap builds a TargetSpec from the nested mapping form.
// Go maps carry no order, so variables and levels are ordered
// lexicographically to keep the resulting diagnostic table deterministic.
func NewTargetFromMap(m map[string]map[string]float64) *TargetSpec {
	variables := make([]string, 0, len(m))
	for name := range m {
		variables = append(variables, name)
	}
	sort.Strings(variables)

	spec := &TargetSpec{Variables: make([]VariableTarget, 0, len(m))}
	for _, name := range variables {
		levels := make([]string, 0, len(m[name]))
		for level := range m[name] {
			levels = append(levels, level)
		}
		sort.Strings(levels)

		vt := VariableTarget{Variable: name, Levels: make([]LevelTarget, 0, len(levels))}
		for _, level := range levels {
			vt.Levels = append(vt.Levels, LevelTarget{Level: level, Proportion: m[name][level]})
		}
		spec.Variables = append(spec.Variables, vt)
	}
	return spec
}

// NewTargetFromTable pivots the flat (variable, level, proportion) form
// into the nested form. Variable and level order follow first appearance
// in the table.
func NewTargetFromTable(rows []TargetRow) (*TargetSpec, error) {
	spec := &TargetSpec{}
	index := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, row := range rows {
		if row.Variable == "" {
			return nil, core.NewInvalidTargetFormatError("a table row with an empty variable name")
		}
		if row.Level == "" {
			return nil, core.NewInvalidTargetFormatError(fmt.Sprintf("variable %q with an empty level name", row.Variable))
		}
		i, ok := index[row.Variable]
		if !ok {
			i = len(spec.Variables)
			index[row.Variable] = i
			seen[row.Variable] = make(map[string]bool)
			spec.Variables = append(spec.Variables, VariableTarget{Variable: row.Variable})
		}
		if seen[row.Variable][row.Level] {
			return nil, core.NewInvalidTargetFormatError(fmt.Sprintf("duplicate row for %s=%s", row.Variable, row.Level))
		}
		seen[row.Variable][row.Level] = true
		spec.Variables[i].Levels = append(spec.Variables[i].Levels, LevelTarget{Level: row.Level, Proportion: row.Proportion})
	}
	return spec, nil
}

// ResolveTarget normalizes the accepted target argument shapes into a
// TargetSpec. The dispatch happens once, at the API boundary; everything
// downstream only sees the nested form.
func ResolveTarget(arg any) (*TargetSpec, error) {
	switch v := arg.(type) {
	case *TargetSpec:
		return v, nil
	case TargetSpec:
		return &v, nil
	case []TargetRow:
		return NewTargetFromTable(v)
	case map[string]map[string]float64:
		return NewTargetFromMap(v), nil
	default:
		return nil, core.NewInvalidTargetFormatError(fmt.Sprintf("%T", arg))
	}
}
