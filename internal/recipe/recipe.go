// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package recipe

import (
	"fmt"
	"strings"

	"github.com/tomtom215/churnlab/internal/dataset"
)

// Step is a single preprocessing transformation with separate learning and
// application phases. Fit may only read statistics from the table it is
// given; Bake mutates the table in place using fitted state.
type Step interface {
	Name() string
	Fit(t *dataset.Table) error
	Bake(t *dataset.Table) error
}

// Config contains configuration for the preprocessing recipe.
type Config struct {
	// DiscretizeColumn is the continuous column binned into equal-frequency
	// ranges. Empty disables the discretize step.
	DiscretizeColumn string

	// Bins is the number of quantile bins for the discretize step.
	// Must be at least 2.
	Bins int

	// LogColumns lists the columns replaced by their natural log.
	// Values must be strictly positive.
	LogColumns []string

	// PositiveClass is the target level encoded as 1 in the outcome vector.
	// Matched case-insensitively.
	PositiveClass string
}

// DefaultConfig returns the preprocessing configuration of the reference
// churn analysis.
func DefaultConfig() Config {
	return Config{
		DiscretizeColumn: "tenure",
		Bins:             6,
		LogColumns:       []string{"TotalCharges"},
		PositiveClass:    "Yes",
	}
}

// Recipe owns the ordered preprocessing steps and their fitted state.
type Recipe struct {
	config Config
	steps  []Step
	fitted bool
}

// New creates a recipe with the given configuration. Out-of-range values
// fall back to defaults.
func New(cfg Config) *Recipe {
	if cfg.Bins < 2 {
		cfg.Bins = 6
	}
	if cfg.PositiveClass == "" {
		cfg.PositiveClass = "Yes"
	}

	var steps []Step
	if cfg.DiscretizeColumn != "" {
		steps = append(steps, newDiscretize(cfg.DiscretizeColumn, cfg.Bins))
	}
	if len(cfg.LogColumns) > 0 {
		steps = append(steps, newLog(cfg.LogColumns))
	}
	steps = append(steps, newDummy(), newCenter(), newScale())

	return &Recipe{config: cfg, steps: steps}
}

// Steps returns the step names in execution order.
func (r *Recipe) Steps() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.Name()
	}
	return names
}

// Fit learns every step's parameters from the training table. Each step is
// baked into a working copy before the next step fits, so downstream steps
// observe the transformed output of upstream ones. Fit may be called once.
func (r *Recipe) Fit(train *dataset.Table) error {
	if r.fitted {
		return fmt.Errorf("recipe is already fitted")
	}

	work := train.Clone()
	for _, s := range r.steps {
		if err := s.Fit(work); err != nil {
			return fmt.Errorf("fit %s: %w", s.Name(), err)
		}
		if err := s.Bake(work); err != nil {
			return fmt.Errorf("apply %s during fitting: %w", s.Name(), err)
		}
	}

	r.fitted = true
	return nil
}

// Bake applies the fitted steps to a copy of the table and materializes the
// numeric feature matrix plus the 0/1 outcome vector (positive class = 1).
// The input table is never modified.
func (r *Recipe) Bake(t *dataset.Table) (*Matrix, []float64, error) {
	if !r.fitted {
		return nil, nil, fmt.Errorf("recipe must be fitted before baking")
	}

	work := t.Clone()
	for _, s := range r.steps {
		if err := s.Bake(work); err != nil {
			return nil, nil, fmt.Errorf("bake %s: %w", s.Name(), err)
		}
	}

	matrix, err := materialize(work)
	if err != nil {
		return nil, nil, err
	}

	target := work.Target()
	y := make([]float64, len(target.Strings))
	for i, v := range target.Strings {
		if strings.EqualFold(strings.TrimSpace(v), r.config.PositiveClass) {
			y[i] = 1
		}
	}

	return matrix, y, nil
}

// materialize converts the fully-baked table into a feature matrix. Every
// predictor must be continuous by now; a remaining categorical column means
// a step upstream failed its contract.
func materialize(t *dataset.Table) (*Matrix, error) {
	numRows := t.NumRows()
	numFeatures := t.NumCols() - 1

	columns := make([]string, numFeatures)
	for i := 0; i < numFeatures; i++ {
		col := &t.Columns[i+1]
		if col.Kind != dataset.Continuous {
			return nil, fmt.Errorf("column %q is still categorical after preprocessing", col.Name)
		}
		columns[i] = col.Name
	}

	data := make([][]float64, numRows)
	for r := 0; r < numRows; r++ {
		row := make([]float64, numFeatures)
		for c := 0; c < numFeatures; c++ {
			row[c] = t.Columns[c+1].Floats[r]
		}
		data[r] = row
	}

	return &Matrix{Columns: columns, Data: data}, nil
}
