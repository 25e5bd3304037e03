// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package recipe

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/churnlab/internal/dataset"
)

// centerStep subtracts the training mean from every continuous predictor.
// It runs after dummy encoding, so indicator columns are centered too,
// matching the reference analysis.
type centerStep struct {
	order []string
	means map[string]float64
}

var _ Step = (*centerStep)(nil)

func newCenter() *centerStep {
	return &centerStep{means: make(map[string]float64)}
}

func (s *centerStep) Name() string { return "center" }

// Fit records the mean of every continuous predictor.
func (s *centerStep) Fit(t *dataset.Table) error {
	s.order = nil
	s.means = make(map[string]float64)

	for i := 1; i < len(t.Columns); i++ {
		col := &t.Columns[i]
		if col.Kind != dataset.Continuous {
			continue
		}
		s.order = append(s.order, col.Name)
		s.means[col.Name] = stat.Mean(col.Floats, nil)
	}
	return nil
}

// Bake subtracts the fitted means in place.
func (s *centerStep) Bake(t *dataset.Table) error {
	for _, name := range s.order {
		col := t.Column(name)
		if col == nil {
			return fmt.Errorf("column %q not found", name)
		}
		mean := s.means[name]
		for i := range col.Floats {
			col.Floats[i] -= mean
		}
	}
	return nil
}
