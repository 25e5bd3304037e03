// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package recipe

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/churnlab/internal/dataset"
)

// scaleStep divides every continuous predictor by its training sample
// standard deviation (n-1 divisor). A zero or undefined deviation leaves
// the column unscaled instead of dividing by zero.
type scaleStep struct {
	order []string
	sds   map[string]float64
}

var _ Step = (*scaleStep)(nil)

func newScale() *scaleStep {
	return &scaleStep{sds: make(map[string]float64)}
}

func (s *scaleStep) Name() string { return "scale" }

// Fit records the standard deviation of every continuous predictor.
func (s *scaleStep) Fit(t *dataset.Table) error {
	s.order = nil
	s.sds = make(map[string]float64)

	for i := 1; i < len(t.Columns); i++ {
		col := &t.Columns[i]
		if col.Kind != dataset.Continuous {
			continue
		}
		s.order = append(s.order, col.Name)
		s.sds[col.Name] = stat.StdDev(col.Floats, nil)
	}
	return nil
}

// Bake divides by the fitted deviations in place.
func (s *scaleStep) Bake(t *dataset.Table) error {
	for _, name := range s.order {
		col := t.Column(name)
		if col == nil {
			return fmt.Errorf("column %q not found", name)
		}
		sd := s.sds[name]
		if sd == 0 || math.IsNaN(sd) {
			continue
		}
		for i := range col.Floats {
			col.Floats[i] /= sd
		}
	}
	return nil
}
