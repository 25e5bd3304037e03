// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package recipe

import (
	"fmt"
	"math"

	"github.com/tomtom215/churnlab/internal/dataset"
)

// logStep replaces columns with their natural log. The domain is strictly
// positive: a zero or negative value anywhere, fit or bake, is an error
// rather than being clamped or shifted.
type logStep struct {
	columns []string
}

var _ Step = (*logStep)(nil)

func newLog(columns []string) *logStep {
	return &logStep{columns: columns}
}

func (s *logStep) Name() string { return "log" }

// Fit validates the domain on the training table. The step has no fitted
// parameters.
func (s *logStep) Fit(t *dataset.Table) error {
	return s.checkDomain(t)
}

// Bake validates the domain and applies the log in place.
func (s *logStep) Bake(t *dataset.Table) error {
	if err := s.checkDomain(t); err != nil {
		return err
	}

	for _, name := range s.columns {
		col := t.Column(name)
		for i, v := range col.Floats {
			col.Floats[i] = math.Log(v)
		}
	}
	return nil
}

func (s *logStep) checkDomain(t *dataset.Table) error {
	for _, name := range s.columns {
		col := t.Column(name)
		if col == nil {
			return fmt.Errorf("column %q not found", name)
		}
		if col.Kind != dataset.Continuous {
			return fmt.Errorf("column %q is not continuous", name)
		}
		for i, v := range col.Floats {
			if v <= 0 {
				return fmt.Errorf("column %q has non-positive value %v at row %d; log transform requires strictly positive values", name, v, i)
			}
		}
	}
	return nil
}
