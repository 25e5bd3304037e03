// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package recipe

import (
	"fmt"
	"sort"

	"github.com/tomtom215/churnlab/internal/dataset"
)

// dummyStep encodes every categorical predictor as k-1 indicator columns.
// Levels are collected from the training table and sorted lexicographically;
// the first level is the reference and produces no column. Each remaining
// level yields a 0/1 column named <column>_<level>, inserted at the source
// column's position. A level never seen during fitting bakes to all zeros.
type dummyStep struct {
	columns []string            // categorical predictors in fit-time table order
	levels  map[string][]string // column -> sorted levels
}

var _ Step = (*dummyStep)(nil)

func newDummy() *dummyStep {
	return &dummyStep{levels: make(map[string][]string)}
}

func (s *dummyStep) Name() string { return "dummy" }

// Fit records the sorted level set of every categorical predictor. The
// target column (first) is never encoded.
func (s *dummyStep) Fit(t *dataset.Table) error {
	s.columns = nil
	s.levels = make(map[string][]string)

	for i := 1; i < len(t.Columns); i++ {
		col := &t.Columns[i]
		if col.Kind != dataset.Categorical {
			continue
		}

		distinct := make(map[string]bool)
		for _, v := range col.Strings {
			distinct[v] = true
		}
		levels := make([]string, 0, len(distinct))
		for v := range distinct {
			levels = append(levels, v)
		}
		sort.Strings(levels)

		s.columns = append(s.columns, col.Name)
		s.levels[col.Name] = levels
	}
	return nil
}

// Bake replaces each fitted categorical column with its indicator columns.
func (s *dummyStep) Bake(t *dataset.Table) error {
	out := make([]dataset.Column, 0, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		if i == 0 || col.Kind != dataset.Categorical {
			out = append(out, *col)
			continue
		}

		levels, ok := s.levels[col.Name]
		if !ok {
			return fmt.Errorf("categorical column %q was not present during fitting", col.Name)
		}

		// The first level is the reference; the rest become indicators.
		for _, level := range levels[1:] {
			indicator := dataset.Column{
				Name:   col.Name + "_" + level,
				Kind:   dataset.Continuous,
				Floats: make([]float64, len(col.Strings)),
			}
			for r, v := range col.Strings {
				if v == level {
					indicator.Floats[r] = 1
				}
			}
			out = append(out, indicator)
		}
	}

	t.Columns = out
	return nil
}
