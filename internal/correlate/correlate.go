// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package correlate ranks baked features by their linear association
// with the churn target.
package correlate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/churnlab/internal/recipe"
)

// Correlation pairs a feature with its Pearson correlation against
// the 0/1 target.
type Correlation struct {
	Feature string  `json:"feature"`
	R       float64 `json:"r"`
}

// Table is a correlation ranking, strongest first.
type Table []Correlation

// Top returns the n strongest entries, or the whole table when n is
// zero, negative, or past the end.
func (t Table) Top(n int) Table {
	if n <= 0 || n >= len(t) {
		return t
	}
	return t[:n]
}

// Rank computes the Pearson correlation of every feature column
// against the target and returns them strongest first by absolute
// value. Ties break alphabetically so the ranking is deterministic.
//
// Constant columns have no defined correlation and report zero.
func Rank(m *recipe.Matrix, y []float64) (Table, error) {
	if m == nil || m.NumRows() == 0 {
		return nil, errors.New("correlation requires at least one row")
	}
	if len(y) != m.NumRows() {
		return nil, fmt.Errorf("matrix rows (%d) and labels (%d) differ", m.NumRows(), len(y))
	}

	out := make(Table, 0, m.NumFeatures())
	for idx, name := range m.Columns {
		r := stat.Correlation(m.Column(idx), y, nil)
		if math.IsNaN(r) {
			r = 0
		}
		out = append(out, Correlation{Feature: name, R: r})
	}

	sort.Slice(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].R), math.Abs(out[j].R)
		if ai != aj {
			return ai > aj
		}
		return out[i].Feature < out[j].Feature
	})

	return out, nil
}
