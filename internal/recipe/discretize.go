// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package recipe

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/churnlab/internal/dataset"
)

// discretizeStep bins one continuous column into equal-frequency ranges.
// The bin edges are training quantiles; the outermost bins are open-ended,
// so values outside the training range still land in the first or last bin.
type discretizeStep struct {
	column string
	bins   int

	// edges holds the interior cut points, ascending and deduplicated.
	// A value v belongs to the first bin whose edge satisfies v <= edge,
	// or to the last bin when it exceeds every edge.
	edges []float64
}

var _ Step = (*discretizeStep)(nil)

func newDiscretize(column string, bins int) *discretizeStep {
	return &discretizeStep{column: column, bins: bins}
}

func (s *discretizeStep) Name() string { return "discretize" }

// Fit computes the interior quantile cut points from the training column.
func (s *discretizeStep) Fit(t *dataset.Table) error {
	col := t.Column(s.column)
	if col == nil {
		return fmt.Errorf("column %q not found", s.column)
	}
	if col.Kind != dataset.Continuous {
		return fmt.Errorf("column %q is not continuous", s.column)
	}

	sorted := append([]float64(nil), col.Floats...)
	sort.Float64s(sorted)
	if sorted[0] == sorted[len(sorted)-1] {
		return fmt.Errorf("column %q has no spread to form bins", s.column)
	}

	edges := make([]float64, 0, s.bins-1)
	for k := 1; k < s.bins; k++ {
		q := quantile(sorted, float64(k)/float64(s.bins))
		if len(edges) == 0 || q > edges[len(edges)-1] {
			edges = append(edges, q)
		}
	}

	s.edges = edges
	return nil
}

// Bake replaces the numeric column with a categorical column of bin labels.
func (s *discretizeStep) Bake(t *dataset.Table) error {
	if s.edges == nil {
		return fmt.Errorf("discretize step is not fitted")
	}

	idx := t.ColumnIndex(s.column)
	if idx < 0 {
		return fmt.Errorf("column %q not found", s.column)
	}
	col := &t.Columns[idx]
	if col.Kind != dataset.Continuous {
		return fmt.Errorf("column %q is not continuous", s.column)
	}

	labels := make([]string, len(col.Floats))
	for i, v := range col.Floats {
		labels[i] = binLabel(s.binFor(v))
	}

	t.Columns[idx] = dataset.Column{
		Name:    s.column,
		Kind:    dataset.Categorical,
		Strings: labels,
	}
	return nil
}

// binFor returns the 1-based bin index for a value.
func (s *discretizeStep) binFor(v float64) int {
	for i, edge := range s.edges {
		if v <= edge {
			return i + 1
		}
	}
	return len(s.edges) + 1
}

func binLabel(bin int) string {
	return fmt.Sprintf("bin%d", bin)
}

// quantile returns the p-th quantile of sorted values using linear
// interpolation between order statistics, matching the convention of the
// reference analysis. Gonum's quantile kinds implement other conventions,
// so the interpolation is done directly.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	h := p * float64(n-1)
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
