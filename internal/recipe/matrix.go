// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package recipe

// Matrix is the fully numeric feature matrix produced by baking a recipe.
// Rows align with the source table's rows; Columns names each feature in
// matrix order. The target is not part of the matrix.
type Matrix struct {
	Columns []string
	Data    [][]float64
}

// NumRows returns the number of rows.
func (m *Matrix) NumRows() int {
	return len(m.Data)
}

// NumFeatures returns the number of feature columns.
func (m *Matrix) NumFeatures() int {
	return len(m.Columns)
}

// ColumnIndex returns the position of the named feature, or -1 if absent.
func (m *Matrix) ColumnIndex(name string) int {
	for i, n := range m.Columns {
		if n == name {
			return i
		}
	}
	return -1
}

// Column extracts the values of one feature across all rows.
func (m *Matrix) Column(idx int) []float64 {
	out := make([]float64, len(m.Data))
	for r, row := range m.Data {
		out[r] = row[idx]
	}
	return out
}
