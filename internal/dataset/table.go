// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package dataset

// ColumnKind classifies how a column's values are stored and transformed.
type ColumnKind int

const (
	// Categorical columns hold string levels and are dummy-encoded downstream.
	Categorical ColumnKind = iota

	// Continuous columns hold float values and are centered and scaled downstream.
	Continuous
)

// String returns the kind name for logging.
func (k ColumnKind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// Column is a single named column of row-aligned values. Exactly one of
// Strings or Floats is populated, according to Kind.
type Column struct {
	// Name is the header name from the source CSV, or a derived name for
	// columns produced by preprocessing steps.
	Name string

	// Kind selects which value slice is populated.
	Kind ColumnKind

	// Strings holds the values of a categorical column, one per row.
	Strings []string

	// Floats holds the values of a continuous column, one per row.
	Floats []float64
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == Continuous {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// clone returns a deep copy of the column.
func (c *Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Strings != nil {
		out.Strings = make([]string, len(c.Strings))
		copy(out.Strings, c.Strings)
	}
	if c.Floats != nil {
		out.Floats = make([]float64, len(c.Floats))
		copy(out.Floats, c.Floats)
	}
	return out
}

// Table is an ordered collection of equal-length columns. After cleaning the
// target column is always first.
type Table struct {
	Columns []Column
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return i
		}
	}
	return -1
}

// Column returns a pointer to the named column, or nil if absent. The
// pointer addresses the table's own storage, so callers that must not
// mutate the table should Clone first.
func (t *Table) Column(name string) *Column {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	return &t.Columns[idx]
}

// Target returns the target column. Valid only after cleaning, which places
// the target first.
func (t *Table) Target() *Column {
	if len(t.Columns) == 0 {
		return nil
	}
	return &t.Columns[0]
}

// Clone returns a deep copy of the table. Preprocessing steps bake into
// clones so the cleaned table stays intact for the whole run.
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i := range t.Columns {
		out.Columns[i] = t.Columns[i].clone()
	}
	return out
}

// subset returns a new table containing the given rows, in the given order.
func (t *Table) subset(rows []int) *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i := range t.Columns {
		src := &t.Columns[i]
		dst := Column{Name: src.Name, Kind: src.Kind}
		if src.Kind == Continuous {
			dst.Floats = make([]float64, len(rows))
			for j, r := range rows {
				dst.Floats[j] = src.Floats[r]
			}
		} else {
			dst.Strings = make([]string, len(rows))
			for j, r := range rows {
				dst.Strings[j] = src.Strings[r]
			}
		}
		out.Columns[i] = dst
	}
	return out
}
