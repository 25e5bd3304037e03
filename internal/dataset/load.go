// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package dataset

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/tomtom215/churnlab/internal/logging"
)

// LoadOptions selects the column roles applied during cleaning.
type LoadOptions struct {
	// IDColumn is the row-identifier column dropped before modeling.
	// Empty means the dataset carries no identifier.
	IDColumn string

	// TargetColumn is the binary outcome column. Required.
	TargetColumn string

	// PositiveClass is the target level counted as the event of interest.
	// Matched case-insensitively against the target values.
	PositiveClass string

	// NumericColumns forces the named columns to be parsed as continuous
	// even if a value fails to parse (which is then an error) and
	// regardless of detection.
	NumericColumns []string

	// RequiredColumns lists additional columns that must exist, typically
	// the columns named by the preprocessing configuration.
	RequiredColumns []string
}

// Load reads a comma-delimited file with a header row and returns the
// cleaned table: identifier column dropped, incomplete rows removed, target
// column first, every remaining column classified as continuous or
// categorical.
func Load(path string, opts LoadOptions) (*Table, error) {
	if opts.TargetColumn == "" {
		return nil, fmt.Errorf("target column is required")
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	// Read everything as raw strings; classification happens after cleaning
	// so that missing markers never influence type detection.
	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, df.Err)
	}

	names := df.Names()
	if err := checkColumnsPresent(names, opts); err != nil {
		return nil, err
	}

	// Drop the identifier and move the target to the front in one projection.
	order := make([]string, 0, len(names))
	order = append(order, opts.TargetColumn)
	for _, name := range names {
		if name == opts.TargetColumn || (opts.IDColumn != "" && name == opts.IDColumn) {
			continue
		}
		order = append(order, name)
	}
	df = df.Select(order)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to project columns: %w", df.Err)
	}

	records := df.Records()
	if len(records) < 1 {
		return nil, fmt.Errorf("dataset %s has no header row", path)
	}
	rows := records[1:]

	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		if rowComplete(row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no rows remain after dropping incomplete records from %s", path)
	}

	table, err := buildTable(order, kept, opts)
	if err != nil {
		return nil, err
	}

	if err := checkTarget(table.Target(), opts.PositiveClass); err != nil {
		return nil, err
	}

	logging.Info().
		Str("path", path).
		Int("rows", table.NumRows()).
		Int("columns", table.NumCols()).
		Int("dropped_rows", len(rows)-len(kept)).
		Msg("Dataset loaded")

	return table, nil
}

// checkColumnsPresent validates every configured column name against the header.
func checkColumnsPresent(names []string, opts LoadOptions) error {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	if !present[opts.TargetColumn] {
		return fmt.Errorf("dataset has no target column %q", opts.TargetColumn)
	}
	if opts.IDColumn != "" && !present[opts.IDColumn] {
		return fmt.Errorf("dataset has no identifier column %q", opts.IDColumn)
	}
	for _, name := range opts.NumericColumns {
		if !present[name] {
			return fmt.Errorf("dataset has no column %q (listed in numeric columns)", name)
		}
	}
	for _, name := range opts.RequiredColumns {
		if !present[name] {
			return fmt.Errorf("dataset has no column %q (named by the preprocessing configuration)", name)
		}
	}
	return nil
}

// rowComplete reports whether every field of the row carries a value.
// Empty strings, whitespace-only strings, and the literal "NA" count as missing.
func rowComplete(row []string) bool {
	for _, v := range row {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" || trimmed == "NA" {
			return false
		}
	}
	return true
}

// buildTable converts row-major records into typed columns. The first column
// is the target and stays categorical; the rest are continuous when every
// value parses as a float or the column is named in the numeric hints.
func buildTable(header []string, rows [][]string, opts LoadOptions) (*Table, error) {
	forced := make(map[string]bool, len(opts.NumericColumns))
	for _, name := range opts.NumericColumns {
		forced[name] = true
	}

	table := &Table{Columns: make([]Column, len(header))}
	for c, name := range header {
		values := make([]string, len(rows))
		for r := range rows {
			values[r] = rows[r][c]
		}

		if c == 0 {
			table.Columns[c] = Column{Name: name, Kind: Categorical, Strings: values}
			continue
		}

		floats, parseable := parseAll(values)
		switch {
		case forced[name] && !parseable:
			return nil, fmt.Errorf("column %q is configured numeric but contains non-numeric values", name)
		case parseable:
			table.Columns[c] = Column{Name: name, Kind: Continuous, Floats: floats}
		default:
			table.Columns[c] = Column{Name: name, Kind: Categorical, Strings: values}
		}
	}
	return table, nil
}

// parseAll parses every value as a float. The bool reports whether all parsed.
func parseAll(values []string) ([]float64, bool) {
	floats := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		floats[i] = f
	}
	return floats, true
}

// checkTarget validates that the target column is binary and contains the
// configured positive class. Comparison is case-insensitive.
func checkTarget(target *Column, positiveClass string) error {
	distinct := make(map[string]string) // lowercased -> first seen spelling
	for _, v := range target.Strings {
		key := strings.ToLower(strings.TrimSpace(v))
		if _, ok := distinct[key]; !ok {
			distinct[key] = v
		}
	}

	if len(distinct) != 2 {
		seen := make([]string, 0, len(distinct))
		for _, v := range distinct {
			seen = append(seen, v)
		}
		return fmt.Errorf("target column %q must hold exactly two classes, found %d (%v)",
			target.Name, len(distinct), seen)
	}

	if positiveClass != "" {
		if _, ok := distinct[strings.ToLower(positiveClass)]; !ok {
			return fmt.Errorf("target column %q does not contain the positive class %q",
				target.Name, positiveClass)
		}
	}
	return nil
}
