// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package dataset loads and cleans the raw churn CSV and partitions it into
// train and test tables.
//
// Loading goes through gota's dataframe reader with type detection disabled,
// so every cell arrives as a raw string. Cleaning then:
//
//  1. validates that the identifier, target, and recipe columns exist
//  2. drops the row-identifier column
//  3. drops every row with a missing field (empty, whitespace, or "NA")
//  4. reorders columns so the target comes first
//  5. classifies each remaining column as continuous or categorical
//
// A column is continuous when every retained value parses as a float, or when
// it is named in the numeric hint list. Everything else stays categorical.
// The target column must hold exactly two distinct values, one of them the
// configured positive class.
//
// The cleaned Table is treated as immutable: the split and the preprocessing
// recipe operate on copies, never on the loaded table itself.
//
// Splitting is seed-deterministic. A seeded permutation assigns each row to
// one side, the training side takes ceil(N * fraction) rows, and both sides
// keep the cleaned table's relative row order.
package dataset
