// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package pipeline orchestrates one end-to-end churn modeling run.
//
// A Runner owns the validated configuration and a component logger.
// Run executes the stages in order (load and clean the dataset,
// split it, fit and bake the feature recipe, train the classifier,
// score and evaluate the test rows, rank feature correlations,
// explain a subset of test predictions) and assembles everything
// into a single Result value. The run aborts at the first stage
// error; the context is checked between stages so cancellation takes
// effect at the next boundary.
package pipeline
