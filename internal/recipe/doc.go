// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package recipe turns a cleaned table into the numeric feature matrix the
// classifier trains on.
//
// A Recipe is an ordered list of preprocessing steps, each implementing the
// Step interface with a two-phase contract: Fit learns parameters from the
// training table only, Bake applies those parameters to any table. The
// default step order is
//
//  1. discretize: bin one continuous column into equal-frequency ranges
//  2. log: natural log of strictly-positive columns
//  3. dummy: k-1 indicator encoding of every categorical predictor
//  4. center: subtract the training mean from every predictor
//  5. scale: divide every predictor by its training standard deviation
//
// Fitting bakes each step into a working copy of the training table before
// fitting the next, so later steps see the output of earlier ones: center
// and scale operate on the dummy-expanded predictors, matching the reference
// analysis.
//
// Nothing from a baked table ever feeds back into fitted state. Bin edges,
// category levels, means, and standard deviations all come from the training
// table alone, and every baked table materializes a Matrix with identical
// column names in identical order. A category value never seen during
// fitting bakes to all-zero indicators.
//
// Typical use:
//
//	rec := recipe.New(recipe.DefaultConfig())
//	if err := rec.Fit(split.Train); err != nil { ... }
//	xTrain, yTrain, err := rec.Bake(split.Train)
//	xTest, yTest, err := rec.Bake(split.Test)
package recipe
