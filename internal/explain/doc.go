// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package explain produces local surrogate explanations for
// individual classifier predictions.
//
// For each explained row the explainer perturbs the row in the
// transformed feature space (every coordinate is resampled from the
// training column's empirical distribution with probability one
// half), scores the perturbed samples through the classifier, and
// fits a weighted ridge regression of the positive-class probability
// on the samples, weighting each by an exponential proximity kernel.
// The features with the largest absolute surrogate weights are
// refitted on their own and reported ranked by magnitude, each marked
// as supporting or contradicting the predicted class.
//
// The classifier is reached only through the ProbabilityPredictor
// interface, so any model exposing a two-column probability table can
// be explained.
package explain
