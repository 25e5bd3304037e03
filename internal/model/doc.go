// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package model implements the feed-forward churn classifier.
//
// The network is a fully connected binary classifier: configurable
// hidden layers with ReLU activations and inverted dropout, followed
// by a single sigmoid output unit. Training minimizes binary
// cross-entropy with the Adam optimizer over shuffled mini-batches.
//
// A fixed validation holdout is carved from the end of the training
// matrix before the first epoch: those rows never contribute
// gradients and are only scored for the per-epoch validation loss.
//
// With a non-zero seed, training is fully reproducible: weight
// initialization, batch shuffling, and dropout masks all draw from a
// single seeded source. A zero seed draws a fresh seed from the clock.
//
// # Thread Safety
//
// A Classifier is safe for concurrent use. Training acquires an
// exclusive lock while prediction uses a shared lock, so predictions
// from multiple goroutines can proceed in parallel once training has
// completed.
package model
