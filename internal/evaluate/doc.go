// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package evaluate scores classifier output on held-out rows.
//
// It builds a confusion matrix at a probability threshold, derives
// accuracy, precision, recall, and F1 from it (zero denominators
// yield zero rather than NaN), and traces a ROC curve with one cut
// per distinct score, integrating AUC by the trapezoidal rule.
//
// The positive class is always class 1; callers map their domain
// labels before scoring.
package evaluate
