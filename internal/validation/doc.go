// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with human-readable error messages. The pipeline
// configuration is its main consumer: every config section declares its field
// rules through validate struct tags and is checked once at load time.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Recursive validation of nested struct sections
//   - Error translation to human-readable messages
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type SplitConfig struct {
//	    TrainFraction float64 `validate:"gt=0,lt=1"`
//	    Seed          int64
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    return fmt.Errorf("invalid configuration: %w", verr)
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - oneof=a b c: Value must be one of the listed options
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - gt=n: Greater than n
//   - lt=n: Less than n
//   - min=n: Minimum value n (minimum length for slices)
//   - max=n: Maximum value n
//
// Slice validations:
//   - min=n: At least n elements
//   - dive: Apply the following tags to each element
//
// # Error Handling
//
// ValidateStruct returns *ValidationErrors, which implements the error
// interface. Each contained ValidationError carries the field name, the
// failed tag, the tag parameter, and the offending value, so callers can
// either log the combined message or inspect failures individually.
//
// # Thread Safety
//
// The singleton validator is safe for concurrent use. go-playground/validator
// caches struct metadata internally, so repeated validations of the same
// types are cheap.
package validation
