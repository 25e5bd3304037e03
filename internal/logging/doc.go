// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package logging provides centralized zerolog-based structured logging for ChurnLab.
//
// The package exposes a configured global logger plus level helpers so that
// pipeline stages log consistently without threading a logger through every
// call. Components that want scoped fields derive a child logger once:
//
//	logger := logging.With().Str("component", "model").Logger()
//	logger.Info().Int("epoch", epoch).Float64("loss", loss).Msg("epoch complete")
//
// # Output Formats
//
//   - json: machine-parseable, the default for batch and CI runs
//   - console: human-readable, colorized, for interactive use
//
// # Configuration
//
// The logging section of the application config maps directly onto Config:
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,
//	    Format: cfg.Logging.Format,
//	    Caller: cfg.Logging.Caller,
//	})
//
// Init may be called again to reconfigure; the zero Config applies defaults
// (info level, JSON to stderr).
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// # See Also
//
//   - github.com/rs/zerolog: Underlying logging library
package logging
