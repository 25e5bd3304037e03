// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package main is the entry point for the ChurnLab pipeline.
//
// ChurnLab models customer churn from a CSV of customer attributes. One
// invocation runs the whole analysis: clean and split the data, fit a
// preprocessing recipe on the training rows, train a small feed-forward
// classifier, evaluate it on the held-out rows, rank feature correlations
// against the outcome, and explain individual predictions with a local
// linear surrogate.
//
// # Run Sequence
//
// The pipeline executes stages in the following order:
//
//  1. Configuration: load settings from defaults, an optional YAML config
//     file, and environment variables (Koanf v2)
//  2. Load: read the CSV, drop the identifier column and incomplete rows,
//     classify columns as categorical or continuous
//  3. Split: seeded disjoint train/test partition
//  4. Recipe: discretize -> log -> dummy-encode -> center -> scale, fitted
//     on training rows only and applied to both sides
//  5. Train: feed-forward classifier (Adam, dropout, per-epoch loss)
//  6. Evaluate: confusion matrix, accuracy, precision, recall, F1, ROC/AUC
//  7. Correlate: rank features by correlation with the outcome
//  8. Explain: local surrogate explanations for the leading test rows
//
// The result is rendered as a console summary, optionally written as a
// JSON artifact, and optionally recorded in the run store.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults. The defaults reproduce the reference Telco churn
// analysis; only the dataset path usually needs setting:
//
//	export DATA_PATH=data/telco_churn.csv
//	./churnlab
//
// Reproducible training (defaults vary run to run like the reference
// analysis):
//
//	export MODEL_SEED=42
//	./churnlab
//
// Keeping a JSON artifact and a run history:
//
//	export OUTPUT_REPORT_PATH=reports/latest.json
//	export STORE_ENABLED=true
//	export STORE_PATH=data/churnlab.duckdb
//	./churnlab
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run at the next stage boundary (and
// between training epochs). A cancelled run writes no artifacts and
// exits non-zero.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/churnlab/internal/config"
	"github.com/tomtom215/churnlab/internal/logging"
	"github.com/tomtom215/churnlab/internal/pipeline"
	"github.com/tomtom215/churnlab/internal/report"
	"github.com/tomtom215/churnlab/internal/runstore"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("data_path", cfg.Data.Path).
		Str("target_column", cfg.Data.TargetColumn).
		Str("positive_class", cfg.Data.PositiveClass).
		Msg("Starting ChurnLab")

	runner, err := pipeline.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create pipeline")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	res, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logging.Fatal().Msg("Run cancelled before completion")
		}
		logging.Fatal().Err(err).Msg("Pipeline run failed")
	}

	if err := report.Render(os.Stdout, res, cfg.Output.TopCorrelations); err != nil {
		logging.Error().Err(err).Msg("Failed to render report")
	}

	// Recording the run is opt-in convenience; failures never discard
	// the already-computed result.
	if cfg.Store.Enabled {
		recordRun(ctx, cfg, res)
	}

	if cfg.Output.ReportPath != "" {
		if err := report.WriteJSON(cfg.Output.ReportPath, res); err != nil {
			logging.Fatal().Err(err).Msg("Failed to write report artifact")
		}
		logging.Info().Str("path", cfg.Output.ReportPath).Msg("Report artifact written")
	}

	logging.Info().
		Str("run_id", res.RunID).
		Float64("accuracy", res.Metrics.Accuracy).
		Float64("auc", res.Metrics.AUC).
		Msg("ChurnLab run finished")
}

// recordRun saves the result to the run store and closes it.
func recordRun(ctx context.Context, cfg *config.Config, res *pipeline.Result) {
	store, err := runstore.New(&cfg.Store)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open run store")
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing run store")
		}
	}()

	if err := store.SaveRun(ctx, res, cfg); err != nil {
		logging.Error().Err(err).Msg("Failed to record run")
		return
	}
	logging.Info().Str("path", cfg.Store.Path).Msg("Run recorded")
}
