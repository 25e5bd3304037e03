// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

/*
Package config provides centralized configuration management for ChurnLab.

This package handles loading, validation, and parsing of configuration for
every pipeline stage. Defaults reproduce the reference churn analysis of the
IBM Telco customer dataset, so the pipeline runs end to end with no
configuration at all.

# Configuration Sources

Configuration is loaded with Koanf v2 from three layered sources, later
layers overriding earlier ones:

 1. Built-in defaults (see defaultConfig)
 2. Optional YAML config file (config.yaml, or the path in CONFIG_PATH)
 3. Environment variables

# Configuration Structure

The package organizes configuration into one section per pipeline stage:

  - DataConfig: CSV ingestion (path, identifier/target columns)
  - SplitConfig: Train/test partitioning (fraction, seed)
  - RecipeConfig: Preprocessing steps (discretize, log transform)
  - ModelConfig: Network shape and training hyperparameters
  - EvaluateConfig: Classification threshold
  - ExplainConfig: Local surrogate explanation settings
  - OutputConfig: Report rendering
  - StoreConfig: Optional DuckDB run-results store
  - LoggingConfig: Log level and output format

# Environment Variables

Data ingestion (DataConfig):
  - DATA_PATH: CSV file path (default: data/telco_churn.csv)
  - DATA_ID_COLUMN: Identifier column to drop (default: customerID)
  - DATA_TARGET_COLUMN: Binary target column (default: Churn)
  - DATA_POSITIVE_CLASS: Target level counted as the event (default: Yes)
  - DATA_NUMERIC_COLUMNS: Comma-separated columns forced numeric

Train/test split (SplitConfig):
  - SPLIT_TRAIN_FRACTION: Fraction of rows for training (default: 0.8)
  - SPLIT_SEED: Shuffle seed (default: 42)

Preprocessing (RecipeConfig):
  - RECIPE_DISCRETIZE_COLUMN: Column binned into quantile ranges (default: tenure)
  - RECIPE_BINS: Number of quantile bins (default: 6)
  - RECIPE_LOG_COLUMNS: Comma-separated columns log-transformed (default: TotalCharges)

Model training (ModelConfig):
  - MODEL_DROPOUT: Dropout rate between layers (default: 0.1)
  - MODEL_LEARNING_RATE: Adam step size (default: 0.001)
  - MODEL_EPOCHS: Training epochs (default: 35)
  - MODEL_BATCH_SIZE: Mini-batch size (default: 50)
  - MODEL_VALIDATION_SPLIT: Held-out fraction for validation loss (default: 0.3)
  - MODEL_SEED: Weight init and shuffle seed, 0 = time-based (default: 0)
  - MODEL_WORKERS: Prediction worker count, 0 = NumCPU (default: 0)

Evaluation (EvaluateConfig):
  - EVALUATE_THRESHOLD: Positive-class probability cutoff (default: 0.5)

Explanation (ExplainConfig):
  - EXPLAIN_ROWS: Test rows to explain, 0 = skip (default: 10)
  - EXPLAIN_SAMPLES: Perturbation sample count (default: 5000)
  - EXPLAIN_KERNEL_WIDTH: Proximity kernel width (default: 0.5)
  - EXPLAIN_MAX_FEATURES: Features per explanation (default: 4)
  - EXPLAIN_SEED: Sampling seed (default: 42)

Report output (OutputConfig):
  - OUTPUT_REPORT_PATH: JSON report path, empty = console only (default: empty)
  - OUTPUT_TOP_CORRELATIONS: Correlations listed, 0 = all (default: 0)

Run-results store (StoreConfig):
  - STORE_ENABLED: Persist run results to DuckDB (default: false)
  - STORE_PATH: Database file path (default: data/churnlab.duckdb)
  - STORE_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - STORE_THREADS: DuckDB thread count, 0 = NumCPU (default: 0)

Logging (LoggingConfig):
  - LOG_LEVEL: debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: console)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage Example

Basic configuration loading:

	import "github.com/tomtom215/churnlab/internal/config"

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Dataset: %s\n", cfg.Data.Path)
	fmt.Printf("Training for %d epochs\n", cfg.Model.Epochs)

Testing with custom configuration:

	t.Setenv("MODEL_EPOCHS", "5")
	t.Setenv("SPLIT_SEED", "7")

	cfg, err := config.Load()
	// Use cfg for testing

# Validation

Load validates the assembled configuration before returning it:

  - Field rules through validate struct tags (fractions in (0,1),
    counts at least 1, log level in the allowed set)
  - Cross-field rules in Validate (identifier and target columns differ,
    discretized column not also log-transformed, store path present
    when the store is enabled)

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.
*/
package config
