// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package config

// Config holds all pipeline configuration loaded from defaults, an optional
// YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in values that reproduce the reference churn analysis
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Pipeline Stages:
//     - Data: CSV ingestion (path, identifier and target columns)
//     - Split: Train/test partitioning
//     - Recipe: Preprocessing steps (discretize, log, dummy, center, scale)
//     - Model: Network shape and training hyperparameters
//     - Evaluate: Classification threshold
//     - Explain: Local surrogate explanation settings
//
//  2. Outputs:
//     - Output: Report rendering destinations
//     - Store: Optional DuckDB run-results store (disabled by default)
//
//  3. Observability:
//     - Logging: Log levels and output formats
//
// The zero-configuration path works: with no config file and no environment
// variables set, Load returns defaults that run the full pipeline against
// the bundled dataset path.
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Split    SplitConfig    `koanf:"split"`
	Recipe   RecipeConfig   `koanf:"recipe"`
	Model    ModelConfig    `koanf:"model"`
	Evaluate EvaluateConfig `koanf:"evaluate"`
	Explain  ExplainConfig  `koanf:"explain"`
	Output   OutputConfig   `koanf:"output"`
	Store    StoreConfig    `koanf:"store"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DataConfig holds CSV ingestion settings
type DataConfig struct {
	Path           string   `koanf:"path" validate:"required"`
	IDColumn       string   `koanf:"id_column"` // Identifier column dropped before modeling (empty = none)
	TargetColumn   string   `koanf:"target_column" validate:"required"`
	PositiveClass  string   `koanf:"positive_class" validate:"required"` // Target level counted as the event of interest
	NumericColumns []string `koanf:"numeric_columns"`                    // Force these columns numeric regardless of detection
}

// SplitConfig holds train/test partition settings
type SplitConfig struct {
	TrainFraction float64 `koanf:"train_fraction" validate:"gt=0,lt=1"`
	Seed          int64   `koanf:"seed"`
}

// RecipeConfig holds preprocessing settings
type RecipeConfig struct {
	DiscretizeColumn string   `koanf:"discretize_column"` // Numeric column binned into quantile ranges (empty = skip)
	Bins             int      `koanf:"bins" validate:"min=2"`
	LogColumns       []string `koanf:"log_columns"` // Columns replaced by their natural log before centering
}

// ModelConfig holds network shape and training hyperparameters
type ModelConfig struct {
	HiddenUnits     []int   `koanf:"hidden_units" validate:"min=1,dive,min=1"`
	Dropout         float64 `koanf:"dropout" validate:"gte=0,lt=1"`
	LearningRate    float64 `koanf:"learning_rate" validate:"gt=0"`
	Epochs          int     `koanf:"epochs" validate:"min=1"`
	BatchSize       int     `koanf:"batch_size" validate:"min=1"`
	ValidationSplit float64 `koanf:"validation_split" validate:"gte=0,lt=1"` // Fraction of training rows held out for per-epoch validation loss
	Seed            int64   `koanf:"seed"`                                   // 0 = seed from current time (run-to-run results vary)
	Workers         int     `koanf:"workers"`                                // Number of prediction workers (0 = use NumCPU)
}

// EvaluateConfig holds test-set evaluation settings
type EvaluateConfig struct {
	Threshold float64 `koanf:"threshold" validate:"gt=0,lt=1"` // Probability cutoff for the positive class
}

// ExplainConfig holds local surrogate explanation settings
type ExplainConfig struct {
	Rows        int     `koanf:"rows" validate:"min=0"` // Number of test rows to explain (0 = skip the explanation stage)
	Samples     int     `koanf:"samples" validate:"min=1"`
	KernelWidth float64 `koanf:"kernel_width" validate:"gt=0"`
	MaxFeatures int     `koanf:"max_features" validate:"min=1"`
	Seed        int64   `koanf:"seed"`
}

// OutputConfig holds report rendering settings
type OutputConfig struct {
	ReportPath      string `koanf:"report_path"`                       // JSON report destination (empty = console only)
	TopCorrelations int    `koanf:"top_correlations" validate:"min=0"` // Correlations listed in the report (0 = all)
}

// StoreConfig holds the optional DuckDB run-results store settings
type StoreConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}
