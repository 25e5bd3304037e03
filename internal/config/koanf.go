// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/churnlab/config.yaml",
	"/etc/churnlab/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values. The defaults
// reproduce the reference churn analysis of the Telco customer dataset and are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:           "data/telco_churn.csv",
			IDColumn:       "customerID",
			TargetColumn:   "Churn",
			PositiveClass:  "Yes",
			NumericColumns: nil, // Numeric columns are detected by parsing
		},
		Split: SplitConfig{
			TrainFraction: 0.8,
			Seed:          42,
		},
		Recipe: RecipeConfig{
			DiscretizeColumn: "tenure",
			Bins:             6,
			LogColumns:       []string{"TotalCharges"},
		},
		Model: ModelConfig{
			HiddenUnits:     []int{16, 16},
			Dropout:         0.1,
			LearningRate:    0.001,
			Epochs:          35,
			BatchSize:       50,
			ValidationSplit: 0.3,
			Seed:            0, // Unseeded - training varies run to run like the reference analysis
			Workers:         0, // 0 = use runtime.NumCPU()
		},
		Evaluate: EvaluateConfig{
			Threshold: 0.5,
		},
		Explain: ExplainConfig{
			Rows:        10,
			Samples:     5000,
			KernelWidth: 0.5,
			MaxFeatures: 4,
			Seed:        42,
		},
		Output: OutputConfig{
			ReportPath:      "",
			TopCorrelations: 0, // 0 = list every feature
		},
		Store: StoreConfig{
			Enabled:   false, // Opt-in only
			Path:      "data/churnlab.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in values reproducing the reference analysis
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// DATA_PATH -> data.path
	// MODEL_LEARNING_RATE -> model.learning_rate
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"data.numeric_columns",
	"recipe.log_columns",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DATA_PATH -> data.path
//   - SPLIT_TRAIN_FRACTION -> split.train_fraction
//   - MODEL_EPOCHS -> model.epochs
//   - STORE_ENABLED -> store.enabled
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Data ingestion
		"data_path":            "data.path",
		"data_id_column":       "data.id_column",
		"data_target_column":   "data.target_column",
		"data_positive_class":  "data.positive_class",
		"data_numeric_columns": "data.numeric_columns",

		// Train/test split
		"split_train_fraction": "split.train_fraction",
		"split_seed":           "split.seed",

		// Preprocessing recipe
		"recipe_discretize_column": "recipe.discretize_column",
		"recipe_bins":              "recipe.bins",
		"recipe_log_columns":       "recipe.log_columns",

		// Model training
		"model_dropout":          "model.dropout",
		"model_learning_rate":    "model.learning_rate",
		"model_epochs":           "model.epochs",
		"model_batch_size":       "model.batch_size",
		"model_validation_split": "model.validation_split",
		"model_seed":             "model.seed",
		"model_workers":          "model.workers",

		// Evaluation
		"evaluate_threshold": "evaluate.threshold",

		// Explanation
		"explain_rows":         "explain.rows",
		"explain_samples":      "explain.samples",
		"explain_kernel_width": "explain.kernel_width",
		"explain_max_features": "explain.max_features",
		"explain_seed":         "explain.seed",

		// Report output
		"output_report_path":      "output.report_path",
		"output_top_correlations": "output.top_correlations",

		// Run-results store
		"store_enabled":    "store.enabled",
		"store_path":       "store.path",
		"store_max_memory": "store.max_memory",
		"store_threads":    "store.threads",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
