// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package config

import (
	"fmt"

	"github.com/tomtom215/churnlab/internal/validation"
)

// Validate checks that the configuration is complete and internally consistent.
// Field-level rules (ranges, required values, allowed sets) are enforced through
// the validate struct tags; the per-section checks below cover relationships
// between fields that tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateRecipe(); err != nil {
		return err
	}

	return c.validateStore()
}

// validateData checks column roles are distinct
func (c *Config) validateData() error {
	if c.Data.IDColumn != "" && c.Data.IDColumn == c.Data.TargetColumn {
		return fmt.Errorf("DATA_ID_COLUMN and DATA_TARGET_COLUMN must name different columns")
	}
	for _, col := range c.Data.NumericColumns {
		if col == c.Data.TargetColumn {
			return fmt.Errorf("DATA_TARGET_COLUMN cannot be listed in DATA_NUMERIC_COLUMNS")
		}
	}
	return nil
}

// validateRecipe checks that preprocessing steps target disjoint columns
func (c *Config) validateRecipe() error {
	for _, col := range c.Recipe.LogColumns {
		if col == c.Data.TargetColumn {
			return fmt.Errorf("RECIPE_LOG_COLUMNS cannot include the target column")
		}
		if c.Recipe.DiscretizeColumn != "" && col == c.Recipe.DiscretizeColumn {
			return fmt.Errorf("RECIPE_DISCRETIZE_COLUMN cannot also appear in RECIPE_LOG_COLUMNS (binning replaces the numeric column)")
		}
	}
	if c.Recipe.DiscretizeColumn == c.Data.TargetColumn && c.Recipe.DiscretizeColumn != "" {
		return fmt.Errorf("RECIPE_DISCRETIZE_COLUMN cannot name the target column")
	}
	return nil
}

// validateStore checks the run-results store settings
func (c *Config) validateStore() error {
	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required when STORE_ENABLED=true")
	}
	return nil
}
