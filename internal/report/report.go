// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package report renders pipeline results: an aligned console summary
// for people and an optional JSON artifact for downstream tooling.
// Both are pure functions over a pipeline.Result.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/churnlab/internal/pipeline"
)

// Render writes a human-readable summary of the run. topCorrelations
// limits the correlation table; zero lists every feature.
func Render(w io.Writer, res *pipeline.Result, topCorrelations int) error {
	if res == nil {
		return errors.New("no result to render")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Churn modeling run %s\n", res.RunID)
	fmt.Fprintf(tw, "Dataset\t%s\n", res.DataPath)
	fmt.Fprintf(tw, "Rows\t%d (%d train / %d test)\n", res.Rows, res.TrainRows, res.TestRows)
	fmt.Fprintf(tw, "Features\t%d\n", len(res.Features))
	fmt.Fprintf(tw, "Duration\t%d ms\n", res.DurationMS)

	renderConfusion(tw, res)
	renderMetrics(tw, res)
	renderCorrelations(tw, res, topCorrelations)
	renderExplanations(tw, res)
	renderLoss(tw, res)

	return tw.Flush()
}

func renderConfusion(w io.Writer, res *pipeline.Result) {
	m := res.Metrics.Confusion
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "\tpredicted churn\tpredicted no churn\n")
	fmt.Fprintf(w, "actual churn\t%d\t%d\n", m.TruePositives, m.FalseNegatives)
	fmt.Fprintf(w, "actual no churn\t%d\t%d\n", m.FalsePositives, m.TrueNegatives)
}

func renderMetrics(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Accuracy\t%.3f\n", res.Metrics.Accuracy)
	fmt.Fprintf(w, "Precision\t%.3f\n", res.Metrics.Precision)
	fmt.Fprintf(w, "Recall\t%.3f\n", res.Metrics.Recall)
	fmt.Fprintf(w, "F1\t%.3f\n", res.Metrics.F1)
	fmt.Fprintf(w, "AUC\t%.3f\n", res.Metrics.AUC)
}

func renderCorrelations(w io.Writer, res *pipeline.Result, top int) {
	table := res.Correlations.Top(top)
	if len(table) == 0 {
		return
	}

	fmt.Fprintf(w, "\nCorrelation with churn\n")
	for i, c := range table {
		fmt.Fprintf(w, "%d\t%s\t%+.3f\n", i+1, c.Feature, c.R)
	}
}

func renderExplanations(w io.Writer, res *pipeline.Result) {
	if len(res.Explanations) == 0 {
		return
	}

	fmt.Fprintf(w, "\nExplained test rows\n")
	for _, e := range res.Explanations {
		fmt.Fprintf(w, "row %d\tp=%.3f\t%s\n", e.Row, e.Probability, classLabel(e.Class))
		for _, f := range e.Features {
			fmt.Fprintf(w, "\t%s\t%+.3f\t%s\n", f.Feature, f.Weight, f.Direction)
		}
	}
}

func renderLoss(w io.Writer, res *pipeline.Result) {
	if len(res.TrainLoss) == 0 {
		return
	}

	fmt.Fprintf(w, "\nLoss\tfirst epoch\tfinal epoch\n")
	fmt.Fprintf(w, "train\t%.3f\t%.3f\n", res.TrainLoss[0], res.TrainLoss[len(res.TrainLoss)-1])
	if len(res.ValLoss) > 0 {
		fmt.Fprintf(w, "validation\t%.3f\t%.3f\n", res.ValLoss[0], res.ValLoss[len(res.ValLoss)-1])
	}
}

func classLabel(class int) string {
	if class == 1 {
		return "churn"
	}
	return "no churn"
}

// WriteJSON writes the full result as an indented JSON artifact,
// creating the parent directory if needed.
func WriteJSON(path string, res *pipeline.Result) error {
	if res == nil {
		return errors.New("no result to write")
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
