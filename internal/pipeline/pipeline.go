// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/churnlab/internal/config"
	"github.com/tomtom215/churnlab/internal/correlate"
	"github.com/tomtom215/churnlab/internal/dataset"
	"github.com/tomtom215/churnlab/internal/evaluate"
	"github.com/tomtom215/churnlab/internal/explain"
	"github.com/tomtom215/churnlab/internal/logging"
	"github.com/tomtom215/churnlab/internal/model"
	"github.com/tomtom215/churnlab/internal/recipe"
)

// The classifier must stay explainable through the first-class
// predictor interface.
var _ explain.ProbabilityPredictor = (*model.Classifier)(nil)

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Stage      string `json:"stage"`
	DurationMS int64  `json:"duration_ms"`
}

// Result is the complete outcome of one pipeline run.
type Result struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`

	DataPath  string   `json:"data_path"`
	Rows      int      `json:"rows"`
	TrainRows int      `json:"train_rows"`
	TestRows  int      `json:"test_rows"`
	Features  []string `json:"features"`

	Metrics      evaluate.Result       `json:"metrics"`
	Correlations correlate.Table       `json:"correlations"`
	Explanations []explain.Explanation `json:"explanations"`

	TrainLoss []float64 `json:"train_loss"`
	ValLoss   []float64 `json:"val_loss,omitempty"`

	Timings []StageTiming `json:"timings"`
}

// Runner executes churn modeling runs for one validated
// configuration.
type Runner struct {
	config *config.Config
	logger zerolog.Logger
}

// New creates a runner after validating the configuration.
func New(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Runner{
		config: cfg,
		logger: logging.With().Str("component", "pipeline").Logger(),
	}, nil
}

// Run executes the full pipeline and returns its result.
//
//nolint:gocyclo // one linear stage sequence with per-stage error handling
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := r.logger.With().Str("run_id", runID).Logger()

	logger.Info().
		Str("data_path", r.config.Data.Path).
		Msg("Pipeline run starting")

	var timings []StageTiming
	stageDone := func(name string, stageStart time.Time) {
		ms := time.Since(stageStart).Milliseconds()
		timings = append(timings, StageTiming{Stage: name, DurationMS: ms})
		logger.Debug().Str("stage", name).Int64("duration_ms", ms).Msg("Stage complete")
	}

	if model.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	stageStart := time.Now()
	table, err := dataset.Load(r.config.Data.Path, r.loadOptions())
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	stageDone("load", stageStart)

	stageStart = time.Now()
	split, err := table.Split(r.config.Split.TrainFraction, r.config.Split.Seed)
	if err != nil {
		return nil, fmt.Errorf("split dataset: %w", err)
	}
	stageDone("split", stageStart)

	if model.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	stageStart = time.Now()
	rec := recipe.New(r.recipeConfig())
	if err := rec.Fit(split.Train); err != nil {
		return nil, fmt.Errorf("fit recipe: %w", err)
	}
	trainM, trainY, err := rec.Bake(split.Train)
	if err != nil {
		return nil, fmt.Errorf("bake training table: %w", err)
	}
	testM, testY, err := rec.Bake(split.Test)
	if err != nil {
		return nil, fmt.Errorf("bake test table: %w", err)
	}
	stageDone("recipe", stageStart)

	logger.Info().
		Int("rows", table.NumRows()).
		Int("train_rows", trainM.NumRows()).
		Int("test_rows", testM.NumRows()).
		Int("features", trainM.NumFeatures()).
		Msg("Feature matrices prepared")

	stageStart = time.Now()
	clf := model.New(r.modelConfig())
	if err := clf.Train(ctx, trainM.Data, trainY); err != nil {
		return nil, fmt.Errorf("train classifier: %w", err)
	}
	stageDone("train", stageStart)

	if model.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	stageStart = time.Now()
	probs, err := clf.PredictProba(testM.Data)
	if err != nil {
		return nil, fmt.Errorf("score test rows: %w", err)
	}
	actual := make([]int, len(testY))
	for i, v := range testY {
		if v == 1 {
			actual[i] = 1
		}
	}
	metrics, err := evaluate.Evaluate(probs, actual, r.config.Evaluate.Threshold)
	if err != nil {
		return nil, fmt.Errorf("evaluate predictions: %w", err)
	}
	stageDone("evaluate", stageStart)

	stageStart = time.Now()
	correlations, err := correlate.Rank(trainM, trainY)
	if err != nil {
		return nil, fmt.Errorf("rank correlations: %w", err)
	}
	stageDone("correlate", stageStart)

	if model.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	stageStart = time.Now()
	explanations, err := r.explainRows(clf, trainM, testM)
	if err != nil {
		return nil, fmt.Errorf("explain predictions: %w", err)
	}
	stageDone("explain", stageStart)

	result := &Result{
		RunID:        runID,
		StartedAt:    start,
		DurationMS:   time.Since(start).Milliseconds(),
		DataPath:     r.config.Data.Path,
		Rows:         table.NumRows(),
		TrainRows:    trainM.NumRows(),
		TestRows:     testM.NumRows(),
		Features:     trainM.Columns,
		Metrics:      metrics,
		Correlations: correlations,
		Explanations: explanations,
		TrainLoss:    clf.TrainLoss(),
		ValLoss:      clf.ValLoss(),
		Timings:      timings,
	}

	logger.Info().
		Float64("accuracy", metrics.Accuracy).
		Float64("auc", metrics.AUC).
		Float64("f1", metrics.F1).
		Int64("duration_ms", result.DurationMS).
		Msg("Pipeline run complete")

	return result, nil
}

// explainRows explains the leading test rows through the fitted
// classifier, or none when explanation is disabled.
func (r *Runner) explainRows(clf *model.Classifier, trainM, testM *recipe.Matrix) ([]explain.Explanation, error) {
	n := r.config.Explain.Rows
	if n <= 0 {
		return nil, nil
	}
	if n > testM.NumRows() {
		n = testM.NumRows()
	}

	explainer, err := explain.New(clf, trainM, r.explainConfig())
	if err != nil {
		return nil, err
	}
	return explainer.Explain(testM.Data[:n])
}

// loadOptions translates the data section of the run configuration.
// Columns the recipe needs are required up front so a typo fails
// before any transformation runs.
func (r *Runner) loadOptions() dataset.LoadOptions {
	var required []string
	if r.config.Recipe.DiscretizeColumn != "" {
		required = append(required, r.config.Recipe.DiscretizeColumn)
	}
	required = append(required, r.config.Recipe.LogColumns...)

	return dataset.LoadOptions{
		IDColumn:        r.config.Data.IDColumn,
		TargetColumn:    r.config.Data.TargetColumn,
		PositiveClass:   r.config.Data.PositiveClass,
		NumericColumns:  r.config.Data.NumericColumns,
		RequiredColumns: required,
	}
}

func (r *Runner) recipeConfig() recipe.Config {
	return recipe.Config{
		DiscretizeColumn: r.config.Recipe.DiscretizeColumn,
		Bins:             r.config.Recipe.Bins,
		LogColumns:       r.config.Recipe.LogColumns,
		PositiveClass:    r.config.Data.PositiveClass,
	}
}

func (r *Runner) modelConfig() model.Config {
	return model.Config{
		HiddenUnits:     r.config.Model.HiddenUnits,
		Dropout:         r.config.Model.Dropout,
		LearningRate:    r.config.Model.LearningRate,
		Epochs:          r.config.Model.Epochs,
		BatchSize:       r.config.Model.BatchSize,
		ValidationSplit: r.config.Model.ValidationSplit,
		Seed:            r.config.Model.Seed,
		Workers:         r.config.Model.Workers,
	}
}

func (r *Runner) explainConfig() explain.Config {
	return explain.Config{
		Samples:     r.config.Explain.Samples,
		KernelWidth: r.config.Explain.KernelWidth,
		MaxFeatures: r.config.Explain.MaxFeatures,
		Seed:        r.config.Explain.Seed,
	}
}
