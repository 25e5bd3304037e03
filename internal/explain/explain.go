// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package explain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/tomtom215/churnlab/internal/recipe"
)

// ProbabilityPredictor is the classifier surface the explainer
// operates on.
type ProbabilityPredictor interface {
	// PredictProbabilities returns one [positive, negative]
	// probability pair per input row; the pair sums to 1.
	PredictProbabilities(features [][]float64) ([][2]float64, error)
}

// Direction labels how a feature weight relates to the predicted
// class.
const (
	DirectionSupports    = "supports"
	DirectionContradicts = "contradicts"
)

// Config contains configuration for the explainer.
type Config struct {
	// Samples is the number of perturbed vectors drawn per
	// explained row.
	Samples int

	// KernelWidth sets the proximity kernel exp(-d^2/w^2).
	KernelWidth float64

	// MaxFeatures caps the number of reported features per row.
	MaxFeatures int

	// Ridge is the L2 term added to the surrogate normal equations.
	Ridge float64

	// Seed drives perturbation sampling. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns default explainer configuration.
func DefaultConfig() Config {
	return Config{
		Samples:     5000,
		KernelWidth: 0.5,
		MaxFeatures: 4,
		Ridge:       1e-3,
		Seed:        42,
	}
}

// FeatureWeight is one ranked feature of an explanation.
type FeatureWeight struct {
	Feature   string  `json:"feature"`
	Weight    float64 `json:"weight"`
	Direction string  `json:"direction"`
}

// Explanation is the ranked local surrogate for one explained row.
type Explanation struct {
	// Row is the index of the explained row in the input slice.
	Row int `json:"row"`

	// Probability is the model's positive-class probability for the
	// row; Class is that probability thresholded at 0.5.
	Probability float64 `json:"probability"`
	Class       int     `json:"class"`

	Features []FeatureWeight `json:"features"`
}

// Explainer perturbs rows against training marginals and fits local
// surrogates through a ProbabilityPredictor.
type Explainer struct {
	config    Config
	predictor ProbabilityPredictor

	featureNames []string
	// marginals[j] holds the training values of feature j, the
	// empirical distribution perturbed coordinates resample from.
	marginals [][]float64
}

// New creates an explainer over the given predictor and baked
// training matrix.
func New(predictor ProbabilityPredictor, train *recipe.Matrix, cfg Config) (*Explainer, error) {
	if predictor == nil {
		return nil, errors.New("explainer requires a predictor")
	}
	if train == nil || train.NumRows() == 0 || train.NumFeatures() == 0 {
		return nil, errors.New("explainer requires a non-empty training matrix")
	}

	if cfg.Samples <= 0 {
		cfg.Samples = 5000
	}
	if cfg.KernelWidth <= 0 {
		cfg.KernelWidth = 0.5
	}
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = 4
	}
	if cfg.Ridge <= 0 {
		cfg.Ridge = 1e-3
	}

	names := make([]string, len(train.Columns))
	copy(names, train.Columns)

	marginals := make([][]float64, train.NumFeatures())
	for j := range marginals {
		marginals[j] = train.Column(j)
	}

	return &Explainer{
		config:       cfg,
		predictor:    predictor,
		featureNames: names,
		marginals:    marginals,
	}, nil
}

// Explain produces one explanation per input row. With a non-zero
// seed, repeated calls over the same rows yield identical
// explanations.
func (e *Explainer) Explain(rows [][]float64) ([]Explanation, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	for i, row := range rows {
		if len(row) != len(e.featureNames) {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), len(e.featureNames))
		}
	}

	pairs, err := e.predictor.PredictProbabilities(rows)
	if err != nil {
		return nil, fmt.Errorf("score explained rows: %w", err)
	}
	if len(pairs) != len(rows) {
		return nil, fmt.Errorf("predictor returned %d pairs for %d rows", len(pairs), len(rows))
	}

	seed := e.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible sampling, not cryptographic

	out := make([]Explanation, len(rows))
	for i, row := range rows {
		exp, err := e.explainRow(row, i, pairs[i][0], rng)
		if err != nil {
			return nil, fmt.Errorf("explain row %d: %w", i, err)
		}
		out[i] = exp
	}
	return out, nil
}

// explainRow fits the local surrogate for a single row.
func (e *Explainer) explainRow(x []float64, rowIdx int, prob float64, rng *rand.Rand) (Explanation, error) {
	k := len(e.featureNames)

	samples := make([][]float64, e.config.Samples)
	for s := range samples {
		z := make([]float64, k)
		for j := 0; j < k; j++ {
			if rng.Float64() < 0.5 {
				z[j] = e.marginals[j][rng.Intn(len(e.marginals[j]))]
			} else {
				z[j] = x[j]
			}
		}
		samples[s] = z
	}

	pairs, err := e.predictor.PredictProbabilities(samples)
	if err != nil {
		return Explanation{}, fmt.Errorf("score perturbed samples: %w", err)
	}
	if len(pairs) != len(samples) {
		return Explanation{}, fmt.Errorf("predictor returned %d pairs for %d samples", len(pairs), len(samples))
	}
	y := make([]float64, len(pairs))
	for s, pair := range pairs {
		y[s] = pair[0]
	}

	w2 := e.config.KernelWidth * e.config.KernelWidth
	weights := make([]float64, len(samples))
	for s, z := range samples {
		var d2 float64
		for j := range z {
			diff := z[j] - x[j]
			d2 += diff * diff
		}
		weights[s] = math.Exp(-d2 / w2)
	}

	all := make([]int, k)
	for j := range all {
		all[j] = j
	}
	beta, err := weightedRidge(designMatrix(samples, all), y, weights, e.config.Ridge)
	if err != nil {
		return Explanation{}, err
	}

	// Rank coefficients by magnitude, intercept excluded, and refit
	// on the winners alone.
	sort.SliceStable(all, func(a, b int) bool {
		return math.Abs(beta[all[a]+1]) > math.Abs(beta[all[b]+1])
	})
	m := e.config.MaxFeatures
	if m > k {
		m = k
	}
	selected := all[:m]

	refit, err := weightedRidge(designMatrix(samples, selected), y, weights, e.config.Ridge)
	if err != nil {
		return Explanation{}, err
	}

	class := 0
	if prob >= 0.5 {
		class = 1
	}

	feats := make([]FeatureWeight, m)
	for i, j := range selected {
		w := refit[i+1]
		supports := w > 0
		if class == 0 {
			supports = w < 0
		}
		dir := DirectionContradicts
		if supports {
			dir = DirectionSupports
		}
		feats[i] = FeatureWeight{Feature: e.featureNames[j], Weight: w, Direction: dir}
	}
	sort.SliceStable(feats, func(a, b int) bool {
		return math.Abs(feats[a].Weight) > math.Abs(feats[b].Weight)
	})

	return Explanation{
		Row:         rowIdx,
		Probability: prob,
		Class:       class,
		Features:    feats,
	}, nil
}
