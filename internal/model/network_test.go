// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package model

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

// blobData returns n rows of two interleaved 2-feature classes
// centered at (-2, -2) and (2, 2) with small uniform noise, so the
// classes are linearly separable with a wide margin.
func blobData(n int) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(7))
	features := make([][]float64, n)
	labels := make([]float64, n)

	for i := 0; i < n; i++ {
		label := float64(i % 2)
		center := -2.0
		if label == 1 {
			center = 2.0
		}
		features[i] = []float64{
			center + rng.Float64() - 0.5,
			center + rng.Float64() - 0.5,
		}
		labels[i] = label
	}

	return features, labels
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.HiddenUnits = []int{8}
	cfg.Dropout = 0
	cfg.LearningRate = 0.01
	cfg.Epochs = 30
	cfg.BatchSize = 16
	cfg.ValidationSplit = 0.3
	cfg.Seed = 42
	cfg.Workers = 2
	return cfg
}

func trainedClassifier(t *testing.T) (*Classifier, [][]float64, []float64) {
	t.Helper()

	features, labels := blobData(200)
	c := New(testConfig())
	if err := c.Train(context.Background(), features, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return c, features, labels
}

func TestNewClampsConfig(t *testing.T) {
	c := New(Config{})

	if got := c.config.HiddenUnits; len(got) != 2 || got[0] != 16 || got[1] != 16 {
		t.Errorf("HiddenUnits = %v, want [16 16]", got)
	}
	if c.config.LearningRate != 0.001 {
		t.Errorf("LearningRate = %v, want 0.001", c.config.LearningRate)
	}
	if c.config.Beta1 != 0.9 || c.config.Beta2 != 0.999 {
		t.Errorf("Beta1, Beta2 = %v, %v, want 0.9, 0.999", c.config.Beta1, c.config.Beta2)
	}
	if c.config.Epsilon != 1e-7 {
		t.Errorf("Epsilon = %v, want 1e-7", c.config.Epsilon)
	}
	if c.config.Epochs != 35 {
		t.Errorf("Epochs = %v, want 35", c.config.Epochs)
	}
	if c.config.BatchSize != 50 {
		t.Errorf("BatchSize = %v, want 50", c.config.BatchSize)
	}
	if c.config.Workers < 1 {
		t.Errorf("Workers = %v, want at least 1", c.config.Workers)
	}

	// Zero dropout and zero validation split are valid settings, not
	// missing ones.
	if c.config.Dropout != 0 {
		t.Errorf("Dropout = %v, want 0", c.config.Dropout)
	}
	if c.config.ValidationSplit != 0 {
		t.Errorf("ValidationSplit = %v, want 0", c.config.ValidationSplit)
	}

	c = New(Config{HiddenUnits: []int{0, -3, 32}, Dropout: -0.5, ValidationSplit: 1.5})
	if got := c.config.HiddenUnits; len(got) != 3 || got[0] != 16 || got[1] != 16 || got[2] != 32 {
		t.Errorf("HiddenUnits = %v, want [16 16 32]", got)
	}
	if c.config.Dropout != 0.1 {
		t.Errorf("Dropout = %v, want 0.1", c.config.Dropout)
	}
	if c.config.ValidationSplit != 0.3 {
		t.Errorf("ValidationSplit = %v, want 0.3", c.config.ValidationSplit)
	}
}

func TestNewCopiesHiddenUnits(t *testing.T) {
	units := []int{8, 4}
	c := New(Config{HiddenUnits: units})

	units[0] = 99
	if c.config.HiddenUnits[0] != 8 {
		t.Errorf("HiddenUnits[0] = %d, want 8 after caller mutation", c.config.HiddenUnits[0])
	}
}

func TestTrainLossDecreases(t *testing.T) {
	c, _, _ := trainedClassifier(t)

	tl := c.TrainLoss()
	if len(tl) != 30 {
		t.Fatalf("len(TrainLoss()) = %d, want 30", len(tl))
	}
	if tl[len(tl)-1] >= tl[0] {
		t.Errorf("training loss did not decrease: first %v, last %v", tl[0], tl[len(tl)-1])
	}

	vl := c.ValLoss()
	if len(vl) != 30 {
		t.Fatalf("len(ValLoss()) = %d, want 30", len(vl))
	}
	if vl[len(vl)-1] >= vl[0] {
		t.Errorf("validation loss did not decrease: first %v, last %v", vl[0], vl[len(vl)-1])
	}
}

func TestTrainLearnsSeparableData(t *testing.T) {
	c, features, labels := trainedClassifier(t)

	classes, err := c.Classify(features, 0.5)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	correct := 0
	for i, class := range classes {
		if float64(class) == labels[i] {
			correct++
		}
	}
	acc := float64(correct) / float64(len(labels))
	if acc < 0.9 {
		t.Errorf("accuracy = %v, want at least 0.9", acc)
	}
}

func TestTrainReproducible(t *testing.T) {
	features, labels := blobData(120)
	cfg := testConfig()
	cfg.Dropout = 0.1

	a := New(cfg)
	if err := a.Train(context.Background(), features, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	b := New(cfg)
	if err := b.Train(context.Background(), features, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	pa, err := a.PredictProba(features)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	pb, err := b.PredictProba(features)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("probability %d differs across identical seeds: %v vs %v", i, pa[i], pb[i])
		}
	}

	cfg.Seed = 43
	d := New(cfg)
	if err := d.Train(context.Background(), features, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	pd, err := d.PredictProba(features)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}

	same := true
	for i := range pa {
		if pa[i] != pd[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical probabilities")
	}
}

func TestTrainSeedZero(t *testing.T) {
	features, labels := blobData(60)
	cfg := testConfig()
	cfg.Seed = 0
	cfg.Epochs = 3

	c := New(cfg)
	if err := c.Train(context.Background(), features, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if !c.IsTrained() {
		t.Fatal("IsTrained() = false after successful training")
	}

	probs, err := c.PredictProba(features)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	for i, p := range probs {
		if p <= 0 || p >= 1 {
			t.Errorf("probs[%d] = %v, want in (0, 1)", i, p)
		}
	}
}

func TestTrainContextCancelled(t *testing.T) {
	features, labels := blobData(60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(testConfig())
	err := c.Train(ctx, features, labels)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Train() error = %v, want context.Canceled", err)
	}
	if c.IsTrained() {
		t.Error("cancelled training marked the model trained")
	}
}

func TestTrainInputValidation(t *testing.T) {
	tests := []struct {
		name     string
		features [][]float64
		labels   []float64
		wantErr  string
	}{
		{
			name:    "no rows",
			wantErr: "at least one row",
		},
		{
			name:     "label count mismatch",
			features: [][]float64{{1, 2}},
			labels:   []float64{1, 0},
			wantErr:  "differ",
		},
		{
			name:     "empty row",
			features: [][]float64{{}},
			labels:   []float64{1},
			wantErr:  "at least one feature",
		},
		{
			name:     "ragged rows",
			features: [][]float64{{1, 2}, {3}},
			labels:   []float64{1, 0},
			wantErr:  "row 1 has 1 features, want 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(testConfig()).Train(context.Background(), tt.features, tt.labels)
			if err == nil {
				t.Fatal("Train() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Train() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestTrainValidationSplitLeavesNoRows(t *testing.T) {
	cfg := testConfig()
	cfg.ValidationSplit = 0.9

	err := New(cfg).Train(context.Background(), [][]float64{{1, 2}}, []float64{1})
	if err == nil {
		t.Fatal("Train() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "no training rows") {
		t.Errorf("Train() error = %q, want substring %q", err, "no training rows")
	}
}

func TestTrainWithoutHoldout(t *testing.T) {
	features, labels := blobData(60)
	cfg := testConfig()
	cfg.ValidationSplit = 0
	cfg.Epochs = 5

	c := New(cfg)
	if err := c.Train(context.Background(), features, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if got := len(c.TrainLoss()); got != 5 {
		t.Errorf("len(TrainLoss()) = %d, want 5", got)
	}
	if got := len(c.ValLoss()); got != 0 {
		t.Errorf("len(ValLoss()) = %d, want 0 without a holdout", got)
	}
}

func TestPredictBeforeTrain(t *testing.T) {
	c := New(testConfig())
	rows := [][]float64{{1, 2}}

	if _, err := c.PredictProba(rows); err == nil {
		t.Error("PredictProba() error = nil before training")
	}
	if _, err := c.Classify(rows, 0.5); err == nil {
		t.Error("Classify() error = nil before training")
	}
	if _, err := c.PredictProbabilities(rows); err == nil {
		t.Error("PredictProbabilities() error = nil before training")
	}
}

func TestPredictDimensionMismatch(t *testing.T) {
	c, _, _ := trainedClassifier(t)

	_, err := c.PredictProba([][]float64{{1, 2, 3}})
	if err == nil {
		t.Fatal("PredictProba() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "want 2") {
		t.Errorf("PredictProba() error = %q, want substring %q", err, "want 2")
	}
}

func TestPredictEmptyInput(t *testing.T) {
	c, _, _ := trainedClassifier(t)

	probs, err := c.PredictProba(nil)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	if probs != nil {
		t.Errorf("PredictProba(nil) = %v, want nil", probs)
	}
}

func TestClassifyMatchesThreshold(t *testing.T) {
	c, features, _ := trainedClassifier(t)

	probs, err := c.PredictProba(features)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}

	for _, threshold := range []float64{0.5, 0.9} {
		classes, err := c.Classify(features, threshold)
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		for i, p := range probs {
			want := 0
			if p > threshold {
				want = 1
			}
			if classes[i] != want {
				t.Errorf("Classify()[%d] = %d at threshold %v, want %d for probability %v",
					i, classes[i], threshold, want, p)
			}
		}
	}
}

func TestPredictProbabilitiesPairs(t *testing.T) {
	c, features, _ := trainedClassifier(t)

	probs, err := c.PredictProba(features)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	pairs, err := c.PredictProbabilities(features)
	if err != nil {
		t.Fatalf("PredictProbabilities() error = %v", err)
	}
	if len(pairs) != len(probs) {
		t.Fatalf("len(pairs) = %d, want %d", len(pairs), len(probs))
	}

	for i, pair := range pairs {
		if pair[0] != probs[i] {
			t.Errorf("pairs[%d][0] = %v, want %v", i, pair[0], probs[i])
		}
		if sum := pair[0] + pair[1]; math.Abs(sum-1) > 1e-12 {
			t.Errorf("pairs[%d] sums to %v, want 1", i, sum)
		}
	}
}

func TestDropoutInactiveAtInference(t *testing.T) {
	features, labels := blobData(80)
	cfg := testConfig()
	cfg.Dropout = 0.5
	cfg.Epochs = 5

	c := New(cfg)
	if err := c.Train(context.Background(), features, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	p1, err := c.PredictProba(features)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	p2, err := c.PredictProba(features)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("repeated predictions differ at %d: %v vs %v", i, p1[i], p2[i])
		}
	}
}

func TestLossHistoryCopies(t *testing.T) {
	c, _, _ := trainedClassifier(t)

	tl := c.TrainLoss()
	tl[0] = 999
	if c.TrainLoss()[0] == 999 {
		t.Error("TrainLoss() exposes internal state")
	}

	vl := c.ValLoss()
	vl[0] = 999
	if c.ValLoss()[0] == 999 {
		t.Error("ValLoss() exposes internal state")
	}
}
