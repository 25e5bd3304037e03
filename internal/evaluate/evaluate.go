// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package evaluate

import (
	"errors"
	"fmt"
	"sort"
)

// ConfusionMatrix counts test outcomes against the positive class.
type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
}

// Confusion tallies predicted against actual labels. Any non-zero
// label counts as the positive class.
func Confusion(predicted, actual []int) (ConfusionMatrix, error) {
	if len(predicted) != len(actual) {
		return ConfusionMatrix{}, fmt.Errorf("predictions (%d) and actuals (%d) differ", len(predicted), len(actual))
	}

	var m ConfusionMatrix
	for i, p := range predicted {
		pred := p != 0
		act := actual[i] != 0
		switch {
		case pred && act:
			m.TruePositives++
		case pred && !act:
			m.FalsePositives++
		case !pred && !act:
			m.TrueNegatives++
		default:
			m.FalseNegatives++
		}
	}
	return m, nil
}

// Total returns the number of scored rows.
func (m ConfusionMatrix) Total() int {
	return m.TruePositives + m.FalsePositives + m.TrueNegatives + m.FalseNegatives
}

// Accuracy returns the fraction of correct predictions.
func (m ConfusionMatrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	return float64(m.TruePositives+m.TrueNegatives) / float64(total)
}

// Precision returns TP / (TP + FP), or zero when nothing was
// predicted positive.
func (m ConfusionMatrix) Precision() float64 {
	denom := m.TruePositives + m.FalsePositives
	if denom == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(denom)
}

// Recall returns TP / (TP + FN), or zero when no row was actually
// positive.
func (m ConfusionMatrix) Recall() float64 {
	denom := m.TruePositives + m.FalseNegatives
	if denom == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(denom)
}

// F1 returns the harmonic mean of precision and recall, or zero when
// both are zero.
func (m ConfusionMatrix) F1() float64 {
	p := m.Precision()
	r := m.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// ROCPoint is one cut of the ROC curve: every row scoring at or above
// Threshold is predicted positive.
type ROCPoint struct {
	Threshold float64 `json:"threshold"`
	FPR       float64 `json:"fpr"`
	TPR       float64 `json:"tpr"`
}

// ROC traces the curve with one point per distinct score, highest
// threshold first, so tied scores enter at a single cut. The leading
// point pins the curve at (0, 0) with a threshold one above the
// highest score, which stays finite for serialization; the final
// point is always (1, 1).
//
// Both classes must appear in actual, otherwise one of the rates has
// no denominator.
func ROC(scores []float64, actual []int) ([]ROCPoint, error) {
	if len(scores) != len(actual) {
		return nil, fmt.Errorf("scores (%d) and actuals (%d) differ", len(scores), len(actual))
	}
	if len(scores) == 0 {
		return nil, errors.New("ROC requires at least one score")
	}

	var pos, neg int
	for _, a := range actual {
		if a != 0 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, errors.New("ROC requires both classes among the actual labels")
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	points := make([]ROCPoint, 0, len(scores)+1)
	points = append(points, ROCPoint{Threshold: scores[order[0]] + 1})

	// Walking scores in descending order accumulates the confusion
	// counts for each cut instead of rescanning per threshold.
	tp, fp := 0, 0
	for i := 0; i < len(order); {
		threshold := scores[order[i]]
		for i < len(order) && scores[order[i]] == threshold {
			if actual[order[i]] != 0 {
				tp++
			} else {
				fp++
			}
			i++
		}
		points = append(points, ROCPoint{
			Threshold: threshold,
			FPR:       float64(fp) / float64(neg),
			TPR:       float64(tp) / float64(pos),
		})
	}

	return points, nil
}

// AUC integrates the area under a ROC curve by the trapezoidal rule.
// Points must be in ascending FPR order, as returned by ROC.
func AUC(points []ROCPoint) float64 {
	var area float64
	for i := 1; i < len(points); i++ {
		area += (points[i].FPR - points[i-1].FPR) * (points[i].TPR + points[i-1].TPR) / 2
	}
	return area
}

// Result bundles every test-set metric for one model run.
type Result struct {
	Confusion ConfusionMatrix `json:"confusion"`
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	ROC       []ROCPoint      `json:"roc"`
	AUC       float64         `json:"auc"`
}

// Evaluate scores predicted probabilities against actual 0/1 labels.
// Rows with probability strictly above the threshold are predicted
// positive, matching the classifier's own cut.
//
// A test set containing a single class fails evaluation outright
// rather than reporting a fabricated AUC.
func Evaluate(probs []float64, actual []int, threshold float64) (Result, error) {
	if len(probs) == 0 {
		return Result{}, errors.New("evaluation requires at least one prediction")
	}

	predicted := make([]int, len(probs))
	for i, p := range probs {
		if p > threshold {
			predicted[i] = 1
		}
	}

	cm, err := Confusion(predicted, actual)
	if err != nil {
		return Result{}, err
	}

	roc, err := ROC(probs, actual)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Confusion: cm,
		Accuracy:  cm.Accuracy(),
		Precision: cm.Precision(),
		Recall:    cm.Recall(),
		F1:        cm.F1(),
		ROC:       roc,
		AUC:       AUC(roc),
	}, nil
}
