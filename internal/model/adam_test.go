// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package model

import (
	"math"
	"testing"
)

func singleParam(w float64) ([][][]float64, [][]float64) {
	return [][][]float64{{{w}}}, [][]float64{{0}}
}

func TestAdamFirstStep(t *testing.T) {
	weights, biases := singleParam(0)
	opt := newAdam(0.001, 0.9, 0.999, 1e-7, weights, biases)

	gradW := [][][]float64{{{1}}}
	gradB := [][]float64{{0}}
	opt.step(weights, biases, gradW, gradB)

	// Bias correction makes the first step approximately the learning
	// rate, regardless of gradient magnitude.
	if got := weights[0][0][0]; math.Abs(got-(-0.001)) > 1e-6 {
		t.Errorf("weight after first step = %v, want about -0.001", got)
	}
	if biases[0][0] != 0 {
		t.Errorf("bias moved to %v on zero gradient, want 0", biases[0][0])
	}
}

func TestAdamSmallGradientStillSteps(t *testing.T) {
	weights, biases := singleParam(0)
	opt := newAdam(0.001, 0.9, 0.999, 1e-7, weights, biases)

	gradW := [][][]float64{{{1e-4}}}
	gradB := [][]float64{{0}}
	opt.step(weights, biases, gradW, gradB)

	if got := weights[0][0][0]; got > -0.0009 {
		t.Errorf("weight after first step = %v, want below -0.0009", got)
	}
}

func TestAdamConvergesOnQuadratic(t *testing.T) {
	weights, biases := singleParam(0)
	opt := newAdam(0.01, 0.9, 0.999, 1e-7, weights, biases)
	gradW, gradB := gradsLike(weights, biases)

	// Minimize (w - 3)^2 by following its gradient.
	for i := 0; i < 3000; i++ {
		gradW[0][0][0] = 2 * (weights[0][0][0] - 3)
		opt.step(weights, biases, gradW, gradB)
	}

	if got := weights[0][0][0]; math.Abs(got-3) > 0.05 {
		t.Errorf("weight = %v, want within 0.05 of 3", got)
	}
}

func TestAdamStepCounter(t *testing.T) {
	weights, biases := singleParam(0)
	opt := newAdam(0.001, 0.9, 0.999, 1e-7, weights, biases)
	gradW, gradB := gradsLike(weights, biases)

	for i := 0; i < 4; i++ {
		opt.step(weights, biases, gradW, gradB)
	}
	if opt.t != 4 {
		t.Errorf("step counter = %d, want 4", opt.t)
	}
	// Zero gradients leave parameters untouched.
	if weights[0][0][0] != 0 || biases[0][0] != 0 {
		t.Errorf("parameters moved on zero gradients: w=%v b=%v", weights[0][0][0], biases[0][0])
	}
}

func TestGradHelpers(t *testing.T) {
	weights := [][][]float64{{{1, 2}, {3, 4}}, {{5, 6}}}
	biases := [][]float64{{1, 2}, {3}}

	gw, gb := gradsLike(weights, biases)
	if len(gw) != 2 || len(gw[0]) != 2 || len(gw[0][0]) != 2 || len(gw[1]) != 1 {
		t.Fatalf("gradsLike weight shape mismatch: %v", gw)
	}
	if len(gb) != 2 || len(gb[0]) != 2 || len(gb[1]) != 1 {
		t.Fatalf("gradsLike bias shape mismatch: %v", gb)
	}

	gw[0][1][0] = 4
	gb[1][0] = 2
	scaleGrads(gw, gb, 0.5)
	if gw[0][1][0] != 2 {
		t.Errorf("scaled weight gradient = %v, want 2", gw[0][1][0])
	}
	if gb[1][0] != 1 {
		t.Errorf("scaled bias gradient = %v, want 1", gb[1][0])
	}

	zeroGrads(gw, gb)
	if gw[0][1][0] != 0 || gb[1][0] != 0 {
		t.Errorf("zeroGrads left gradients at %v, %v", gw[0][1][0], gb[1][0])
	}
}
