// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package model

import "math"

// adam holds Adam optimizer state for every weight and bias in the
// network. First and second moment estimates are kept in the same
// shape as the parameters they track.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma, Ba, 2015)
type adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64

	// t counts optimizer steps for bias correction.
	t int

	mW [][][]float64
	vW [][][]float64
	mB [][]float64
	vB [][]float64
}

// newAdam creates optimizer state shaped like the given parameters.
func newAdam(lr, beta1, beta2, eps float64, weights [][][]float64, biases [][]float64) *adam {
	mW, mB := gradsLike(weights, biases)
	vW, vB := gradsLike(weights, biases)

	return &adam{
		lr:    lr,
		beta1: beta1,
		beta2: beta2,
		eps:   eps,
		mW:    mW,
		vW:    vW,
		mB:    mB,
		vB:    vB,
	}
}

// step applies one bias-corrected Adam update to weights and biases
// in place using the accumulated gradients.
func (a *adam) step(weights [][][]float64, biases [][]float64, gradW [][][]float64, gradB [][]float64) {
	a.t++
	corr1 := 1 - math.Pow(a.beta1, float64(a.t))
	corr2 := 1 - math.Pow(a.beta2, float64(a.t))

	for l := range weights {
		for j := range weights[l] {
			for i := range weights[l][j] {
				g := gradW[l][j][i]
				m := a.beta1*a.mW[l][j][i] + (1-a.beta1)*g
				v := a.beta2*a.vW[l][j][i] + (1-a.beta2)*g*g
				a.mW[l][j][i] = m
				a.vW[l][j][i] = v
				weights[l][j][i] -= a.lr * (m / corr1) / (math.Sqrt(v/corr2) + a.eps)
			}

			g := gradB[l][j]
			m := a.beta1*a.mB[l][j] + (1-a.beta1)*g
			v := a.beta2*a.vB[l][j] + (1-a.beta2)*g*g
			a.mB[l][j] = m
			a.vB[l][j] = v
			biases[l][j] -= a.lr * (m / corr1) / (math.Sqrt(v/corr2) + a.eps)
		}
	}
}

// gradsLike allocates zeroed gradient accumulators shaped like the
// given parameters.
func gradsLike(weights [][][]float64, biases [][]float64) ([][][]float64, [][]float64) {
	gw := make([][][]float64, len(weights))
	for l := range weights {
		gw[l] = make([][]float64, len(weights[l]))
		for j := range weights[l] {
			gw[l][j] = make([]float64, len(weights[l][j]))
		}
	}

	gb := make([][]float64, len(biases))
	for l := range biases {
		gb[l] = make([]float64, len(biases[l]))
	}

	return gw, gb
}

// zeroGrads resets gradient accumulators between batches.
func zeroGrads(gradW [][][]float64, gradB [][]float64) {
	for l := range gradW {
		for j := range gradW[l] {
			for i := range gradW[l][j] {
				gradW[l][j][i] = 0
			}
		}
	}
	for l := range gradB {
		for j := range gradB[l] {
			gradB[l][j] = 0
		}
	}
}

// scaleGrads multiplies accumulated gradients by s, turning per-batch
// sums into means.
func scaleGrads(gradW [][][]float64, gradB [][]float64, s float64) {
	for l := range gradW {
		for j := range gradW[l] {
			for i := range gradW[l][j] {
				gradW[l][j][i] *= s
			}
		}
	}
	for l := range gradB {
		for j := range gradB[l] {
			gradB[l][j] *= s
		}
	}
}
