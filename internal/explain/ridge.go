// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package explain

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// designMatrix builds the regression design with a leading intercept
// column followed by the selected sample coordinates, in order.
func designMatrix(samples [][]float64, selected []int) *mat.Dense {
	n := len(samples)
	dim := len(selected) + 1

	d := mat.NewDense(n, dim, nil)
	for i, z := range samples {
		d.Set(i, 0, 1)
		for c, j := range selected {
			d.Set(i, c+1, z[j])
		}
	}
	return d
}

// weightedRidge solves the weighted ridge normal equations
// (XᵀWX + λI)β = XᵀWy and returns β with the intercept first. The
// intercept is not penalized.
func weightedRidge(design *mat.Dense, y, weights []float64, lambda float64) ([]float64, error) {
	n, dim := design.Dims()

	// Folding sqrt(w) into the design turns the weighted problem
	// into an ordinary one.
	xw := mat.NewDense(n, dim, nil)
	yw := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		sw := math.Sqrt(weights[i])
		for j := 0; j < dim; j++ {
			xw.Set(i, j, sw*design.At(i, j))
		}
		yw.SetVec(i, sw*y[i])
	}

	var xtx mat.Dense
	xtx.Mul(xw.T(), xw)

	sym := mat.NewSymDense(dim, nil)
	for p := 0; p < dim; p++ {
		for q := p; q < dim; q++ {
			sym.SetSym(p, q, xtx.At(p, q))
		}
	}
	for p := 1; p < dim; p++ {
		sym.SetSym(p, p, sym.At(p, p)+lambda)
	}

	var xty mat.VecDense
	xty.MulVec(xw.T(), yw)

	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		// Degenerate kernel weights can zero the intercept row;
		// penalizing the full diagonal restores definiteness.
		for p := 0; p < dim; p++ {
			sym.SetSym(p, p, sym.At(p, p)+lambda)
		}
		if !chol.Factorize(sym) {
			return nil, errors.New("ridge normal equations are not positive definite")
		}
	}

	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, fmt.Errorf("solve ridge system: %w", err)
	}

	out := make([]float64, dim)
	for p := 0; p < dim; p++ {
		out[p] = beta.AtVec(p)
	}
	return out, nil
}
