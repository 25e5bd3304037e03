// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Split holds the disjoint train/test partition of a cleaned table.
type Split struct {
	Train *Table
	Test  *Table
}

// Split partitions the table into ceil(N * trainFraction) training rows and
// the remainder as test rows, selected by a seeded permutation. The same
// seed always yields the same partition. Both sides preserve the relative
// row order of the source table.
func (t *Table) Split(trainFraction float64, seed int64) (Split, error) {
	n := t.NumRows()
	trainSize := int(math.Ceil(float64(n) * trainFraction))
	if trainSize >= n {
		return Split{}, fmt.Errorf("table with %d rows leaves no test rows at fraction %v", n, trainFraction)
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible partition, not cryptographic
	perm := rng.Perm(n)

	trainIdx := append([]int(nil), perm[:trainSize]...)
	testIdx := append([]int(nil), perm[trainSize:]...)
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	return Split{
		Train: t.subset(trainIdx),
		Test:  t.subset(testIdx),
	}, nil
}
