// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package dataset

import (
	"testing"
)

// markerTable builds a table whose continuous column holds the row index,
// so partition membership can be traced after splitting.
func markerTable(n int) *Table {
	labels := make([]string, n)
	markers := make([]float64, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			labels[i] = "Yes"
		} else {
			labels[i] = "No"
		}
		markers[i] = float64(i)
	}
	return &Table{
		Columns: []Column{
			{Name: "Churn", Kind: Categorical, Strings: labels},
			{Name: "marker", Kind: Continuous, Floats: markers},
		},
	}
}

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		fraction  float64
		wantTrain int
		wantTest  int
	}{
		{"even 80/20", 10, 0.8, 8, 2},
		{"ceil rounds up", 7, 0.8, 6, 1}, // ceil(5.6) = 6
		{"minimum viable", 5, 0.8, 4, 1},
		{"large table", 1000, 0.8, 800, 200},
		{"other fraction", 10, 0.7, 7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := markerTable(tt.rows).Split(tt.fraction, 42)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if got := split.Train.NumRows(); got != tt.wantTrain {
				t.Errorf("train rows = %d, want %d", got, tt.wantTrain)
			}
			if got := split.Test.NumRows(); got != tt.wantTest {
				t.Errorf("test rows = %d, want %d", got, tt.wantTest)
			}
		})
	}
}

func TestSplitTooSmall(t *testing.T) {
	// ceil(4 * 0.8) = 4: every row lands in train, no test side remains
	_, err := markerTable(4).Split(0.8, 42)
	if err == nil {
		t.Fatal("Split() = nil error, want no-test-rows failure")
	}
}

func TestSplitDeterministic(t *testing.T) {
	table := markerTable(50)

	first, err := table.Split(0.8, 123)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	second, err := table.Split(0.8, 123)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	a := first.Test.Column("marker").Floats
	b := second.Test.Column("marker").Floats
	if len(a) != len(b) {
		t.Fatalf("test sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("same seed produced different partitions at row %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSplitSeedChangesPartition(t *testing.T) {
	table := markerTable(100)

	first, err := table.Split(0.8, 1)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	second, err := table.Split(0.8, 2)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	a := first.Test.Column("marker").Floats
	b := second.Test.Column("marker").Floats
	same := len(a) == len(b)
	if same {
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical test partitions")
	}
}

func TestSplitDisjointAndComplete(t *testing.T) {
	const n = 40
	split, err := markerTable(n).Split(0.8, 7)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	seen := make(map[float64]int)
	for _, v := range split.Train.Column("marker").Floats {
		seen[v]++
	}
	for _, v := range split.Test.Column("marker").Floats {
		seen[v]++
	}

	if len(seen) != n {
		t.Errorf("partition covers %d distinct rows, want %d", len(seen), n)
	}
	for v, count := range seen {
		if count != 1 {
			t.Errorf("row %v appears %d times across the partition, want 1", v, count)
		}
	}
}

func TestSplitPreservesRowOrder(t *testing.T) {
	split, err := markerTable(60).Split(0.8, 9)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	for _, side := range []struct {
		name  string
		table *Table
	}{
		{"train", split.Train},
		{"test", split.Test},
	} {
		markers := side.table.Column("marker").Floats
		for i := 1; i < len(markers); i++ {
			if markers[i] <= markers[i-1] {
				t.Errorf("%s side out of order at %d: %v after %v", side.name, i, markers[i], markers[i-1])
			}
		}
	}
}
