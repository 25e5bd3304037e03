// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package recipe

import (
	"testing"

	"github.com/tomtom215/churnlab/internal/dataset"
)

func contractTable(values ...string) *dataset.Table {
	labels := make([]string, len(values))
	for i := range labels {
		labels[i] = "No"
	}
	return &dataset.Table{
		Columns: []dataset.Column{
			{Name: "Churn", Kind: dataset.Categorical, Strings: labels},
			{Name: "Contract", Kind: dataset.Categorical, Strings: values},
		},
	}
}

func TestDummyEncode(t *testing.T) {
	table := contractTable("Month-to-month", "One year", "Two year", "Month-to-month")
	step := newDummy()

	if err := step.Fit(table); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if err := step.Bake(table); err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	// Lexicographically first level (Month-to-month) is the reference
	if got := table.NumCols(); got != 3 {
		t.Fatalf("NumCols() = %d, want 3 (target + 2 indicators)", got)
	}
	if table.Columns[1].Name != "Contract_One year" {
		t.Errorf("Columns[1].Name = %q, want Contract_One year", table.Columns[1].Name)
	}
	if table.Columns[2].Name != "Contract_Two year" {
		t.Errorf("Columns[2].Name = %q, want Contract_Two year", table.Columns[2].Name)
	}

	oneYear := table.Column("Contract_One year").Floats
	twoYear := table.Column("Contract_Two year").Floats
	wantOne := []float64{0, 1, 0, 0}
	wantTwo := []float64{0, 0, 1, 0}
	for i := range wantOne {
		if oneYear[i] != wantOne[i] {
			t.Errorf("Contract_One year[%d] = %v, want %v", i, oneYear[i], wantOne[i])
		}
		if twoYear[i] != wantTwo[i] {
			t.Errorf("Contract_Two year[%d] = %v, want %v", i, twoYear[i], wantTwo[i])
		}
	}
}

func TestDummyUnseenLevelBakesToZeros(t *testing.T) {
	train := contractTable("Month-to-month", "One year", "Two year")
	step := newDummy()
	if err := step.Fit(train); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	test := contractTable("Prepaid", "One year")
	if err := step.Bake(test); err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	if got := test.Column("Contract_One year").Floats[0]; got != 0 {
		t.Errorf("unseen level produced Contract_One year = %v, want 0", got)
	}
	if got := test.Column("Contract_Two year").Floats[0]; got != 0 {
		t.Errorf("unseen level produced Contract_Two year = %v, want 0", got)
	}
	if got := test.Column("Contract_One year").Floats[1]; got != 1 {
		t.Errorf("seen level produced Contract_One year = %v, want 1", got)
	}
}

func TestDummyIdenticalColumnsAcrossTables(t *testing.T) {
	train := contractTable("Month-to-month", "One year", "Two year")
	step := newDummy()
	if err := step.Fit(train); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// The bake table misses a level entirely; columns must not change
	test := contractTable("Month-to-month", "Month-to-month")

	if err := step.Bake(train); err != nil {
		t.Fatalf("Bake(train) error = %v", err)
	}
	if err := step.Bake(test); err != nil {
		t.Fatalf("Bake(test) error = %v", err)
	}

	trainNames := train.ColumnNames()
	testNames := test.ColumnNames()
	if len(trainNames) != len(testNames) {
		t.Fatalf("column counts differ: %v vs %v", trainNames, testNames)
	}
	for i := range trainNames {
		if trainNames[i] != testNames[i] {
			t.Errorf("column %d differs: %q vs %q", i, trainNames[i], testNames[i])
		}
	}
}

func TestDummyKeepsColumnPositions(t *testing.T) {
	table := &dataset.Table{
		Columns: []dataset.Column{
			{Name: "Churn", Kind: dataset.Categorical, Strings: []string{"Yes", "No"}},
			{Name: "gender", Kind: dataset.Categorical, Strings: []string{"Female", "Male"}},
			{Name: "tenure", Kind: dataset.Continuous, Floats: []float64{1, 2}},
			{Name: "Contract", Kind: dataset.Categorical, Strings: []string{"One year", "Two year"}},
		},
	}
	step := newDummy()
	if err := step.Fit(table); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if err := step.Bake(table); err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	want := []string{"Churn", "gender_Male", "tenure", "Contract_Two year"}
	got := table.ColumnNames()
	if len(got) != len(want) {
		t.Fatalf("ColumnNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ColumnNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Continuous column passes through untouched
	if got := table.Column("tenure").Floats[1]; got != 2 {
		t.Errorf("tenure[1] = %v, want 2", got)
	}
}

func TestDummySingleLevelDropsColumn(t *testing.T) {
	table := contractTable("Month-to-month", "Month-to-month")
	step := newDummy()
	if err := step.Fit(table); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if err := step.Bake(table); err != nil {
		t.Fatalf("Bake() error = %v", err)
	}

	// One level means no information: the column disappears entirely
	if got := table.NumCols(); got != 1 {
		t.Errorf("NumCols() = %d, want 1 (only target remains)", got)
	}
}

func TestDummyUnknownColumnAtBake(t *testing.T) {
	train := contractTable("One year", "Two year")
	step := newDummy()
	if err := step.Fit(train); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	test := train.Clone()
	test.Columns[1].Name = "PaymentMethod"

	if err := step.Bake(test); err == nil {
		t.Fatal("Bake() = nil error, want unknown categorical column failure")
	}
}
