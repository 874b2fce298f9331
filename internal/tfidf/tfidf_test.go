package tfidf

import (
	"math"
	"testing"
)

func TestComputeIDF_AlwaysAtLeastOne(t *testing.T) {
	t.Parallel()
	idf := ComputeIDF([]uint32{1, 5, 10}, 10)
	for i, v := range idf {
		if v < 1.0 {
			t.Errorf("idf[%d] = %v, want >= 1.0", i, v)
		}
	}
	// Rarer terms (lower df) should have higher idf.
	if !(idf[0] > idf[1] && idf[1] > idf[2]) {
		t.Errorf("idf should decrease as df increases, got %v", idf)
	}
}

func TestBuildMatrix_L2NormalizedRows(t *testing.T) {
	t.Parallel()
	idf := []float64{1.0, 2.0, 1.5}
	docs := []map[int]float64{
		{0: 1.0, 1: 2.0},
		{2: 1.0},
	}
	m := BuildMatrix(docs, idf)
	if len(m.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.Rows))
	}
	for i, row := range m.Rows {
		var normSq float64
		for _, e := range row.Entries {
			normSq += e.Value * e.Value
		}
		if len(row.Entries) > 0 && math.Abs(normSq-1.0) > 1e-9 {
			t.Errorf("row %d not unit-normalized: normSq=%v", i, normSq)
		}
	}
}

func TestBuildMatrix_EmptyDocProducesEmptyRow(t *testing.T) {
	t.Parallel()
	idf := []float64{1.0}
	m := BuildMatrix([]map[int]float64{{}}, idf)
	if len(m.Rows[0].Entries) != 0 {
		t.Errorf("expected empty row, got %v", m.Rows[0].Entries)
	}
}

func TestQueryVector_UnknownIDsIgnored(t *testing.T) {
	t.Parallel()
	idf := []float64{1.0, 2.0}
	q := QueryVector(map[int]float64{0: 1.0, 5: 3.0}, idf)
	if _, ok := q[5]; ok {
		t.Error("unknown id 5 should be ignored")
	}
	if _, ok := q[0]; !ok {
		t.Error("known id 0 should be present")
	}
}
