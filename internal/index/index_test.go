package index

import "testing"

func TestFindSimilar_OrdersByDescendingScore(t *testing.T) {
	t.Parallel()
	idx := New()
	idx.Upsert("a", []float64{1, 0})
	idx.Upsert("b", []float64{0, 1})
	idx.Upsert("c", []float64{0.7071, 0.7071})

	results := idx.FindSimilar([]float64{1, 0}, 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].DocID != "a" {
		t.Errorf("expected a first, got %s", results[0].DocID)
	}
	if results[1].DocID != "c" {
		t.Errorf("expected c second, got %s", results[1].DocID)
	}
}

func TestFindSimilar_FewerThanKReturnsAll(t *testing.T) {
	t.Parallel()
	idx := New()
	idx.Upsert("a", []float64{1, 0})
	results := idx.FindSimilar([]float64{1, 0}, 5)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestUpsert_OverwritesExisting(t *testing.T) {
	t.Parallel()
	idx := New()
	idx.Upsert("a", []float64{1, 0})
	idx.Upsert("a", []float64{0, 1})
	if idx.Count() != 1 {
		t.Errorf("expected count 1 after overwrite, got %d", idx.Count())
	}
	results := idx.FindSimilar([]float64{0, 1}, 1)
	if results[0].Score < 0.99 {
		t.Errorf("expected updated vector to be used, score=%v", results[0].Score)
	}
}

func TestRemove_DeletesEntry(t *testing.T) {
	t.Parallel()
	idx := New()
	idx.Upsert("a", []float64{1, 0})
	idx.Upsert("b", []float64{0, 1})
	idx.Remove("a")
	if idx.Count() != 1 {
		t.Errorf("expected count 1 after remove, got %d", idx.Count())
	}
	results := idx.FindSimilar([]float64{1, 0}, 2)
	if len(results) != 1 || results[0].DocID != "b" {
		t.Errorf("expected only b to remain, got %v", results)
	}
}
