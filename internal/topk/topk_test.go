package topk

import "testing"

func TestSelect_ReturnsTopKDescending(t *testing.T) {
	t.Parallel()
	cands := []Candidate[string, float64]{
		{Item: "a", Score: 0.1, Seq: 0},
		{Item: "b", Score: 0.9, Seq: 1},
		{Item: "c", Score: 0.5, Seq: 2},
		{Item: "d", Score: 0.7, Seq: 3},
	}
	got := Select(cands, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Item != "b" || got[1].Item != "d" {
		t.Errorf("got %v", got)
	}
}

func TestSelect_FewerThanKReturnsAll(t *testing.T) {
	t.Parallel()
	cands := []Candidate[string, float64]{
		{Item: "a", Score: 0.1, Seq: 0},
	}
	got := Select(cands, 5)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestSelect_TiesBrokenByInsertionOrder(t *testing.T) {
	t.Parallel()
	cands := []Candidate[string, float64]{
		{Item: "first", Score: 0.5, Seq: 0},
		{Item: "second", Score: 0.5, Seq: 1},
		{Item: "third", Score: 0.5, Seq: 2},
	}
	got := Select(cands, 2)
	if got[0].Item != "first" || got[1].Item != "second" {
		t.Errorf("got %v, want ties broken by ascending Seq", got)
	}
}

func TestSelect_ZeroKReturnsNil(t *testing.T) {
	t.Parallel()
	got := Select([]Candidate[string, float64]{{Item: "a", Score: 1}}, 0)
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
