package embedder

import (
	"testing"

	json "github.com/goccy/go-json"
)

func drain(e *IncrementalEmbedder) {
	for !e.StepRetrain() {
	}
}

func TestIncrementalEmbedder_EndToEnd(t *testing.T) {
	t.Parallel()
	e := NewIncrementalEmbedder(1e9)
	if !e.AddDocument("猫が好きです", 2) {
		t.Fatal("expected add to succeed")
	}
	if e.AddDocument("猫が好きです", 2) {
		t.Fatal("expected duplicate add to fail")
	}
	e.AddDocument("犬も好きです", 2)
	e.AddDocument("猫と犬は仲良し", 2)

	if err := e.StartBackgroundRetrain(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drain(e)
	if e.IsRetraining() {
		t.Fatal("expected embedder to return to idle")
	}
	if e.GetRetrainProgress() != 1.0 {
		t.Errorf("progress = %v, want 1.0", e.GetRetrainProgress())
	}

	data, err := e.FindSimilarWithScores("猫", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var results []ScoredResult
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	if len(results) == 0 {
		t.Error("expected at least one scored result")
	}

	exported, err := e.ExportModel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.ImportModel(exported, 1e9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.GetSearchableCount() != 3 {
		t.Errorf("searchable count = %d, want 3", e.GetSearchableCount())
	}
}

func TestIncrementalEmbedder_StartBackgroundRetrain_RejectsConcurrent(t *testing.T) {
	t.Parallel()
	e := NewIncrementalEmbedder(1e9)
	e.AddDocument("猫が好きです", 2)
	e.AddDocument("犬も好きです", 2)
	if err := e.StartBackgroundRetrain(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.StartBackgroundRetrain(2); err == nil {
		t.Fatal("expected error for concurrent retrain")
	}
}

func TestIncrementalEmbedder_SetAndClearDictionary(t *testing.T) {
	t.Parallel()
	e := NewIncrementalEmbedder(1e9)
	dict := []byte(`[{"canonical_surface": "AI", "variants": ["人工知能"]}]`)
	if err := e.SetDictionary(dict); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.ClearDictionary()
}

func TestStableHashEmbedder_TransformAndSimilarity(t *testing.T) {
	t.Parallel()
	h, err := NewStableHashEmbedder(64, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vec, err := h.Transform("猫が好きです")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 64 {
		t.Fatalf("len(vec) = %d, want 64", len(vec))
	}
	sim, err := h.GetSimilarity("猫が好きです", "猫が好きです")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim < 0.99 {
		t.Errorf("sim = %v, want ~1.0", sim)
	}
}

func TestStableHashEmbedder_RejectsInvalidDimension(t *testing.T) {
	t.Parallel()
	if _, err := NewStableHashEmbedder(0, 2); err == nil {
		t.Fatal("expected error for dimension=0")
	}
}
