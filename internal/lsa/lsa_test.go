package lsa

import (
	"math"
	"testing"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/tfidf"
)

func buildCorpus(t *testing.T) (*tfidf.Sparse, []float64) {
	t.Helper()
	// 4 docs, 6 terms. Docs 0,1 share terms 0,1; docs 2,3 share terms 2,3.
	docVectors := []map[int]float64{
		{0: 2, 1: 1},
		{0: 1, 1: 2},
		{2: 2, 3: 1},
		{2: 1, 3: 2, 4: 1},
	}
	df := []uint32{2, 2, 2, 2, 1, 0}
	idf := tfidf.ComputeIDF(df, 4)
	m := tfidf.BuildMatrix(docVectors, idf)
	return m, idf
}

func TestTrain_TooFewDocsSkipsTraining(t *testing.T) {
	t.Parallel()
	m := &tfidf.Sparse{Rows: []tfidf.Row{{Entries: []tfidf.Entry{{ID: 0, Value: 1}}}}, V: 1}
	model, err := Train(m, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Trained {
		t.Error("expected untrained model for single document")
	}
}

func TestTrain_ProducesUnitNormProjections(t *testing.T) {
	t.Parallel()
	m, idf := buildCorpus(t)
	model, err := Train(m, 4)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if !model.Trained {
		t.Fatal("expected trained model")
	}
	if model.K != 4 {
		t.Errorf("K = %d, want 4", model.K)
	}

	q := tfidf.QueryVector(map[int]float64{0: 2, 1: 1}, idf)
	vec := model.Project(q)
	var normSq float64
	for _, x := range vec {
		normSq += x * x
	}
	if math.Abs(normSq-1.0) > 1e-6 {
		t.Errorf("projected vector not unit norm: normSq=%v", normSq)
	}
}

func TestTrain_KLargerThanRankZeroPads(t *testing.T) {
	t.Parallel()
	m, _ := buildCorpus(t)
	model, err := Train(m, 64)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if model.K != 64 {
		t.Errorf("K = %d, want 64", model.K)
	}
	tailNonZero := false
	for j := 10; j < 64; j++ {
		if model.SingularWeights[j] != 0 {
			tailNonZero = true
		}
	}
	if tailNonZero {
		t.Error("expected zero-padded tail singular weights")
	}
}

func TestProject_UntrainedReturnsZeroVector(t *testing.T) {
	t.Parallel()
	model := Untrained(10, 8)
	vec := model.Project(map[int]float64{0: 1})
	for _, x := range vec {
		if x != 0 {
			t.Errorf("expected zero vector, got %v", vec)
		}
	}
}

func TestProject_SimilarDocsScoreHigherThanDissimilar(t *testing.T) {
	t.Parallel()
	m, idf := buildCorpus(t)
	model, err := Train(m, 4)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	qSimilarToDoc0 := tfidf.QueryVector(map[int]float64{0: 2, 1: 1}, idf)
	qSimilarToDoc2 := tfidf.QueryVector(map[int]float64{2: 2, 3: 1}, idf)

	v0 := model.Project(qSimilarToDoc0)
	v2 := model.Project(qSimilarToDoc2)

	simSameCluster := CosineSimilarity(v0, model.Project(tfidf.QueryVector(map[int]float64{0: 1, 1: 2}, idf)))
	simCrossCluster := CosineSimilarity(v0, v2)

	if simSameCluster <= simCrossCluster {
		t.Errorf("expected same-cluster similarity (%v) > cross-cluster (%v)", simSameCluster, simCrossCluster)
	}
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	t.Parallel()
	a := []float64{1, 0}
	b := []float64{0, 1}
	sim := CosineSimilarity(a, b)
	if sim < -1 || sim > 1 {
		t.Errorf("cosine similarity out of bounds: %v", sim)
	}
}
