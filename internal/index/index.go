// Package index implements the searchable index: an ordered set of
// pre-computed unit vectors over searchable documents, with bounded
// top-k cosine search. It holds indices/ids into the controller's
// document list, not document references, eliminating an ownership
// cycle.
package index

import (
	"github.com/satetsu888/japanese-tfidf-embedder/internal/lsa"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/topk"
)

// Result is one scored search hit.
type Result struct {
	DocID string
	Score float64
}

// Index holds the current stored_vector for every searchable document,
// in insertion order.
type Index struct {
	ids     []string
	vectors [][]float64
	byID    map[string]int
}

// New creates an empty index.
func New() *Index {
	return &Index{byID: make(map[string]int)}
}

// Upsert sets (or inserts) the stored vector for docID, preserving
// insertion order for new ids.
func (idx *Index) Upsert(docID string, vector []float64) {
	if pos, ok := idx.byID[docID]; ok {
		idx.vectors[pos] = vector
		return
	}
	idx.byID[docID] = len(idx.ids)
	idx.ids = append(idx.ids, docID)
	idx.vectors = append(idx.vectors, vector)
}

// Remove deletes docID from the index, if present.
func (idx *Index) Remove(docID string) {
	pos, ok := idx.byID[docID]
	if !ok {
		return
	}
	delete(idx.byID, docID)
	idx.ids = append(idx.ids[:pos], idx.ids[pos+1:]...)
	idx.vectors = append(idx.vectors[:pos], idx.vectors[pos+1:]...)
	for id, p := range idx.byID {
		if p > pos {
			idx.byID[id] = p - 1
		}
	}
}

// Count returns the number of indexed documents.
func (idx *Index) Count() int {
	return len(idx.ids)
}

// FindSimilar returns up to k documents ordered by descending cosine
// similarity to queryVec. Ties are broken by ascending insertion order.
func (idx *Index) FindSimilar(queryVec []float64, k int) []Result {
	if k <= 0 || len(idx.ids) == 0 {
		return nil
	}
	candidates := make([]topk.Candidate[string, float64], len(idx.ids))
	for i, id := range idx.ids {
		candidates[i] = topk.Candidate[string, float64]{
			Item:  id,
			Score: lsa.CosineSimilarity(queryVec, idx.vectors[i]),
			Seq:   i,
		}
	}
	top := topk.Select(candidates, k)
	results := make([]Result, len(top))
	for i, c := range top {
		results[i] = Result{DocID: c.Item, Score: c.Score}
	}
	return results
}
