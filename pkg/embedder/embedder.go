// Package embedder is the public surface of this module: the
// IncrementalEmbedder built from internal/controller, and the
// StableHashEmbedder built from pkg/hashembed. Both are re-exported
// here so callers depend on one stable package rather than reaching
// into internal/.
package embedder

import (
	json "github.com/goccy/go-json"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/controller"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/embederr"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/modelio"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/userdict"
	"github.com/satetsu888/japanese-tfidf-embedder/pkg/hashembed"
)

// ScoredResult pairs document text with its similarity score, the
// find_similar_with_scores JSON array element.
type ScoredResult struct {
	Document string  `json:"document"`
	Score    float64 `json:"score"`
}

// IncrementalEmbedder is the trainable, document-aware embedder:
// ingestion, incremental LSA retraining, and top-k search over
// searchable documents.
type IncrementalEmbedder struct {
	c *controller.Controller
}

// NewIncrementalEmbedder constructs an embedder with the given
// auto-retrain change-ratio threshold.
func NewIncrementalEmbedder(updateThreshold float64, opts ...controller.Option) *IncrementalEmbedder {
	return &IncrementalEmbedder{c: controller.New(updateThreshold, opts...)}
}

// AddDocument ingests text as a searchable document (K is latched on
// the very first call across the embedder's lifetime). Returns false
// if text is a duplicate.
func (e *IncrementalEmbedder) AddDocument(text string, k int) bool {
	return e.c.AddDocument(text, k)
}

// AddDocumentForTraining ingests text that shapes the model but never
// appears in search results.
func (e *IncrementalEmbedder) AddDocumentForTraining(text string, k int) bool {
	return e.c.AddDocumentForTraining(text, k)
}

// Transform projects text into the live K-dimensional space.
func (e *IncrementalEmbedder) Transform(text string) ([]float64, error) {
	return e.c.Transform(text)
}

// GetSimilarity returns cosine similarity between two texts' transforms.
func (e *IncrementalEmbedder) GetSimilarity(a, b string) (float64, error) {
	return e.c.GetSimilarity(a, b)
}

// StartBackgroundRetrain begins a retrain pass. Returns
// embederr.ErrRetrainInProgress if one is already running.
func (e *IncrementalEmbedder) StartBackgroundRetrain(k int) error {
	if !e.c.StartBackgroundRetrain(k) {
		return embederr.ErrRetrainInProgress
	}
	return nil
}

// StepRetrain advances the retrain state machine by one bounded step.
// Returns true once back at idle; false if the retrain aborted on a
// numeric failure even though the controller returned to idle.
func (e *IncrementalEmbedder) StepRetrain() bool {
	return e.c.StepRetrain()
}

// IsRetraining reports whether a retrain is in progress.
func (e *IncrementalEmbedder) IsRetraining() bool {
	return e.c.IsRetraining()
}

// GetRetrainProgress returns the last-computed progress in [0,1].
func (e *IncrementalEmbedder) GetRetrainProgress() float64 {
	return e.c.RetrainProgress()
}

// FindSimilar returns up to k searchable documents' raw text, most
// similar first.
func (e *IncrementalEmbedder) FindSimilar(query string, k int) ([]string, error) {
	return e.c.FindSimilar(query, k)
}

// FindSimilarWithScores returns the scored-results JSON array, already
// sorted descending by score.
func (e *IncrementalEmbedder) FindSimilarWithScores(query string, k int) ([]byte, error) {
	hits, err := e.c.FindSimilarWithScores(query, k)
	if err != nil {
		return nil, err
	}
	out := make([]ScoredResult, len(hits))
	for i, h := range hits {
		out[i] = ScoredResult{Document: h.Text, Score: h.Score}
	}
	return json.Marshal(out)
}

// ExportModel serializes the current state as the model export schema.
func (e *IncrementalEmbedder) ExportModel() ([]byte, error) {
	return modelio.Export(e.c)
}

// ImportModel replaces this embedder's state with a previously
// exported model. The restored state uses the updateThreshold and opts
// passed here, not the ones this embedder was constructed with, and its
// dictionary is the identity dictionary.
func (e *IncrementalEmbedder) ImportModel(data []byte, updateThreshold float64, opts ...controller.Option) error {
	restored, err := modelio.Import(data, updateThreshold, opts...)
	if err != nil {
		return err
	}
	e.c = restored
	return nil
}

// GetUniqueDocumentCount returns the number of distinct documents
// ingested.
func (e *IncrementalEmbedder) GetUniqueDocumentCount() int {
	return e.c.UniqueDocumentCount()
}

// GetSearchableCount returns the number of documents with
// role=searchable.
func (e *IncrementalEmbedder) GetSearchableCount() int {
	return e.c.SearchableCount()
}

// ContainsDocument reports whether raw text has already been ingested.
func (e *IncrementalEmbedder) ContainsDocument(text string) bool {
	return e.c.ContainsDocument(text)
}

// DocumentInfo is a caller-facing snapshot of one ingested document,
// for hosts that want to mirror the corpus outside the embedder (e.g.
// embedctl's corpus cache).
type DocumentInfo struct {
	ID   string
	Text string
	Role string
}

// Documents returns a snapshot of every ingested document.
func (e *IncrementalEmbedder) Documents() []DocumentInfo {
	docs := e.c.Documents()
	out := make([]DocumentInfo, len(docs))
	for i, d := range docs {
		role := "searchable"
		if d.Role == controller.RoleTraining {
			role = "training"
		}
		out[i] = DocumentInfo{ID: d.ID, Text: d.RawText, Role: role}
	}
	return out
}

// SetDictionary replaces the active user dictionary from its JSON
// array contract.
func (e *IncrementalEmbedder) SetDictionary(data []byte) error {
	d, err := userdict.Parse(data)
	if err != nil {
		return err
	}
	e.c.SetDictionary(d)
	return nil
}

// ClearDictionary resets to the identity dictionary.
func (e *IncrementalEmbedder) ClearDictionary() {
	e.c.ClearDictionary()
}

// StableHashEmbedder is the document-independent alternate path: a
// fixed-dimension hash embedding with no vocabulary or training.
type StableHashEmbedder struct {
	h *hashembed.Embedder
}

// NewStableHashEmbedder constructs a hash embedder of dimension D with
// character n-grams of size n.
func NewStableHashEmbedder(d, n int) (*StableHashEmbedder, error) {
	h, err := hashembed.New(d, n)
	if err != nil {
		return nil, err
	}
	return &StableHashEmbedder{h: h}, nil
}

// Transform hashes text into a unit vector of dimension D.
func (e *StableHashEmbedder) Transform(text string) ([]float64, error) {
	return e.h.Transform(text)
}

// GetSimilarity returns cosine similarity between two texts' hash
// embeddings.
func (e *StableHashEmbedder) GetSimilarity(a, b string) (float64, error) {
	return e.h.GetSimilarity(a, b)
}

// SetDictionary replaces the active user dictionary from its JSON
// array contract.
func (e *StableHashEmbedder) SetDictionary(data []byte) error {
	d, err := userdict.Parse(data)
	if err != nil {
		return err
	}
	e.h.SetDictionary(d)
	return nil
}

// ClearDictionary resets to the identity dictionary.
func (e *StableHashEmbedder) ClearDictionary() {
	e.h.ClearDictionary()
}
