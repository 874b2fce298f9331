// Package controller implements the incremental learning controller:
// ingestion, deduplication, a cooperative BuildingMatrix ->
// ComputingSVD -> Finalizing retrain state machine, and hot-swap of the
// live model, restructured into explicit StepRetrain() calls instead of one
// blocking call.
package controller

import (
	"github.com/satetsu888/japanese-tfidf-embedder/internal/docid"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/embederr"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/index"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/lsa"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/tfidf"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/tokenizer"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/userdict"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/vocab"
)

// Role distinguishes training-only documents from searchable ones.
type Role int

const (
	RoleSearchable Role = iota
	RoleTraining
)

// Stage is a node of the retrain state machine.
type Stage int

const (
	Idle Stage = iota
	BuildingMatrix
	ComputingSVD
	Finalizing
)

// Default bounded work quanta per retrain step.
const (
	DefaultMatrixStep   = 64
	DefaultFinalizeStep = 32
)

// Document is one ingested document record.
type Document struct {
	ID           string
	RawText      string
	TokenWeights map[int]float64
	Role         Role
}

// Option configures a Controller at construction, in the functional-
// options style the tfidf-go reference uses (other_examples/…rioloc-
// tfidf-go…).
type Option func(*Controller)

// WithVocabCap overrides V_max (default vocab.DefaultVocabCap).
func WithVocabCap(cap int) Option {
	return func(c *Controller) { c.vocabCap = cap }
}

// WithMatrixStepSize overrides B_m, documents processed per
// BuildingMatrix step.
func WithMatrixStepSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.matrixStep = n
		}
	}
}

// WithFinalizeStepSize overrides B_f, documents re-projected per
// Finalizing step.
func WithFinalizeStepSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.finalizeStep = n
		}
	}
}

// Controller owns all model state for one embedder instance: the
// vocabulary, the live model, the document list, the dedup set, and any
// shadow state under construction during a retrain. No internal
// locking: callers are expected to drive it from a single thread.
type Controller struct {
	updateThreshold float64
	vocabCap        int
	matrixStep      int
	finalizeStep    int

	dict  *userdict.Dictionary
	vocab *vocab.Store
	ids   *docid.Generator

	documents []*Document
	dedup     map[string]bool

	k        int
	kLatched bool

	liveModel *lsa.Model
	liveIDF   []float64
	index     *index.Index

	docsAtLastTrain int

	stage        Stage
	trainDocs     []*Document
	shadowVectors []map[int]float64
	buildCursor   int
	shadowIDF     []float64
	shadowModel   *lsa.Model
	finalizeIDs   []string
	finalizeCur   int
	lastProgress  float64
}

// New creates a Controller. updateThreshold is the change-ratio that
// triggers automatic retraining; values >= the corpus's growth factor
// effectively disable it.
func New(updateThreshold float64, opts ...Option) *Controller {
	c := &Controller{
		updateThreshold: updateThreshold,
		vocabCap:        vocab.DefaultVocabCap,
		matrixStep:      DefaultMatrixStep,
		finalizeStep:    DefaultFinalizeStep,
		dict:            userdict.Empty(),
		ids:             docid.NewGenerator(),
		dedup:           make(map[string]bool),
		index:           index.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.vocab = vocab.New(c.vocabCap)
	c.liveModel = lsa.Untrained(0, 0)
	return c
}

// SetDictionary replaces the active user dictionary.
func (c *Controller) SetDictionary(d *userdict.Dictionary) {
	c.dict = d
}

// ClearDictionary resets to the identity dictionary.
func (c *Controller) ClearDictionary() {
	c.dict = userdict.Empty()
}

// Dictionary returns the active dictionary, for the model serializer
// and CLI surfaces.
func (c *Controller) Dictionary() *userdict.Dictionary {
	return c.dict
}

// IsTrained reports whether the live model has completed at least one
// successful SVD.
func (c *Controller) IsTrained() bool {
	return c.liveModel.Trained
}

// K returns the latched embedding dimension (0 before the first
// document is added).
func (c *Controller) K() int {
	return c.k
}

// UniqueDocumentCount returns the number of distinct (deduplicated)
// documents ingested.
func (c *Controller) UniqueDocumentCount() int {
	return len(c.documents)
}

// SearchableCount returns the number of documents with role=searchable.
func (c *Controller) SearchableCount() int {
	n := 0
	for _, d := range c.documents {
		if d.Role == RoleSearchable {
			n++
		}
	}
	return n
}

// ContainsDocument reports whether raw text has already been ingested.
func (c *Controller) ContainsDocument(text string) bool {
	return c.dedup[text]
}

// AddDocument ingests text as a searchable document. Returns false
// without side effect if text is a duplicate.
func (c *Controller) AddDocument(text string, k int) bool {
	return c.addDocument(text, k, RoleSearchable)
}

// AddDocumentForTraining ingests text as a training-only document: it
// shapes the vocabulary/IDF/projection but never appears in search
// results and never gets a stored_vector.
func (c *Controller) AddDocumentForTraining(text string, k int) bool {
	return c.addDocument(text, k, RoleTraining)
}

func (c *Controller) addDocument(text string, k int, role Role) bool {
	if text == "" || c.dedup[text] {
		return false
	}
	if !c.kLatched {
		c.k = k
		c.kLatched = true
	}
	// A differing k on a later call is silently accepted but ignored
	// (see DESIGN.md for the rationale).

	canonical := c.dict.Apply(text)
	tokens := tokenizer.Tokenize(canonical)

	surfaces := make([]string, len(tokens))
	for i, tok := range tokens {
		surfaces[i] = tok.Surface
	}
	// ErrCapacityExceeded is informational: a document that overflows
	// V_max still ingests, just with its novel surfaces unrepresented.
	_ = c.vocab.Observe(surfaces)

	weights := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		id, ok := c.vocab.Lookup(tok.Surface)
		if !ok {
			continue // dropped at vocabulary capacity
		}
		weights[id] += float64(tok.Weight)
	}

	doc := &Document{
		ID:           c.ids.New(),
		RawText:      text,
		TokenWeights: weights,
		Role:         role,
	}
	c.documents = append(c.documents, doc)
	c.dedup[text] = true

	c.maybeAutoRetrain()
	return true
}

func (c *Controller) maybeAutoRetrain() {
	if c.IsRetraining() || len(c.documents) < 2 {
		return
	}
	addedSinceLastTrain := len(c.documents) - c.docsAtLastTrain
	denom := c.docsAtLastTrain
	if denom < 1 {
		denom = 1
	}
	changeRatio := float64(addedSinceLastTrain) / float64(denom)
	if changeRatio >= c.updateThreshold {
		c.StartBackgroundRetrain(c.k)
	}
}

// IsRetraining reports whether the controller is anywhere in the
// BuildingMatrix/ComputingSVD/Finalizing pipeline.
func (c *Controller) IsRetraining() bool {
	return c.stage != Idle
}

// RetrainProgress returns the last-computed progress in [0,1].
func (c *Controller) RetrainProgress() float64 {
	return c.lastProgress
}

// StartBackgroundRetrain begins a retrain pass over all documents
// currently ingested. Returns false without effect if a retrain is
// already in progress.
func (c *Controller) StartBackgroundRetrain(k int) bool {
	if c.IsRetraining() {
		return false
	}
	if !c.kLatched {
		c.k = k
		c.kLatched = true
	}

	c.trainDocs = append([]*Document{}, c.documents...)
	c.shadowVectors = make([]map[int]float64, 0, len(c.trainDocs))
	c.buildCursor = 0
	c.shadowIDF = nil
	c.shadowModel = nil
	c.finalizeIDs = nil
	c.finalizeCur = 0
	c.lastProgress = 0
	c.stage = BuildingMatrix
	return true
}

// StepRetrain advances the state machine by one bounded work quantum.
// Returns true once the controller has returned to Idle. Exception: on
// a non-convergent SVD the controller also returns to Idle, but this
// call returns false to signal that the retrain aborted rather than
// completed.
func (c *Controller) StepRetrain() bool {
	switch c.stage {
	case Idle:
		return true
	case BuildingMatrix:
		return c.stepBuildingMatrix()
	case ComputingSVD:
		return c.stepComputingSVD()
	case Finalizing:
		return c.stepFinalizing()
	default:
		return true
	}
}

func (c *Controller) stepBuildingMatrix() bool {
	end := c.buildCursor + c.matrixStep
	if end > len(c.trainDocs) {
		end = len(c.trainDocs)
	}
	for _, doc := range c.trainDocs[c.buildCursor:end] {
		c.shadowVectors = append(c.shadowVectors, doc.TokenWeights)
	}
	c.buildCursor = end

	if len(c.trainDocs) == 0 {
		c.lastProgress = 1.0 / 3.0
	} else {
		c.lastProgress = (float64(c.buildCursor) / float64(len(c.trainDocs))) / 3.0
	}

	if c.buildCursor >= len(c.trainDocs) {
		c.stage = ComputingSVD
	}
	return false
}

func (c *Controller) stepComputingSVD() bool {
	c.shadowIDF = tfidf.ComputeIDF(c.vocab.DFs(), c.vocab.CorpusSize())
	matrix := tfidf.BuildMatrix(c.shadowVectors, c.shadowIDF)

	model, err := lsa.Train(matrix, c.k)
	if err != nil {
		// embederr.ErrNumericFailure: abort, live model untouched.
		_ = embederr.ErrNumericFailure
		c.resetRetrainState()
		return false
	}
	c.shadowModel = model
	c.stage = Finalizing
	c.lastProgress = 2.0 / 3.0

	// The shadow model stays shadow through all of Finalizing: queries
	// keep reading c.liveModel/c.liveIDF (the pre-retrain model) while
	// stepFinalizing re-projects searchable documents with the shadow
	// model below. The hot-swap happens only once every document has
	// been re-projected, at the end of stepFinalizing.
	c.finalizeIDs = c.finalizeIDs[:0]
	for _, doc := range c.documents {
		if doc.Role == RoleSearchable {
			c.finalizeIDs = append(c.finalizeIDs, doc.ID)
		}
	}
	c.finalizeCur = 0
	return false
}

func (c *Controller) stepFinalizing() bool {
	byID := make(map[string]*Document, len(c.documents))
	for _, d := range c.documents {
		byID[d.ID] = d
	}

	end := c.finalizeCur + c.finalizeStep
	if end > len(c.finalizeIDs) {
		end = len(c.finalizeIDs)
	}
	for _, id := range c.finalizeIDs[c.finalizeCur:end] {
		doc := byID[id]
		qv := tfidf.QueryVector(doc.TokenWeights, c.shadowIDF)
		vec := c.shadowModel.Project(qv)
		c.index.Upsert(doc.ID, vec)
	}
	c.finalizeCur = end

	if len(c.finalizeIDs) == 0 {
		c.lastProgress = 1.0
	} else {
		c.lastProgress = 2.0/3.0 + (float64(c.finalizeCur)/float64(len(c.finalizeIDs)))/3.0
	}

	if c.finalizeCur >= len(c.finalizeIDs) {
		// Hot-swap: the shadow model becomes live only now, atomically,
		// after every searchable document has been re-projected into
		// it. Queries observe the pre-retrain model end-to-end right up
		// until this point.
		c.liveModel = c.shadowModel
		c.liveIDF = c.shadowIDF
		c.docsAtLastTrain = len(c.documents)
		c.resetRetrainState()
		c.lastProgress = 1.0
		return true
	}
	return false
}

func (c *Controller) resetRetrainState() {
	c.stage = Idle
	c.trainDocs = nil
	c.shadowVectors = nil
	c.buildCursor = 0
	c.shadowIDF = nil
	c.shadowModel = nil
	c.finalizeIDs = nil
	c.finalizeCur = 0
}

// Transform projects text into the live K-dimensional space. Returns
// embederr.ErrInvalidArgument for empty text. An untrained model
// yields the zero vector, which is not an error.
func (c *Controller) Transform(text string) ([]float64, error) {
	if text == "" {
		return nil, embederr.ErrInvalidArgument
	}
	if !c.liveModel.Trained {
		return make([]float64, c.k), nil
	}
	canonical := c.dict.Apply(text)
	tokens := tokenizer.Tokenize(canonical)

	weights := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		id, ok := c.vocab.Lookup(tok.Surface)
		if !ok {
			continue
		}
		weights[id] += float64(tok.Weight)
	}
	qv := tfidf.QueryVector(weights, c.liveIDF)
	return c.liveModel.Project(qv), nil
}

// GetSimilarity returns cosine similarity in [-1,1] between two texts'
// transforms.
func (c *Controller) GetSimilarity(a, b string) (float64, error) {
	va, err := c.Transform(a)
	if err != nil {
		return 0, err
	}
	vb, err := c.Transform(b)
	if err != nil {
		return 0, err
	}
	return lsa.CosineSimilarity(va, vb), nil
}

// FindSimilar returns up to k searchable documents' raw text, most
// similar first.
func (c *Controller) FindSimilar(query string, k int) ([]string, error) {
	results, err := c.FindSimilarWithScores(query, k)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out, nil
}

// ScoredResult pairs a raw document text with its similarity score.
type ScoredResult struct {
	Text  string
	Score float64
}

// FindSimilarWithScores is FindSimilar plus scores.
func (c *Controller) FindSimilarWithScores(query string, k int) ([]ScoredResult, error) {
	vec, err := c.Transform(query)
	if err != nil {
		return nil, err
	}
	hits := c.index.FindSimilar(vec, k)

	byID := make(map[string]string, len(c.documents))
	for _, d := range c.documents {
		byID[d.ID] = d.RawText
	}
	out := make([]ScoredResult, len(hits))
	for i, h := range hits {
		out[i] = ScoredResult{Text: byID[h.DocID], Score: h.Score}
	}
	return out, nil
}

// Vocab exposes the vocabulary store for the model serializer.
func (c *Controller) Vocab() *vocab.Store {
	return c.vocab
}

// LiveModel exposes the live model for the model serializer.
func (c *Controller) LiveModel() *lsa.Model {
	return c.liveModel
}

// LiveIDF exposes the live IDF vector for the model serializer.
func (c *Controller) LiveIDF() []float64 {
	return c.liveIDF
}

// Documents exposes the ingested document records for the model
// serializer.
func (c *Controller) Documents() []*Document {
	return c.documents
}

// Restore installs a previously exported model and document set,
// recomputing searchable stored_vectors from the installed projection
// rather than deserializing them.
func (c *Controller) Restore(k int, vocabStore *vocab.Store, idf []float64, model *lsa.Model, docs []*Document) {
	c.k = k
	c.kLatched = true
	c.vocab = vocabStore
	c.liveIDF = idf
	c.liveModel = model
	c.documents = docs
	c.dedup = make(map[string]bool, len(docs))
	for _, d := range docs {
		c.dedup[d.RawText] = true
	}
	c.docsAtLastTrain = len(docs)

	c.index = index.New()
	for _, d := range docs {
		if d.Role != RoleSearchable {
			continue
		}
		qv := tfidf.QueryVector(d.TokenWeights, c.liveIDF)
		c.index.Upsert(d.ID, c.liveModel.Project(qv))
	}
}
