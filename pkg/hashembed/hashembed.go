// Package hashembed implements a stable hash embedder: a
// document-independent alternate path configured by (dimension,
// n-gram size) that needs no training. Tokens are mapped to signed
// buckets with xxh3, a fast non-cryptographic hash well suited to this
// bucket-assignment role.
package hashembed

import (
	"math"

	"github.com/zeebo/xxh3"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/embederr"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/tokenizer"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/userdict"
)

// Embedder maps text directly to signed hash buckets, with no learned
// state beyond configuration and an optional dictionary.
type Embedder struct {
	dimension int
	ngramSize int
	dict      *userdict.Dictionary
}

// New creates an Embedder of the given dimension and character n-gram
// size. Both must be positive.
func New(dimension, ngramSize int) (*Embedder, error) {
	if dimension <= 0 || ngramSize <= 0 {
		return nil, embederr.ErrInvalidArgument
	}
	return &Embedder{dimension: dimension, ngramSize: ngramSize, dict: userdict.Empty()}, nil
}

// SetDictionary replaces the active user dictionary.
func (e *Embedder) SetDictionary(d *userdict.Dictionary) {
	e.dict = d
}

// ClearDictionary resets to the identity dictionary.
func (e *Embedder) ClearDictionary() {
	e.dict = userdict.Empty()
}

// Transform hashes text's character n-grams into D signed buckets and
// L2-normalizes the result. Returns embederr.ErrInvalidArgument for
// empty text.
func (e *Embedder) Transform(text string) ([]float64, error) {
	if text == "" {
		return nil, embederr.ErrInvalidArgument
	}
	canonical := e.dict.Apply(text)
	tokens := tokenizer.TokenizeNGrams(canonical, e.ngramSize)

	out := make([]float64, e.dimension)
	for _, tok := range tokens {
		h := xxh3.HashString(tok.Surface)
		bucket := int(h % uint64(e.dimension))
		sign := 1.0
		if h&(1<<63) != 0 {
			sign = -1.0
		}
		out[bucket] += sign * float64(tok.Weight)
	}

	var normSq float64
	for _, x := range out {
		normSq += x * x
	}
	if normSq == 0 {
		return out, nil
	}
	norm := math.Sqrt(normSq)
	for i := range out {
		out[i] /= norm
	}
	return out, nil
}

// GetSimilarity returns cosine similarity in [-1,1] between two texts'
// hash embeddings.
func (e *Embedder) GetSimilarity(a, b string) (float64, error) {
	va, err := e.Transform(a)
	if err != nil {
		return 0, err
	}
	vb, err := e.Transform(b)
	if err != nil {
		return 0, err
	}
	var dot float64
	for i := range va {
		dot += va[i] * vb[i]
	}
	return dot, nil
}
