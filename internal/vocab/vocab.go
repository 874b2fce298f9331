// Package vocab implements the vocabulary and document-frequency store:
// a bijection between surface strings and dense nonnegative integer
// ids, with per-id document frequency and a capped vocabulary size.
package vocab

import "github.com/satetsu888/japanese-tfidf-embedder/internal/embederr"

// DefaultVocabCap is V_max, the upper bound on distinct ids retained.
const DefaultVocabCap = 50000

// Store assigns stable integer ids to token surfaces in first-seen
// order and tracks document frequency per id and corpus size. It has no
// internal locking: all state belongs to one single-threaded controller.
type Store struct {
	cap      int
	ids      map[string]int
	surfaces []string
	df       []uint32
	corpus   uint32
}

// New creates a Store capped at vocabCap distinct ids. A vocabCap of 0
// uses DefaultVocabCap.
func New(vocabCap int) *Store {
	if vocabCap <= 0 {
		vocabCap = DefaultVocabCap
	}
	return &Store{
		cap: vocabCap,
		ids: make(map[string]int),
	}
}

// Restore reconstructs a Store from a previously exported vocabulary:
// surfaces in id order, their df, and the corpus size N.
func Restore(vocabCap int, surfaces []string, df []uint32, corpusSize int) *Store {
	s := New(vocabCap)
	s.surfaces = append(s.surfaces, surfaces...)
	s.df = append(s.df, df...)
	for id, surface := range surfaces {
		s.ids[surface] = id
	}
	s.corpus = uint32(corpusSize)
	return s
}

// Observe records that surfaces occurred in one document. Each distinct
// surface increments df at most once per document, even if it occurs
// many times. Once the cap is reached, unseen surfaces are dropped
// instead of assigned an id — existing ids keep accumulating df, and
// Observe returns embederr.ErrCapacityExceeded so the caller can tell a
// document was only partially represented. Ingestion itself is not
// aborted; the returned error is informational.
func (s *Store) Observe(surfaces []string) error {
	var dropped bool
	seen := make(map[string]bool, len(surfaces))
	for _, surface := range surfaces {
		if seen[surface] {
			continue
		}
		seen[surface] = true

		id, ok := s.ids[surface]
		if !ok {
			if len(s.surfaces) >= s.cap {
				dropped = true
				continue
			}
			id = len(s.surfaces)
			s.ids[surface] = id
			s.surfaces = append(s.surfaces, surface)
			s.df = append(s.df, 0)
		}
		s.df[id]++
	}
	s.corpus++
	if dropped {
		return embederr.ErrCapacityExceeded
	}
	return nil
}

// Lookup returns the id for surface, if known. No side effect.
func (s *Store) Lookup(surface string) (int, bool) {
	id, ok := s.ids[surface]
	return id, ok
}

// Surface returns the surface string for id, the inverse of Lookup.
func (s *Store) Surface(id int) string {
	if id < 0 || id >= len(s.surfaces) {
		return ""
	}
	return s.surfaces[id]
}

// Size returns V, the number of distinct ids currently assigned.
func (s *Store) Size() int {
	return len(s.surfaces)
}

// CorpusSize returns N, the number of documents observed.
func (s *Store) CorpusSize() int {
	return int(s.corpus)
}

// DF returns the document frequency of id.
func (s *Store) DF(id int) uint32 {
	if id < 0 || id >= len(s.df) {
		return 0
	}
	return s.df[id]
}

// Surfaces returns the full id -> surface slice, position = id. The
// caller must not mutate the returned slice.
func (s *Store) Surfaces() []string {
	return s.surfaces
}

// DFs returns the full df slice, position = id. The caller must not
// mutate the returned slice.
func (s *Store) DFs() []uint32 {
	return s.df
}
