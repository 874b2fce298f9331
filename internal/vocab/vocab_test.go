package vocab

import (
	"errors"
	"testing"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/embederr"
)

func TestObserve_AssignsIdsInFirstSeenOrder(t *testing.T) {
	t.Parallel()
	s := New(0)
	s.Observe([]string{"a", "b"})
	s.Observe([]string{"b", "c"})

	idA, _ := s.Lookup("a")
	idB, _ := s.Lookup("b")
	idC, _ := s.Lookup("c")
	if idA != 0 || idB != 1 || idC != 2 {
		t.Errorf("ids = %d,%d,%d, want 0,1,2", idA, idB, idC)
	}
	if s.Size() != 3 {
		t.Errorf("Size() = %d, want 3", s.Size())
	}
	if s.CorpusSize() != 2 {
		t.Errorf("CorpusSize() = %d, want 2", s.CorpusSize())
	}
}

func TestObserve_DFCountsOncePerDocument(t *testing.T) {
	t.Parallel()
	s := New(0)
	s.Observe([]string{"a", "a", "a"})
	id, _ := s.Lookup("a")
	if s.DF(id) != 1 {
		t.Errorf("DF = %d, want 1 (once per document even with repeats)", s.DF(id))
	}
	s.Observe([]string{"a"})
	if s.DF(id) != 2 {
		t.Errorf("DF = %d, want 2 after second document", s.DF(id))
	}
}

func TestObserve_CapacityExceeded(t *testing.T) {
	t.Parallel()
	s := New(2)
	if err := s.Observe([]string{"a", "b", "c"}); !errors.Is(err, embederr.ErrCapacityExceeded) {
		t.Errorf("Observe() err = %v, want ErrCapacityExceeded", err)
	}
	if s.Size() != 2 {
		t.Errorf("Size() = %d, want 2 (capped)", s.Size())
	}
	if _, ok := s.Lookup("c"); ok {
		t.Error("c should have been dropped at capacity")
	}
	// Existing ids still accumulate.
	if err := s.Observe([]string{"a", "d", "e"}); !errors.Is(err, embederr.ErrCapacityExceeded) {
		t.Errorf("Observe() err = %v, want ErrCapacityExceeded", err)
	}
	if s.Size() != 2 {
		t.Errorf("Size() = %d after cap, want 2 still", s.Size())
	}
	idA, _ := s.Lookup("a")
	if s.DF(idA) != 2 {
		t.Errorf("DF(a) = %d, want 2", s.DF(idA))
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	t.Parallel()
	s := New(0)
	s.Observe([]string{"a", "b"})
	s.Observe([]string{"b"})

	restored := Restore(0, s.Surfaces(), s.DFs(), s.CorpusSize())
	if restored.Size() != s.Size() || restored.CorpusSize() != s.CorpusSize() {
		t.Fatalf("restored store mismatch")
	}
	id, ok := restored.Lookup("b")
	if !ok || restored.DF(id) != 2 {
		t.Errorf("restored DF(b) = %d, want 2", restored.DF(id))
	}
}
