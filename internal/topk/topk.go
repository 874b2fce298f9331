// Package topk implements a small bounded top-k selector, used by the
// searchable index to extract the k most similar documents without
// fully sorting the corpus.
package topk

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Candidate is one scored item: Seq records insertion order so ties can
// be broken deterministically (by ascending insertion order).
type Candidate[T any, S constraints.Ordered] struct {
	Item  T
	Score S
	Seq   int
}

// Select returns the top k candidates by descending Score, ties broken
// by ascending Seq. If fewer than k candidates exist, all are returned.
// Uses a bounded min-heap of size k, O(n log k).
func Select[T any, S constraints.Ordered](candidates []Candidate[T, S], k int) []Candidate[T, S] {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	worse := func(a, b Candidate[T, S]) bool {
		// a is "worse" (sorts toward the root of the min-heap, evicted
		// first) than b.
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return a.Seq > b.Seq
	}

	h := make([]Candidate[T, S], 0, k+1)
	siftUp := func(i int) {
		for i > 0 {
			parent := (i - 1) / 2
			if !worse(h[i], h[parent]) {
				break
			}
			h[parent], h[i] = h[i], h[parent]
			i = parent
		}
	}
	siftDown := func(i int) {
		for {
			l, r := 2*i+1, 2*i+2
			smallest := i
			if l < len(h) && worse(h[l], h[smallest]) {
				smallest = l
			}
			if r < len(h) && worse(h[r], h[smallest]) {
				smallest = r
			}
			if smallest == i {
				return
			}
			h[i], h[smallest] = h[smallest], h[i]
			i = smallest
		}
	}

	for _, c := range candidates {
		h = append(h, c)
		siftUp(len(h) - 1)
		if len(h) > k {
			last := len(h) - 1
			h[0] = h[last]
			h = h[:last]
			siftDown(0)
		}
	}

	sort.Slice(h, func(i, j int) bool {
		if h[i].Score != h[j].Score {
			return h[i].Score > h[j].Score
		}
		return h[i].Seq < h[j].Seq
	})
	return h
}
