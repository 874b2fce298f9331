// Package userdict implements user-dictionary surface canonicalization: a
// small set of {canonical, variants} entries applied to input text before
// tokenization.
package userdict

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/embederr"
)

// Entry is one canonicalization rule.
type Entry struct {
	Canonical string   `json:"canonical_surface"`
	Variants  []string `json:"variants"`
}

// Dictionary canonicalizes surface variants before tokenization. The
// zero value is a valid, empty (identity) dictionary.
type Dictionary struct {
	entries []Entry
	// variants holds one variant -> canonical rule per variant, sorted by decreasing
	// variant length so a left-to-right scan can always try the
	// longest candidate first.
	variants []variantRule
}

type variantRule struct {
	variant   string
	canonical string
	entryIdx  int
}

// New builds a Dictionary from entries, in entry order (ties in match
// length are broken by entry order).
func New(entries []Entry) *Dictionary {
	d := &Dictionary{entries: entries}
	for i, e := range entries {
		for _, v := range e.Variants {
			if v == "" {
				continue
			}
			d.variants = append(d.variants, variantRule{variant: v, canonical: e.Canonical, entryIdx: i})
		}
	}
	sort.SliceStable(d.variants, func(i, j int) bool {
		li, lj := len([]rune(d.variants[i].variant)), len([]rune(d.variants[j].variant))
		if li != lj {
			return li > lj
		}
		return d.variants[i].entryIdx < d.variants[j].entryIdx
	})
	return d
}

// Apply scans text left to right; at each position the longest matching
// variant (across all entries) is replaced by its canonical surface.
// An empty dictionary is the identity transform.
func (d *Dictionary) Apply(text string) string {
	if d == nil || len(d.variants) == 0 {
		return text
	}
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text))
	i := 0
	for i < len(runes) {
		matched := false
		for _, rule := range d.variants {
			vr := []rune(rule.variant)
			if i+len(vr) > len(runes) {
				continue
			}
			if string(runes[i:i+len(vr)]) == rule.variant {
				out.WriteString(rule.canonical)
				i += len(vr)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteRune(runes[i])
			i++
		}
	}
	return out.String()
}

// MarshalJSON renders the dictionary as an array of entries.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	if d == nil {
		return json.Marshal([]Entry{})
	}
	return json.Marshal(d.entries)
}

// Parse decodes the JSON array contract and builds a Dictionary. Setting
// a dictionary replaces any prior one (callers simply discard the old
// *Dictionary and start using the new one).
func Parse(data []byte) (*Dictionary, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse dictionary json: %v", embederr.ErrInvalidArgument, err)
	}
	return New(entries), nil
}

// Empty returns the identity dictionary, used by ClearDictionary.
func Empty() *Dictionary {
	return New(nil)
}
