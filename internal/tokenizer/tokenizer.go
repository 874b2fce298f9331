// Package tokenizer implements a dictionary-free Japanese tokenizer:
// character-class run extraction, overlapping character n-grams, kanji
// unigrams, and stop-word filtering/down-weighting.
package tokenizer

import (
	"github.com/satetsu888/japanese-tfidf-embedder/internal/charclass"
)

// Token is a weighted surface form. Duplicates are permitted;
// downstream consumers aggregate weight by summing over identical
// surfaces.
type Token struct {
	Surface string
	Weight  float32
}

// ngramSizes are the sliding-window sizes used by the full tokenizer.
var ngramSizes = []int{2, 3}

// Tokenize runs the full procedure over already dictionary-
// canonicalized text: run extraction, 2/3-gram sliding windows, kanji
// unigrams, and stop-word filtering/down-weighting. It is a pure
// function of text alone.
func Tokenize(text string) []Token {
	runes := []rune(text)
	classes := make([]charclass.Class, len(runes))
	for i, r := range runes {
		classes[i] = charclass.Classify(r)
	}

	var tokens []Token
	emitRuns(&tokens, runes, classes)
	for _, n := range ngramSizes {
		emitNGrams(&tokens, runes, classes, n)
	}
	emitKanjiUnigrams(&tokens, runes, classes)
	return tokens
}

// TokenizeNGrams is the truncated procedure the stable hash embedder
// uses: only character n-grams of exactly size n, with no class-run
// tokens and no kanji unigrams.
func TokenizeNGrams(text string, n int) []Token {
	runes := []rune(text)
	classes := make([]charclass.Class, len(runes))
	for i, r := range runes {
		classes[i] = charclass.Classify(r)
	}
	var tokens []Token
	emitNGrams(&tokens, runes, classes, n)
	return tokens
}

func emitRuns(tokens *[]Token, runes []rune, classes []charclass.Class) {
	i := 0
	for i < len(runes) {
		c := classes[i]
		if c == charclass.Other {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && classes[j] == c {
			j++
		}
		if j-i >= 2 {
			emit(tokens, string(runes[i:j]))
		}
		i = j
	}
}

func emitNGrams(tokens *[]Token, runes []rune, classes []charclass.Class, n int) {
	if n <= 0 || n > len(runes) {
		return
	}
	for i := 0; i+n <= len(runes); i++ {
		window := runes[i : i+n]
		valid := true
		for k := i; k < i+n; k++ {
			if classes[k] == charclass.Other {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		emit(tokens, string(window))
	}
}

func emitKanjiUnigrams(tokens *[]Token, runes []rune, classes []charclass.Class) {
	for i, r := range runes {
		if classes[i] == charclass.Kanji {
			emit(tokens, string(r))
		}
	}
}

// emit applies the stop-word filter and quality scoring uniformly
// regardless of which emission site produced surface: a token's
// multipliers are a pure function of its own character classes, not of
// how it was discovered.
func emit(tokens *[]Token, surface string) {
	if surface == "" || isStopWord(surface) {
		return
	}
	w := score(surface)
	if w <= 0 {
		return
	}
	*tokens = append(*tokens, Token{Surface: surface, Weight: w})
}

// score computes the multiplicative quality weight for a token
// surface, starting from a base weight of 1.0.
func score(surface string) float32 {
	runes := []rune(surface)
	classes := make([]charclass.Class, len(runes))
	for i, r := range runes {
		classes[i] = charclass.Classify(r)
	}

	var w float32 = 1.0
	switch {
	case len(runes) == 1 && classes[0] == charclass.Kanji:
		w *= 0.6
	case allSameClass(classes) && classes[0] == charclass.Kanji && len(runes) >= 2:
		w *= 1.8
	case !allSameClass(classes):
		w *= 0.7
	}

	if containsStopChar(surface) {
		w *= 0.5
	}
	return w
}

func allSameClass(classes []charclass.Class) bool {
	if len(classes) == 0 {
		return true
	}
	first := classes[0]
	for _, c := range classes[1:] {
		if c != first {
			return false
		}
	}
	return true
}
