package tokenizer

// stopWords is the fixed set of Japanese function words consulted by
// the stop-word filter: particles, copula/auxiliary forms, formal
// nouns, demonstratives, and common conjunctions/verb auxiliaries. This
// list is a compatibility constant rather than something derived at
// runtime (see DESIGN.md for the rationale).
var stopWords = map[string]bool{
	// particles
	"は": true, "が": true, "を": true, "に": true, "で": true,
	"と": true, "の": true, "へ": true, "も": true, "や": true,
	"から": true, "まで": true, "より": true,
	// copula / auxiliary
	"です": true, "ます": true, "だ": true, "である": true, "でしょう": true,
	// formal nouns
	"こと": true, "もの": true, "ため": true,
	// demonstratives
	"これ": true, "それ": true, "あれ": true,
	"この": true, "その": true, "あの": true,
	"ここ": true, "そこ": true, "あそこ": true,
	// common verb auxiliaries / inflections
	"ない": true, "いる": true, "ある": true, "する": true, "なる": true,
	"れる": true, "られ": true, "せる": true, "させ": true,
	"たい": true, "たり": true,
	// conjunctions
	"ながら": true, "ので": true, "のに": true, "けど": true, "けれど": true,
	"しかし": true, "また": true, "そして": true, "など": true,
}

// stopChars is the set of runes drawn from the single-character
// particles above. An n-gram token containing any of these runes is
// treated as spanning a particle boundary and down-weighted rather
// than dropped.
var stopChars = buildStopChars()

func buildStopChars() map[rune]bool {
	set := make(map[rune]bool)
	singleCharParticles := []string{"は", "が", "を", "に", "で", "と", "の", "へ", "も", "や"}
	for _, w := range singleCharParticles {
		for _, r := range w {
			set[r] = true
		}
	}
	return set
}

// isStopWord reports whether surface exactly equals a stop word.
func isStopWord(surface string) bool {
	return stopWords[surface]
}

// containsStopChar reports whether s contains a rune from the stop
// character set.
func containsStopChar(s string) bool {
	for _, r := range s {
		if stopChars[r] {
			return true
		}
	}
	return false
}
