package tfidf

import "strings"

// punctuation lists the characters deleted from every token. All occurrences
// are removed, not just leading/trailing ones, so "e.g." becomes "eg".
const punctuation = "()-.,?"

// stopWords are dropped after punctuation stripping. Matching is exact and
// case-sensitive: "The" at a sentence start survives, "the" does not.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "or": {}, "that": {}, "the": {}, "this": {},
	"to": {}, "was": {}, "were": {}, "will": {}, "with": {},
}

// Tokenize splits a remark into normalized words: whitespace-split (newlines
// included, so multi-line remarks are one token stream), punctuation-stripped,
// stop-words removed. Order and multiplicity are preserved since downstream
// frequency counting needs them.
func Tokenize(remark string) []string {
	fields := strings.Fields(remark)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Map(dropPunctuation, f)
		if w == "" {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

func dropPunctuation(r rune) rune {
	if strings.ContainsRune(punctuation, r) {
		return -1
	}
	return r
}
