package cluster

import (
	"math"
	"strings"
)

// stopwords combines common English particles with domain-noise tokens
// that would otherwise dominate every Horn-of-Africa article's token bag
// and wash out the signal cosine similarity is meant to capture.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "has": {}, "have": {}, "had": {},
	"was": {}, "were": {}, "will": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "they": {}, "their": {}, "been": {}, "than": {}, "into": {},
	"over": {}, "after": {}, "also": {}, "about": {}, "more": {}, "its": {},
	"his": {}, "her": {}, "who": {}, "what": {}, "when": {}, "where": {},
	"south": {}, "sudan": {}, "sudanese": {}, "said": {}, "says": {}, "new": {},
}

// tokenBag builds the term-frequency map for title + " " + description:
// lowercase, strip non-alphanumerics to spaces, split on whitespace, drop
// tokens of length <= 2, drop stopwords.
func tokenBag(title, description string) map[string]int {
	text := strings.ToLower(title + " " + description)
	text = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, text)

	bag := make(map[string]int)
	for _, tok := range strings.Fields(text) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		bag[tok]++
	}
	return bag
}

// cosineSimilarity computes the cosine of the term-frequency vectors a and b.
func cosineSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for tok, freqA := range a {
		normA += float64(freqA * freqA)
		if freqB, ok := b[tok]; ok {
			dot += float64(freqA * freqB)
		}
	}
	for _, freqB := range b {
		normB += float64(freqB * freqB)
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
