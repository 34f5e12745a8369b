package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBag_DropsShortTokensAndStopwords(t *testing.T) {
	bag := tokenBag("South Sudan ceasefire holds in Bor", "Officials said the truce is stable")

	assert.NotContains(t, bag, "south")
	assert.NotContains(t, bag, "sudan")
	assert.NotContains(t, bag, "said")
	assert.NotContains(t, bag, "is")
	assert.Contains(t, bag, "ceasefire")
	assert.Contains(t, bag, "bor")
	assert.Contains(t, bag, "truce")
}

func TestCosineSimilarity_IdenticalBagsIsOne(t *testing.T) {
	bag := tokenBag("Flooding displaces thousands in Jonglei", "")
	assert.InDelta(t, 1.0, cosineSimilarity(bag, bag), 0.0001)
}

func TestCosineSimilarity_DisjointBagsIsZero(t *testing.T) {
	a := tokenBag("Flooding displaces thousands in Jonglei", "")
	b := tokenBag("Stock markets rally on earnings", "")
	assert.Equal(t, 0.0, cosineSimilarity(a, b))
}

func TestCosineSimilarity_EmptyBags(t *testing.T) {
	assert.Equal(t, 0.0, cosineSimilarity(map[string]int{}, map[string]int{"x": 1}))
}
