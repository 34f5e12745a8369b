package ingest

import "strings"

// Keyword lists for the relevance filter. STRONG keywords are
// title-sufficient: any one match accepts the article outright.
// SUPPORTING keywords are counted in the body and only accept once a
// topic-specific threshold is reached.
var (
	strongSouthSudan = []string{
		"south sudan", "juba", "salva kiir", "riek machar", "unmiss",
	}
	supportingSouthSudan = []string{
		"bor", "malakal", "bentiu", "wau", "upper nile", "jonglei",
		"unity state", "warrap", "spla", "splm",
	}

	strongSudan = []string{
		"khartoum", "rsf", "al-burhan", "al burhan", "hemedti", "sudan war",
	}
	supportingSudan = []string{
		"darfur", "omdurman", "port sudan", "saf", "rapid support forces",
		"sovereignty council", "el fasher", "kordofan",
	}
)

// IsRelevant applies the STRONG/SUPPORTING keyword rules from the ingest
// contract. title and body are matched case-insensitively; body is the
// concatenation of contentSnippet and content.
func IsRelevant(title, body string) bool {
	titleLower := strings.ToLower(title)
	bodyLower := strings.ToLower(body)

	if containsAny(titleLower, strongSouthSudan) {
		return true
	}
	if containsAny(titleLower, strongSudan) {
		return true
	}

	mentionsSudanTitle := strings.Contains(titleLower, "sudan")
	mentionsSouthSudanTitle := strings.Contains(titleLower, "south sudan")
	if mentionsSudanTitle && !mentionsSouthSudanTitle {
		if countMatches(bodyLower, supportingSudan) >= 2 {
			return true
		}
	}

	if countMatches(bodyLower, supportingSouthSudan) >= 2 {
		return true
	}
	if countMatches(bodyLower, supportingSudan) >= 3 {
		return true
	}

	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func countMatches(haystack string, needles []string) int {
	count := 0
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			count++
		}
	}
	return count
}
