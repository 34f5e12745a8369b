package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the text content of an HTML fragment, collapsing tags
// and normalizing the handful of whitespace entities that feed readers
// commonly leave in descriptions (&nbsp; chief among them).
func StripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return NormalizeWhitespace(fragment)
	}

	return NormalizeWhitespace(doc.Text())
}

// NormalizeWhitespace replaces HTML whitespace entities with a literal
// space and collapses runs of whitespace down to single spaces.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, " ", " ")
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// Truncate cuts s to at most n runes, leaving it untouched if already
// shorter.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
