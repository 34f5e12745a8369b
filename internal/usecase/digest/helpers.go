package digest

import (
	"sort"
	"strings"

	"hornwatch/internal/repository"
)

func toCountMap(rows []repository.TypeCount) map[string]int {
	m := make(map[string]int, len(rows))
	for _, r := range rows {
		m[r.Key] = int(r.Count)
	}
	return m
}

// unionKeys returns the deduplicated union of two count maps' keys.
func unionKeys(a, b map[string]int) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for k := range a {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	for k := range b {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

func setOf(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			m[item] = struct{}{}
		}
	}
	return m
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func joinStrings(items []string) string {
	return strings.Join(items, ", ")
}
