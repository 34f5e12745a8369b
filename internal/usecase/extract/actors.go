package extract

import "strings"

// actorAliases maps a lowercase raw actor name to its canonical display
// form. Entries the model is likely to abbreviate or vary get a fixed
// spelling so the digest's actor-spike section counts one actor once.
var actorAliases = map[string]string{
	"goss":                  "Government of South Sudan",
	"government of south sudan": "Government of South Sudan",
	"splm/a-io":             "SPLM-IO",
	"splm-io":               "SPLM-IO",
	"splm-in-opposition":    "SPLM-IO",
	"spla-io":               "SPLM-IO",
	"un refugee agency":     "UNHCR",
	"unhcr":                 "UNHCR",
	"unmiss":                "UNMISS",
	"rsf":                   "Rapid Support Forces",
	"rapid support forces":  "Rapid Support Forces",
	"saf":                   "Sudanese Armed Forces",
	"sudanese armed forces": "Sudanese Armed Forces",
	"sudan armed forces":    "Sudanese Armed Forces",
	"wfp":                   "World Food Programme",
	"world food programme":  "World Food Programme",
	"world food program":    "World Food Programme",
	"ocha":                  "UN OCHA",
	"un ocha":               "UN OCHA",
}

// normalizeActors maps each raw actor name through actorAliases
// case-insensitively, passing unmapped names through as given, and
// deduplicates the result case-insensitively while preserving the order of
// first occurrence.
func normalizeActors(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		trimmed := strings.TrimSpace(a)
		if trimmed == "" {
			continue
		}
		canonical, ok := actorAliases[strings.ToLower(trimmed)]
		if !ok {
			canonical = trimmed
		}
		key := strings.ToLower(canonical)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, canonical)
	}
	return out
}
